// scraper/revision_checker.go
package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gewnthar/airportmin/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// GetSourceRevision scrapes pageURL and returns the text of the first element
// matching selector, e.g. the "last commit" line of the upstream repository page.
func GetSourceRevision(ctx context.Context, client *http.Client, pageURL, selector string) (*models.SourceRevision, error) {
	log.Printf("Scraper: Checking upstream revision from %s (selector: '%s')\n", pageURL, selector)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element matches selector '%s' on %s", selector, pageURL)
	}

	text := strings.TrimSpace(whitespaceRun.ReplaceAllString(sel.Text(), " "))
	if text == "" {
		return nil, fmt.Errorf("element matching '%s' on %s has no text", selector, pageURL)
	}

	return &models.SourceRevision{
		PageURL:     pageURL,
		Text:        text,
		LastChecked: time.Now().UTC(),
	}, nil
}
