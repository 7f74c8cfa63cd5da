package normalizer

import (
	"maps"
	"strings"
)

// typeCodes maps upstream usage labels to the short codes used in the dataset.
// Note that A/G and GCA share "Y".
var typeCodes = map[string]string{
	"CTAF": "C", "UNICOM": "U", "TOWER": "T", "GROUND": "G",
	"APP": "A", "ATIS": "I", "DEP": "D", "MISC": "M",
	"ASOW": "S", "FSS": "F", "RADIO": "R", "CLD": "L",
	"INFO": "N", "AFIS": "Z", "A/G": "Y", "OPS": "O",
	"RADAR": "X", "APRON": "P", "ATF": "H", "RCO": "Q",
	"TRAFFIC": "V", "TMA": "W", "ASOS": "B", "PAL": "J",
	"AAS": "K", "DIR": "E", "GCA": "Y", "A/A": "AA",
	"FCC": "FC", "ACP": "AC", "TIBA": "TB", "A/D": "AD",
	"ACC": "CC", "ARTC": "RT",
}

// MapTypeCode returns the short code for a usage label. Unknown labels are
// returned trimmed but otherwise unchanged; lookup is case-sensitive.
func MapTypeCode(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	if code, ok := typeCodes[label]; ok {
		return code
	}
	return label
}

// TypeCodes returns a copy of the label to code table.
func TypeCodes() map[string]string {
	return maps.Clone(typeCodes)
}

// TypeCodeCount is the number of labels with a mapped code.
func TypeCodeCount() int {
	return len(typeCodes)
}
