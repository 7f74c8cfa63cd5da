package scraper

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gewnthar/airportmin/models"
)

func TestParseAirportsCsv(t *testing.T) {
	t.Parallel()

	const in = "\ufeffICAO,IATA,name,lat,lon\n" +
		"KLAX,LAX,\"Los Angeles, Intl\",33.9425,-118.408\n" +
		"EGLL,LHR,Heathrow,51.4706,-0.461941\n" +
		",,No code,1,2\n"

	got, err := ParseAirportsCsv(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseAirportsCsv error: %v", err)
	}
	want := []models.AirportRow{
		{ICAO: "KLAX", Lat: "33.9425", Lon: "-118.408"},
		{ICAO: "EGLL", Lat: "51.4706", Lon: "-0.461941"},
		{ICAO: "", Lat: "1", Lon: "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseAirportsCsv = %+v, want %+v", got, want)
	}
}

func TestParseFrequenciesCsv_SkipsRaggedRows(t *testing.T) {
	t.Parallel()

	const in = "airport,type,frequency\n" +
		"KLAX,TOWER,119.8\n" +
		"KLAX,GROUND\n" +
		"KLAX,,119.8\n"

	got, err := ParseFrequenciesCsv(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseFrequenciesCsv error: %v", err)
	}
	want := []models.FrequencyRow{
		{Airport: "KLAX", Type: "TOWER", Frequency: "119.8"},
		{Airport: "KLAX", Type: "", Frequency: "119.8"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseFrequenciesCsv = %+v, want %+v", got, want)
	}
}

func TestParseFrequenciesCsv_MissingColumnLeavesFieldEmpty(t *testing.T) {
	t.Parallel()

	got, err := ParseFrequenciesCsv(strings.NewReader("airport,frequency\nKSFO,120.5\n"))
	if err != nil {
		t.Fatalf("ParseFrequenciesCsv error: %v", err)
	}
	want := []models.FrequencyRow{{Airport: "KSFO", Frequency: "120.5"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseFrequenciesCsv = %+v, want %+v", got, want)
	}
}

func TestParseAirportsCsv_Empty(t *testing.T) {
	t.Parallel()

	if _, err := ParseAirportsCsv(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}
