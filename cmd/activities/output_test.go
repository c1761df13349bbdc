package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mergington-hs/activities/internal/registry"
)

func TestPrintRowsPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, []outputRow{
		{Key: "Chess Club", Value: "2/12 enrolled"},
		{Key: "Art Studio", Value: "1/20 enrolled"},
	})

	want := "Chess Club: 2/12 enrolled\nArt Studio: 1/20 enrolled\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintCatalogSortsByName(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, map[string]registry.Activity{
		"Tennis Club": {Schedule: "Wednesdays", MaxParticipants: 10, Participants: []string{"a@x.edu"}},
		"Art Studio":  {Schedule: "Tuesdays", MaxParticipants: 20},
	})

	out := buf.String()
	art := strings.Index(out, "Art Studio")
	tennis := strings.Index(out, "Tennis Club")
	if art < 0 || tennis < 0 || art > tennis {
		t.Fatalf("catalog not sorted by name:\n%s", out)
	}
}

func TestPrintCatalogMarksFullActivities(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, map[string]registry.Activity{
		"Debate Club": {Schedule: "Tuesdays", MaxParticipants: 1, Participants: []string{"sarah@mergington.edu"}},
	})

	if !strings.Contains(buf.String(), "Debate Club: full") {
		t.Fatalf("output = %q, want full marker", buf.String())
	}
}

func TestShouldUsePrettyOutputHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldUsePrettyOutput(&bytes.Buffer{}) {
		t.Fatal("pretty output enabled despite NO_COLOR")
	}
}

func TestColorizeValueOnlyFlagsFull(t *testing.T) {
	if got := colorizeValue("full, Tuesdays"); !strings.Contains(got, ansiRed) {
		t.Fatalf("colorizeValue(full) = %q, want red", got)
	}
	if got := colorizeValue("2/12 enrolled"); got != "2/12 enrolled" {
		t.Fatalf("colorizeValue = %q, want unchanged", got)
	}
}
