package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	isatty "github.com/mattn/go-isatty"

	"github.com/mergington-hs/activities/internal/registry"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
)

type outputRow struct {
	Key   string
	Value string
}

func shouldUsePrettyOutput(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	fd, ok := fileDescriptor(w)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func fileDescriptor(w io.Writer) (uintptr, bool) {
	type fdWriter interface {
		Fd() uintptr
	}
	f, ok := w.(fdWriter)
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}

// printCatalog renders the catalog one activity per row, names sorted so
// the listing is stable between calls.
func printCatalog(w io.Writer, catalog map[string]registry.Activity) {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]outputRow, 0, len(names))
	for _, name := range names {
		activity := catalog[name]
		enrollment := fmt.Sprintf("%d/%d enrolled", len(activity.Participants), activity.MaxParticipants)
		if len(activity.Participants) >= activity.MaxParticipants {
			enrollment = "full"
		}
		rows = append(rows, outputRow{
			Key:   name,
			Value: fmt.Sprintf("%s, %s", enrollment, activity.Schedule),
		})
	}

	printHeading(w, "Mergington High School activities")
	printRows(w, rows)
}

func printRows(w io.Writer, rows []outputRow) {
	if !shouldUsePrettyOutput(w) {
		for _, row := range rows {
			writef(w, "%s: %s\n", row.Key, row.Value)
		}
		return
	}

	maxKey := 0
	for _, row := range rows {
		if len(row.Key) > maxKey {
			maxKey = len(row.Key)
		}
	}
	for _, row := range rows {
		writef(w, "%s%-*s%s  %s\n", ansiDim, maxKey, row.Key, ansiReset, colorizeValue(row.Value))
	}
}

func printHeading(w io.Writer, title string) {
	if shouldUsePrettyOutput(w) {
		writef(w, "%s%s%s\n", ansiBold, title, ansiReset)
		return
	}
	writeln(w, title)
}

func printNotice(w io.Writer, message string) {
	if shouldUsePrettyOutput(w) {
		writef(w, "%s%s%s\n", ansiGreen, message, ansiReset)
		return
	}
	writeln(w, message)
}

// colorizeValue flags full activities so they stand out in the listing.
func colorizeValue(value string) string {
	if strings.HasPrefix(value, "full") {
		return ansiRed + value + ansiReset
	}
	return value
}
