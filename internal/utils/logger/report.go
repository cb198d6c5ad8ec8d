package logger

import (
	"fmt"
	"os"
	"path/filepath"
)

// StringListReport accumulates human-readable findings under a title.
// Lifecycle: created empty, appended to during a scan, printed once as
// a batch when the scan finishes.
type StringListReport struct {
	Title string
	Items []string
}

func NewStringListReport(title string) *StringListReport {
	return &StringListReport{
		Title: title,
		Items: []string{},
	}
}

// Append records one finding.
func (r *StringListReport) Append(format string, args ...interface{}) {
	r.Items = append(r.Items, fmt.Sprintf(format, args...))
}

// Empty reports whether the scan recorded no findings.
func (r *StringListReport) Empty() bool {
	return len(r.Items) == 0
}

// Print writes the batch to stdout with a count and the title.
func (r *StringListReport) Print() {
	if r.Empty() {
		return
	}
	fmt.Printf("Found %d errors: %s\n", len(r.Items), r.Title)
	for _, item := range r.Items {
		fmt.Println(item)
	}
}

// WriteToFile appends the report to a text file under reportDir.
// The title is sanitized and appended to the filename, e.g. report-title.txt.
func (r *StringListReport) WriteToFile(reportDir string) error {
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return fmt.Errorf("creating report path: %w", err)
	}

	title := r.Title
	if title == "" {
		title = "untitled"
	}
	safeTitle := ""
	for _, c := range title {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			safeTitle += string(c)
		} else {
			safeTitle += "_"
		}
	}

	reportFullPath := filepath.Join(reportDir, fmt.Sprintf("report-%s.txt", safeTitle))

	f, err := os.OpenFile(reportFullPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	for _, item := range r.Items {
		if _, err := fmt.Fprintln(f, item); err != nil {
			return fmt.Errorf("writing to file: %w", err)
		}
	}
	if _, err := fmt.Fprintln(f); err != nil {
		return fmt.Errorf("writing new line to file: %w", err)
	}

	return nil
}
