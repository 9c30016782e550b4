package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/PaoloLupo/rcsection/internal/diagnostics"
	"github.com/google/uuid"
)

// FileStatus is the per-example processing status used in reports.
type FileStatus string

const (
	StatusCreated   FileStatus = "created"
	StatusUpdated   FileStatus = "updated"
	StatusUnchanged FileStatus = "unchanged"
	StatusFresh     FileStatus = "fresh"
	StatusStale     FileStatus = "stale"
	StatusFailed    FileStatus = "failed"
)

// DiagnosticItem is the report-friendly representation of one error.
type DiagnosticItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
}

// FileItem describes fixture generation for one example.
type FileItem struct {
	Example     string           `json:"example"`
	Identity    string           `json:"identity"`
	Fixture     string           `json:"fixture,omitempty"`
	Status      FileStatus       `json:"status"`
	Collision   bool             `json:"collision"`
	Diagnostics []DiagnosticItem `json:"diagnostics,omitempty"`
}

// Summary contains aggregate counters for a generation run.
type Summary struct {
	Discovered int      `json:"discovered"`
	Written    int      `json:"written"`
	Unchanged  int      `json:"unchanged"`
	Stale      int      `json:"stale"`
	Collisions int      `json:"collisions"`
	Failed     int      `json:"failed"`
	Orphans    []string `json:"orphans,omitempty"`
}

// JSONReport is the structured report persisted by --report-json.
type JSONReport struct {
	RunID       string     `json:"run_id"`
	GeneratedAt string     `json:"generated_at"`
	Summary     Summary    `json:"summary"`
	Files       []FileItem `json:"files"`
}

// NewJSONReport builds a report payload with a run id and RFC3339 timestamp.
func NewJSONReport(summary Summary, files []FileItem) JSONReport {
	return JSONReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
		Files:       files,
	}
}

// ToDiagnosticItem converts an error to a typed report diagnostic.
func ToDiagnosticItem(file string, err error) DiagnosticItem {
	var d diagnostics.Diagnostic
	if errors.As(err, &d) {
		return DiagnosticItem{
			Code:    d.Code,
			Message: d.Error(),
			File:    d.File,
		}
	}
	return DiagnosticItem{
		Code:    "ERROR",
		Message: err.Error(),
		File:    file,
	}
}

// WriteJSON writes the full JSON report if path is non-empty.
func WriteJSON(path string, report JSONReport) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	return os.WriteFile(path, raw, 0o644)
}

// WriteCSV writes the flattened CSV report if path is non-empty.
func WriteCSV(path string, files []FileItem) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	defer w.Flush()

	header := []string{
		"example",
		"identity",
		"fixture",
		"status",
		"collision",
		"diagnostics_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	copied := append([]FileItem(nil), files...)
	sort.Slice(copied, func(i, j int) bool { return copied[i].Example < copied[j].Example })

	for _, item := range copied {
		row := []string{
			item.Example,
			item.Identity,
			item.Fixture,
			string(item.Status),
			strconv.FormatBool(item.Collision),
			strconv.Itoa(len(item.Diagnostics)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
