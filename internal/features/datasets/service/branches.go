package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"shipping-analytics/internal/features/datasets/domain"

	"go.uber.org/zap"
)

// BranchAssignment ties a tracking reference to the branch it passed through.
type BranchAssignment struct {
	Branch string    `json:"branch"`
	Date   time.Time `json:"date"`
}

// BranchJoinResult is the outcome of loading a batch of branch sub-files.
// Per-file failures are collected, not fatal: partial success beats
// all-or-nothing for operator uploads.
type BranchJoinResult struct {
	// Assignments maps tracking reference to its latest branch record.
	Assignments map[string]BranchAssignment `json:"assignments"`
	// FilesLoaded counts the sub-files that parsed successfully.
	FilesLoaded int `json:"files_loaded"`
	// Errors describes the sub-files that could not be parsed.
	Errors []string `json:"errors,omitempty"`
}

// NamedFile pairs an upload's file name with its content.
type NamedFile struct {
	Name    string
	Content io.Reader
}

// ReadBranchFiles parses branch sub-files of shape (reference, branch name,
// date). When a reference appears in several files, the newest dated row
// wins. Files that fail to parse are reported in the result and skipped.
func (s *IngestService) ReadBranchFiles(files []NamedFile) *BranchJoinResult {
	result := &BranchJoinResult{
		Assignments: make(map[string]BranchAssignment),
	}

	for _, file := range files {
		table, err := s.ReadTable(file.Name, file.Content)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			continue
		}

		if err := mergeBranchTable(result.Assignments, table); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			continue
		}
		result.FilesLoaded++
	}

	if len(result.Errors) > 0 {
		s.logger.Warn("Some branch files failed to load",
			zap.Int("loaded", result.FilesLoaded),
			zap.Strings("errors", result.Errors),
		)
	}

	return result
}

// mergeBranchTable folds one branch table into the assignment map.
// Expected layout: optional row-number column, then reference, branch name,
// branch date.
func mergeBranchTable(assignments map[string]BranchAssignment, table *domain.RawTable) error {
	if len(table.Headers) < 3 {
		return fmt.Errorf("branch file needs at least 3 columns, got %d", len(table.Headers))
	}

	refCol, nameCol, dateCol := 0, 1, 2
	if len(table.Headers) >= 4 && looksLikeRowNumber(table.Headers[0]) {
		refCol, nameCol, dateCol = 1, 2, 3
	}

	for row := range table.Rows {
		ref := strings.TrimSpace(table.Cell(row, refCol))
		if ref == "" {
			continue
		}
		name := strings.TrimSpace(table.Cell(row, nameCol))
		date, _ := parseBranchDate(table.Cell(row, dateCol))

		existing, ok := assignments[ref]
		if !ok || date.After(existing.Date) {
			assignments[ref] = BranchAssignment{Branch: name, Date: date}
		}
	}
	return nil
}

func looksLikeRowNumber(header string) bool {
	h := strings.TrimSpace(header)
	return h == "#" || strings.HasPrefix(strings.ToLower(h), "unnamed") || h == ""
}

func parseBranchDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{
		"2006-01-02", "2006-01-02 15:04:05", "02/01/2006", "2006/01/02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
