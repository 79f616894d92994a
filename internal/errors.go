package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Run-level failures. Anything else is absorbed per file.
var (
	ErrSourceMissing     = errors.New("source directory does not exist")
	ErrTargetUnavailable = errors.New("target directory unavailable")
	ErrTargetLocked      = errors.New("target directory is locked by another run")
)

// ErrorCategory represents the type of error encountered
type ErrorCategory string

const (
	ErrorCategoryIO      ErrorCategory = "io_error"      // File system, permissions, disk space
	ErrorCategoryHash    ErrorCategory = "hash_mismatch" // Corruption during copy
	ErrorCategoryInvalid ErrorCategory = "invalid_state" // Sortable file without a usable timestamp
	ErrorCategoryUnknown ErrorCategory = "unknown_error"
)

// ErrorSeverity indicates how critical the error is
type ErrorSeverity string

const (
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level issues (disk full, permissions)
	ErrorSeverityError    ErrorSeverity = "error"    // File-level issues (corruption, unreadable)
)

// ProcessError represents a categorized error for a single source file
type ProcessError struct {
	FilePath    string
	Stage       string // size, route, mkdir, stat, copy, replace
	Category    ErrorCategory
	Severity    ErrorSeverity
	OriginalErr error
	Suggestion  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s/%s] %s: %v", e.Severity, e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// stageError records which step of processing a file failed.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func withStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, err: err}
}

// CategorizeError analyzes an error and returns a ProcessError with category and severity
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	procErr := &ProcessError{
		FilePath:    filePath,
		OriginalErr: err,
	}
	var se *stageError
	if errors.As(err, &se) {
		procErr.Stage = se.stage
	}

	switch {
	case strings.Contains(errStr, "no space left"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Free up disk space on the target drive and run again"

	case strings.Contains(errStr, "permission denied"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Check permissions on both source and target directories"

	case strings.Contains(errStr, "read-only file system"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Target filesystem is read-only - check mount options"

	case strings.Contains(errStr, "too many open files"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "File descriptor limit reached - raise ulimit and run again"

	case strings.Contains(errStr, "hash verification failed"),
		strings.Contains(errStr, "hash mismatch"),
		strings.Contains(errStr, "size mismatch"):
		procErr.Category = ErrorCategoryHash
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Data changed during copy - check disk health and source integrity"

	case strings.Contains(errStr, "input/output error"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "I/O error - check disk health with SMART tools"

	case strings.Contains(errStr, "no such file"),
		strings.Contains(errStr, "file does not exist"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "File disappeared during the run - check if an external drive disconnected"

	case errors.Is(err, errMissingTimestamp):
		procErr.Category = ErrorCategoryInvalid
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Internal inconsistency - please report this file"

	default:
		procErr.Category = ErrorCategoryUnknown
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Unexpected error - check logs for details"
	}

	return procErr
}

// ErrorStats tracks per-file errors during a run
type ErrorStats struct {
	Total      int
	Critical   int
	Errors     int
	ByCategory map[ErrorCategory]int
	LastErrors []*ProcessError // Last 5 errors for quick diagnosis
}

func NewErrorStats() *ErrorStats {
	return &ErrorStats{
		ByCategory: make(map[ErrorCategory]int),
		LastErrors: make([]*ProcessError, 0, 5),
	}
}

func (s *ErrorStats) Add(err *ProcessError) {
	s.Total++
	s.ByCategory[err.Category]++

	switch err.Severity {
	case ErrorSeverityCritical:
		s.Critical++
	default:
		s.Errors++
	}

	if len(s.LastErrors) >= 5 {
		s.LastErrors = s.LastErrors[1:]
	}
	s.LastErrors = append(s.LastErrors, err)
}

// Report creates a human-readable error report
func (s *ErrorStats) Report() string {
	if s.Total == 0 {
		return ""
	}
	var report strings.Builder

	fmt.Fprintf(&report, "\nRun encountered %d errors:\n\n", s.Total)
	if s.Critical > 0 {
		fmt.Fprintf(&report, "  Critical: %d (system-level issues)\n", s.Critical)
	}
	if s.Errors > 0 {
		fmt.Fprintf(&report, "  Errors:   %d (file-level issues)\n", s.Errors)
	}

	report.WriteString("\nError categories:\n")
	cats := make([]string, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		fmt.Fprintf(&report, "  - %s: %d\n", cat, s.ByCategory[ErrorCategory(cat)])
	}

	report.WriteString("\nRecent errors:\n")
	for i, err := range s.LastErrors {
		fmt.Fprintf(&report, "\n%d. %s\n", i+1, err.FilePath)
		fmt.Fprintf(&report, "   Category: %s | Severity: %s\n", err.Category, err.Severity)
		if err.Stage != "" {
			fmt.Fprintf(&report, "   Stage: %s\n", err.Stage)
		}
		fmt.Fprintf(&report, "   Error: %v\n", err.OriginalErr)
		if err.Suggestion != "" {
			fmt.Fprintf(&report, "   Suggestion: %s\n", err.Suggestion)
		}
	}

	return report.String()
}
