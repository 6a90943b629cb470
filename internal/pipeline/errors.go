package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying pipeline failures. Only ErrConfiguration (and a
// missing required input file) aborts a run; everything else is caught at the
// smallest scope, logged, and counted.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrDiscovery     = errors.New("discovery error")
	ErrResolution    = errors.New("resolution error")
	ErrUpload        = errors.New("upload error")
	ErrRename        = errors.New("rename error")
	ErrSubmission    = errors.New("submission error")
)

// Wrap builds an error message that includes subject context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, subject, operation string, err error) error {
	detail := buildDetail(subject, operation)
	if marker == nil {
		marker = ErrSubmission
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error should abort the process rather than be
// counted and skipped.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(subject, operation string) string {
	parts := make([]string, 0, 2)
	if subject = strings.TrimSpace(subject); subject != "" {
		parts = append(parts, subject)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
