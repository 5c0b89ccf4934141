// Package validation enforces the content-quality gate: structural and
// length invariants generated content must satisfy before it is returned to
// the caller.
package validation

import "fmt"

// QualityError represents content that failed the quality gate. It is not
// retried automatically; the caller decides whether to regenerate.
type QualityError struct {
	Message string
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("content quality error: %s", e.Message)
}
