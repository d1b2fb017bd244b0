package chat

import "fmt"

// ClassificationError reports a failure of the backing model while labeling
// a question. No retry is attempted; the caller owns any retry policy.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string { return fmt.Sprintf("classify question: %v", e.Err) }
func (e *ClassificationError) Unwrap() error { return e.Err }

// SelectionError reports a failure of the backing model during file
// selection.
type SelectionError struct {
	Err error
}

func (e *SelectionError) Error() string { return fmt.Sprintf("select files: %v", e.Err) }
func (e *SelectionError) Unwrap() error { return e.Err }

// InternalError is the single failure surface of Engine.Answer: any
// classification, selection, or completion failure is wrapped in it.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return fmt.Sprintf("answer query: %v", e.Err) }
func (e *InternalError) Unwrap() error { return e.Err }
