// Package boterror defines the typed errors raised at the bot's adapter and
// validation boundaries.
package boterror

import "fmt"

// ConfigError reports a missing or invalid configuration value. It is fatal
// at startup.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Key, e.Reason)
}

// AdapterError wraps a failure from an external collaborator (storage upload,
// OCR, spreadsheet read/write). The dialogue engine converts these into
// user-facing messages; they never propagate past the engine boundary.
type AdapterError struct {
	Adapter string // "drive", "sheets", "vision"
	Op      string
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Adapter, e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that the AI extractor returned something that could
// not be turned into structured fields. The engine treats it as recoverable:
// the user is asked to enter the record manually.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError reports an answer that does not satisfy the current
// question (unparseable amount, required field skipped). The session is
// preserved and the same question re-asked.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
