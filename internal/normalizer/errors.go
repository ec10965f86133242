package normalizer

import (
	"fmt"
)

// Code identifies why a model response could not be turned into a Trip.
type Code string

const (
	CodeNoJSONFound     Code = "NO_JSON_FOUND"
	CodeMalformedJSON   Code = "MALFORMED_JSON"
	CodeMissingTripKey  Code = "MISSING_TRIP_KEY"
	CodeSchemaViolation Code = "SCHEMA_VIOLATION"
)

// ExcerptLimit bounds how many characters of model text a MalformedJSON error carries.
const ExcerptLimit = 500

// Sentinels for errors.Is; matching is by Code only.
var (
	ErrNoJSONFound     = &Error{Code: CodeNoJSONFound}
	ErrMalformedJSON   = &Error{Code: CodeMalformedJSON}
	ErrMissingTripKey  = &Error{Code: CodeMissingTripKey}
	ErrSchemaViolation = &Error{Code: CodeSchemaViolation}
)

type Error struct {
	Code Code
	// Path is the first offending field, set for CodeSchemaViolation.
	Path string
	// Excerpt is the head of the repaired text, set for CodeMalformedJSON.
	Excerpt string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s at %s: %v", e.Code, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s at %s", e.Code, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func schemaViolation(path string, err error) *Error {
	return &Error{Code: CodeSchemaViolation, Path: path, Err: err}
}

func malformed(text string, err error) *Error {
	return &Error{Code: CodeMalformedJSON, Excerpt: Excerpt(text), Err: err}
}

// Excerpt cuts text to ExcerptLimit runes.
func Excerpt(text string) string {
	n := 0
	for i := range text {
		if n == ExcerptLimit {
			return text[:i]
		}
		n++
	}
	return text
}
