package types

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingBinaries
	KindSpawn
	KindProcessExit
	KindMalformedPair
	KindMissingFields
	KindInvalidNumber
	KindNothingToProcess
	KindNothingProcessable
	KindUnknownTask
	KindNotSupported
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindMissingBinaries:    "missing binaries",
	KindSpawn:              "spawn",
	KindProcessExit:        "process exit",
	KindMalformedPair:      "malformed pair",
	KindMissingFields:      "missing fields",
	KindInvalidNumber:      "invalid number",
	KindNothingToProcess:   "nothing to process",
	KindNothingProcessable: "nothing processable",
	KindUnknownTask:        "unknown task",
	KindNotSupported:       "not supported",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by the media pipeline. Only the
// payload fields relevant to Kind are populated.
type Error struct {
	Kind    Kind
	Message string

	Tools  []string // KindMissingBinaries
	Hint   string   // KindMissingBinaries
	Fields []string // KindMissingFields
	Field  string   // KindInvalidNumber
	Value  string   // KindInvalidNumber
	Line   string   // KindMalformedPair
	Stderr string   // KindSpawn, KindProcessExit
	Path   string   // per-file failures
	Task   string   // KindUnknownTask

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "[%s] ", e.Path)
	}
	b.WriteString(e.Message)

	switch e.Kind {
	case KindMissingBinaries:
		fmt.Fprintf(&b, ": %s. %s", strings.Join(e.Tools, ", "), e.Hint)
	case KindMissingFields:
		fmt.Fprintf(&b, ": %s", strings.Join(e.Fields, ", "))
	case KindInvalidNumber:
		fmt.Fprintf(&b, ": %s=%q", e.Field, e.Value)
	case KindMalformedPair:
		fmt.Fprintf(&b, ": %q", e.Line)
	case KindUnknownTask:
		fmt.Fprintf(&b, ": %q", e.Task)
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, "\n%s", stderr)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithPath returns a copy of e tagged with the file it concerns.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// IsKind reports whether err, or anything it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// TagPath attaches path to err. Non-pipeline errors are wrapped in an Error
// of KindUnknown so the path survives.
func TagPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.WithPath(path)
	}
	return &Error{Kind: KindUnknown, Message: "failed", Path: path, Cause: err}
}

func MissingBinaries(tools []string, hint string) *Error {
	return &Error{Kind: KindMissingBinaries, Message: "required binaries not found", Tools: tools, Hint: hint}
}

func MissingFields(fields []string) *Error {
	return &Error{Kind: KindMissingFields, Message: "missing required fields", Fields: fields}
}

func InvalidNumber(field, value string) *Error {
	return &Error{Kind: KindInvalidNumber, Message: "invalid numeric value", Field: field, Value: value}
}

func MalformedPair(line string) *Error {
	return &Error{Kind: KindMalformedPair, Message: "malformed key=value pair", Line: line}
}

func NothingToProcess(message string) *Error {
	return &Error{Kind: KindNothingToProcess, Message: message}
}

func NothingProcessable(message string) *Error {
	return &Error{Kind: KindNothingProcessable, Message: message}
}

func UnknownTask(task string) *Error {
	return &Error{Kind: KindUnknownTask, Message: "unknown task", Task: task}
}
