package tools

import "fmt"

// Error kinds recorded on failed tool results. These travel through the
// transcript as data, not as Go errors: a failed step is fed back to the
// oracle as feedback it can correct against.
const (
	ErrKindInvalidArgument = "invalid_argument"
	ErrKindUnknownColumn   = "unknown_column"
	ErrKindTypeMismatch    = "type_mismatch"
	ErrKindRender          = "render_error"
	ErrKindUnknownTool     = "unknown_tool"
)

// Result is the tagged outcome of one tool execution: Ok carries the textual
// value fed back to the oracle (and an optional chart reference); Err carries
// a kind plus message.
type Result struct {
	OK         bool
	Value      string
	ChartPath  string
	ErrKind    string
	ErrMessage string
}

// Ok builds a successful result.
func Ok(value string) Result {
	return Result{OK: true, Value: value}
}

// Errf builds a failed result with a formatted message.
func Errf(kind, format string, args ...any) Result {
	return Result{OK: false, ErrKind: kind, ErrMessage: fmt.Sprintf(format, args...)}
}

// Feedback renders the result as the tool message content for the next
// reasoning step.
func (r Result) Feedback() string {
	if r.OK {
		return r.Value
	}
	return fmt.Sprintf("ERROR (%s): %s", r.ErrKind, r.ErrMessage)
}
