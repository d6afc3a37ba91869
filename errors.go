package gorecord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/gorecord/i18n"
)

// Issue codes. Each code corresponds to one failure kind of the model layer.
const (
	CodeSchemaConflict     = "schema_conflict"
	CodeUnknownField       = "unknown_field"
	CodeRequiredValue      = "required_value"
	CodeTypeMismatch       = "type_mismatch"
	CodeUnsupportedType    = "unsupported_type"
	CodeOutOfRange         = "out_of_range"
	CodeStructuralMismatch = "structural_mismatch"
	CodeSerialization      = "serialization"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As reach wrapped failures.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// NewIssue builds a single-issue error at the root path. Wrappers use it to
// report failures; walkers rebase the path onto the field being visited.
func NewIssue(code string, params map[string]any) Issues {
	return Issues{{Path: "/", Code: code, Message: i18n.T(code, paramStrings(params)), Params: params}}
}

// rebase prefixes every issue path in err with base. Non-Issues errors are
// reported with the fallback code.
func rebase(base PathRef, err error, fallback string) Issues {
	iss, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base.Pointer(), Code: fallback, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = joinPointer(base.Pointer(), it.Path)
		out = append(out, it)
	}
	return out
}

func joinPointer(base, p string) string {
	switch {
	case p == "" || p == "/":
		return base
	case base == "/":
		return p
	case p[0] == '/':
		return base + p
	default:
		return base + "/" + p
	}
}

func paramStrings(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}
