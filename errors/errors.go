package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile  Phase = "compile"  // Go type to shape
	PhaseEncode   Phase = "encode"   // value to bytes
	PhaseDecode   Phase = "decode"   // bytes to value
	PhaseFrame    Phase = "frame"    // COBS stuffing and destuffing
	PhaseRegister Phase = "register" // enum registration
)

// Kind categorizes the error
type Kind string

const (
	// Wire kinds. Every decode failure maps to exactly one of these.
	KindUnexpectedEnd  Kind = "unexpected_end"
	KindBadVarint      Kind = "bad_varint"
	KindBadBool        Kind = "bad_bool"
	KindBadOption      Kind = "bad_option"
	KindBadChar        Kind = "bad_char"
	KindBadUTF8        Kind = "bad_utf8"
	KindBadEnum        Kind = "bad_enum"
	KindBadEncoding    Kind = "bad_encoding"
	KindNotSupported   Kind = "not_supported"
	KindNotImplemented Kind = "not_implemented"

	// Value-model kinds.
	KindTypeMismatch Kind = "type_mismatch"
	KindUnsupported  Kind = "unsupported"
	KindNilPointer   Kind = "nil_pointer"
	KindOverflow     Kind = "overflow"
	KindRegistration Kind = "registration"
)

// Kind-only sentinels for use with errors.Is. They match any phase.
var (
	ErrUnexpectedEnd  = &Error{Kind: KindUnexpectedEnd}
	ErrBadVarint      = &Error{Kind: KindBadVarint}
	ErrBadBool        = &Error{Kind: KindBadBool}
	ErrBadOption      = &Error{Kind: KindBadOption}
	ErrBadChar        = &Error{Kind: KindBadChar}
	ErrBadUTF8        = &Error{Kind: KindBadUTF8}
	ErrBadEnum        = &Error{Kind: KindBadEnum}
	ErrBadEncoding    = &Error{Kind: KindBadEncoding}
	ErrNotSupported   = &Error{Kind: KindNotSupported}
	ErrNotImplemented = &Error{Kind: KindNotImplemented}
	ErrTypeMismatch   = &Error{Kind: KindTypeMismatch}
	ErrUnsupported    = &Error{Kind: KindUnsupported}
	ErrNilPointer     = &Error{Kind: KindNilPointer}
	ErrOverflow       = &Error{Kind: KindOverflow}
	ErrRegistration   = &Error{Kind: KindRegistration}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
	// Offset is the input position of a decode or frame failure, -1 when unknown.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 && (e.Phase == PhaseDecode || e.Phase == PhaseFrame) {
		b.WriteString(" (offset ")
		b.WriteString(strconv.Itoa(e.Offset))
		b.WriteByte(')')
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kind must match; Phase
// must match only when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the input position
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEnd reports input that ended before a value was complete.
func UnexpectedEnd(phase Phase, offset, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedEnd,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, expected string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Offset: -1,
		Detail: "expected " + expected,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindBadUTF8,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidChar creates an error for a value that is not a Unicode scalar value.
func InvalidChar(phase Phase, path []string, offset int, v uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadChar,
		Path:   path,
		Offset: offset,
		Value:  v,
		Detail: fmt.Sprintf("0x%X is not a unicode scalar value", v),
	}
}

// InvalidDiscriminant creates an error for an enum ordinal with no variant.
func InvalidDiscriminant(phase Phase, path []string, offset int, disc uint64, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadEnum,
		Path:   path,
		Offset: offset,
		Value:  disc,
		Detail: fmt.Sprintf("variant index %d out of range (%d variants)", disc, count),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: -1,
		Detail: what,
	}
}

// NotSupported reports a self-describing request the format cannot answer.
func NotSupported(what string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindNotSupported,
		Offset: -1,
		Detail: what + " requires a self-describing format",
	}
}

// NotImplemented reports a shape the format does not carry.
func NotImplemented(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotImplemented,
		Path:   path,
		Offset: -1,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Offset: -1,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("value %v exceeds %s", value, limit),
		Value:  value,
	}
}

// Registration creates a registration error
func Registration(goType string, detail string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		GoType: goType,
		Offset: -1,
		Detail: detail,
	}
}

// AtPath returns err with segments prepended to its path when err is an
// *Error. Other errors, including sink errors, pass through unchanged.
func AtPath(err error, segments ...string) error {
	e, ok := err.(*Error)
	if !ok || len(segments) == 0 {
		return err
	}
	cp := *e
	cp.Path = make([]string, 0, len(segments)+len(e.Path))
	cp.Path = append(cp.Path, segments...)
	cp.Path = append(cp.Path, e.Path...)
	return &cp
}
