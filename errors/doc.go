// Package errors provides structured error types for the postcard module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, input offset, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindBadBool).
//		Path("sensor", "enabled").
//		Offset(12).
//		Detail("byte 0x02 is not a bool").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEnd(errors.PhaseDecode, 3, 4, 1)
//	err := errors.InvalidDiscriminant(errors.PhaseDecode, path, 0, 7, 3)
//
// The Err* sentinels carry only a Kind and match an error of that kind in
// any phase:
//
//	if errors.Is(err, pcerrors.ErrUnexpectedEnd) { ... }
package errors
