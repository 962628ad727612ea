// Package errors provides structured error types for the rangedump library.
//
// Errors are categorized by Phase (where in the pipeline the error occurred)
// and Kind (error category). The Error type includes rich context: the
// description path, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidField).
//		Path("desc", "2").
//		Value("lots").
//		Detail("invalid size field %q", "lots").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidArity(errors.PhaseParse, path, 5, segment)
//	err := errors.NegativeOffset(-4)
//
// All errors implement the standard error interface and support errors.Is/As;
// two Errors match under errors.Is when their Phase and Kind agree.
package errors
