package fsresult

import "log/slog"

// Result is the outcome of a filesystem action that produces a value.
// The value is present if and only if the code is OK.
type Result[T any] struct {
	code  ErrorCode
	value T
}

// Ok returns a successful result carrying v
func Ok[T any](v T) Result[T] {
	return Result[T]{code: OK, value: v}
}

// Fail returns a failed result. OK is not a failure code and is
// recorded as Generic.
func Fail[T any](code ErrorCode) Result[T] {
	if code == OK {
		code = Generic
	}
	return Result[T]{code: code}
}

// IsOk reports whether the action succeeded
func (r Result[T]) IsOk() bool {
	return r.code == OK
}

// ErrorCode returns the classified code of the attempt
func (r Result[T]) ErrorCode() ErrorCode {
	return r.code
}

// Value returns the carried value and whether it is present
func (r Result[T]) Value() (T, bool) {
	return r.value, r.code == OK
}

// Status drops the value and keeps the code
func (r Result[T]) Status() Status {
	return Status{code: r.code}
}

// Status is the outcome of a filesystem action that produces no value
type Status struct {
	code ErrorCode
}

// StatusOf returns a Status with the given code
func StatusOf(code ErrorCode) Status {
	return Status{code: code}
}

// StatusFromBool converts a coarse success flag. false becomes Generic
// since a boolean carries no reason.
func StatusFromBool(ok bool) Status {
	if ok {
		return Status{code: OK}
	}
	return Status{code: Generic}
}

// IsOk reports whether the action succeeded
func (s Status) IsOk() bool {
	return s.code == OK
}

// ErrorCode returns the classified code of the attempt
func (s Status) ErrorCode() ErrorCode {
	return s.code
}

// Wrap runs action and classifies its failure, if any
func Wrap[T any](action func() (T, error)) Result[T] {
	v, err := action()
	if err != nil {
		code := Classify(err)
		slog.Debug("filesystem action failed", "code", code, "error", err)
		return Fail[T](code)
	}
	return Ok(v)
}

// Do runs an action that returns no value and classifies its failure
func Do(action func() error) Status {
	if err := action(); err != nil {
		code := Classify(err)
		slog.Debug("filesystem action failed", "code", code, "error", err)
		return Status{code: code}
	}
	return Status{code: OK}
}
