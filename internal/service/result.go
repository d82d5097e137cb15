package service

import "errors"

// ResultKind tags the outcome of a core operation. Expected business
// conditions are reported through a Result; only store failures come back
// as a Go error.
type ResultKind int

const (
	KindOK ResultKind = iota
	KindDuplicate
	KindRefused
	KindNotFound
	KindInvalid
)

func (k ResultKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindDuplicate:
		return "duplicate"
	case KindRefused:
		return "refused"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result carries the payload matching its Kind:
//   - KindOK: Value
//   - KindDuplicate: Existing, the record that already holds the name
//   - KindRefused: References, the number of rows still pointing at the target
//   - KindNotFound, KindInvalid: Message only
type Result[T any] struct {
	Kind       ResultKind
	Value      T
	Existing   *T
	References int64
	Message    string
}

func Ok[T any](value T, message string) Result[T] {
	return Result[T]{Kind: KindOK, Value: value, Message: message}
}

func Duplicate[T any](existing T, message string) Result[T] {
	return Result[T]{Kind: KindDuplicate, Existing: &existing, Message: message}
}

func Refused[T any](references int64, message string) Result[T] {
	return Result[T]{Kind: KindRefused, References: references, Message: message}
}

func NotFound[T any](message string) Result[T] {
	return Result[T]{Kind: KindNotFound, Message: message}
}

func Invalid[T any](message string) Result[T] {
	return Result[T]{Kind: KindInvalid, Message: message}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Kind == KindOK
}

// invalidOrError turns a *ValidationError into a KindInvalid result and
// passes any other error through.
func invalidOrError[T any](err error) (Result[T], error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return Invalid[T](verr.Error()), nil
	}
	return Result[T]{}, err
}
