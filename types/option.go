package types

// Option mirrors a boolean-prefixed optional field: a single bool byte
// says whether the value that follows is present.
type Option[T any] struct {
	Present bool
	Value   T
}

func Some[T any](v T) Option[T] { return Option[T]{Present: true, Value: v} }
func None[T any]() Option[T]    { return Option[T]{} }

// Either models a field whose shape is chosen by some preceding
// discriminant (e.g. Slot's "present" bool gating which struct follows,
// or a protocol-version gate picking between two encodings of the same
// logical field).
type Either[L, R any] struct {
	IsLeft bool
	Left   L
	Right  R
}

func LeftOf[L, R any](v L) Either[L, R]  { return Either[L, R]{IsLeft: true, Left: v} }
func RightOf[L, R any](v R) Either[L, R] { return Either[L, R]{Right: v} }
