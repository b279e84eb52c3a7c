// Package protoerr defines the two error families surfaced by mcproto's
// decode and encode paths.
//
// Decoders and encoders never return a bare error string: every failure
// is one of a small, closed set of Kinds so callers can branch with
// errors.Is instead of string matching (the Go analogue of the source
// protocol's two thiserror enums, DeserializeError and SerializeError).
package protoerr

import "fmt"

// DeserializeKind enumerates every way a decode can fail.
type DeserializeKind int

const (
	UnexpectedEof DeserializeKind = iota
	VarIntTooLong
	InvalidUtf8
	InvalidEnumVariant
	UnknownPacketId
	BrokenPacket
	InvalidSharedSecretLength
	ZlibError
	RsaError
	SpkiError
	NbtError
)

func (k DeserializeKind) String() string {
	switch k {
	case UnexpectedEof:
		return "unexpected eof"
	case VarIntTooLong:
		return "varint too long"
	case InvalidUtf8:
		return "invalid utf8"
	case InvalidEnumVariant:
		return "invalid enum variant"
	case UnknownPacketId:
		return "unknown packet id"
	case BrokenPacket:
		return "broken packet"
	case InvalidSharedSecretLength:
		return "invalid shared secret length"
	case ZlibError:
		return "zlib error"
	case RsaError:
		return "rsa error"
	case SpkiError:
		return "spki error"
	case NbtError:
		return "nbt error"
	default:
		return "unknown deserialize error"
	}
}

// DeserializeError is returned by every decode path in the codec.
//
// Kind is what callers should switch on (or compare with errors.Is via
// Is(target)); Msg carries the human-readable detail. UnexpectedEof at
// the top of a frame is the one recoverable Kind — protocol.Codec.Decode
// treats it as "buffer more bytes and retry", everything else is fatal
// to the connection.
type DeserializeError struct {
	Kind DeserializeKind
	Msg  string
	Err  error // wrapped cause, if any (zlib/rsa/x509 errors)
}

func (e *DeserializeError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *DeserializeError) Unwrap() error { return e.Err }

// Is supports errors.Is(err, protoerr.ErrUnexpectedEof) style comparisons by Kind.
func (e *DeserializeError) Is(target error) bool {
	other, ok := target.(*DeserializeError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func NewDeserializeError(kind DeserializeKind, msg string) *DeserializeError {
	return &DeserializeError{Kind: kind, Msg: msg}
}

func WrapDeserializeError(kind DeserializeKind, err error) *DeserializeError {
	return &DeserializeError{Kind: kind, Msg: err.Error(), Err: err}
}

// Sentinel values for errors.Is comparisons against a fixed Kind.
var (
	ErrUnexpectedEof = &DeserializeError{Kind: UnexpectedEof}
	ErrVarIntTooLong = &DeserializeError{Kind: VarIntTooLong}
	ErrBrokenPacket  = &DeserializeError{Kind: BrokenPacket}
)

// InvalidEnum builds an InvalidEnumVariant error naming the enum and the
// offending tag value, matching spec's InvalidEnumVariant(name, value).
func InvalidEnum(enumName string, value int64) *DeserializeError {
	return &DeserializeError{
		Kind: InvalidEnumVariant,
		Msg:  fmt.Sprintf("%s: unknown tag %d", enumName, value),
	}
}

// SerializeKind enumerates every way an encode can fail. Encoding a
// well-formed value otherwise cannot fail (spec's SerializeError is a
// much smaller set than DeserializeError for exactly this reason).
type SerializeKind int

const (
	SerRsaError SerializeKind = iota
	SerSpkiError
	SerNbtError
	SerZlibError
)

func (k SerializeKind) String() string {
	switch k {
	case SerRsaError:
		return "rsa error"
	case SerSpkiError:
		return "spki error"
	case SerNbtError:
		return "nbt error"
	case SerZlibError:
		return "zlib error"
	default:
		return "unknown serialize error"
	}
}

type SerializeError struct {
	Kind SerializeKind
	Msg  string
	Err  error
}

func (e *SerializeError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *SerializeError) Unwrap() error { return e.Err }

func WrapSerializeError(kind SerializeKind, err error) *SerializeError {
	return &SerializeError{Kind: kind, Msg: err.Error(), Err: err}
}

func NewSerializeError(kind SerializeKind, msg string) *SerializeError {
	return &SerializeError{Kind: kind, Msg: msg}
}
