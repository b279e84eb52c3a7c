// Package types implements the primitive wire encodings shared by every
// packet: strings, booleans, fixed-width numbers, byte arrays, UUIDs,
// packed block positions, Option/Either wrappers, RSA public keys in
// SubjectPublicKeyInfo form, and item Slots.
package types

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"mcproto/protoerr"
	"mcproto/varint"
)

// Writer accumulates the wire bytes of a single packet body. It wraps a
// bytes.Buffer so every Write* method can be chained for errors without
// threading an io.Writer through every field by hand.
type Writer struct {
	buf bytes.Buffer
	err error
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
func (w *Writer) Len() int      { return w.buf.Len() }
func (w *Writer) Err() error    { return w.err }

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) WriteByte(b byte) {
	if w.err != nil {
		return
	}
	w.buf.WriteByte(b)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

func (w *Writer) WriteBytes(b []byte) {
	if w.err != nil {
		return
	}
	w.buf.Write(b)
}

func (w *Writer) WriteVarInt(v int32) {
	if w.err != nil {
		return
	}
	if err := varint.WriteVarInt(&w.buf, v); err != nil {
		w.fail(err)
	}
}

func (w *Writer) WriteVarLong(v int64) {
	if w.err != nil {
		return
	}
	if err := varint.WriteVarLong(&w.buf, v); err != nil {
		w.fail(err)
	}
}

func (w *Writer) WriteU8(v uint8)   { w.WriteByte(v) }
func (w *Writer) WriteI8(v int8)    { w.WriteByte(byte(v)) }
func (w *Writer) WriteBE(v any)     { _ = binary.Write(&w.buf, binary.BigEndian, v) }
func (w *Writer) WriteU16(v uint16) { w.WriteBE(v) }
func (w *Writer) WriteI16(v int16)  { w.WriteBE(v) }
func (w *Writer) WriteI32(v int32)  { w.WriteBE(v) }
func (w *Writer) WriteI64(v int64)  { w.WriteBE(v) }
func (w *Writer) WriteU64(v uint64) { w.WriteBE(v) }
func (w *Writer) WriteF32(v float32) {
	w.WriteBE(math.Float32bits(v))
}
func (w *Writer) WriteF64(v float64) {
	w.WriteBE(math.Float64bits(v))
}

// WriteString writes a VarInt byte-length prefix followed by the UTF-8
// bytes of s.
func (w *Writer) WriteString(s string) {
	w.WriteVarInt(int32(len(s)))
	w.WriteBytes([]byte(s))
}

// WriteByteArray writes a VarInt length prefix followed by raw bytes,
// used for opaque payloads (encrypted shared secrets and verify tokens,
// DER keys, signatures). Plugin message data and Slot NBT are written
// unprefixed with WriteBytes instead.
func (w *Writer) WriteByteArray(b []byte) {
	w.WriteVarInt(int32(len(b)))
	w.WriteBytes(b)
}

func (w *Writer) WriteUUID(u UUID) {
	w.WriteBytes(u[:])
}

// Reader walks a decoded packet body byte-by-byte, tracking the first
// error so callers can defer failure checks to the end of a field list
// exactly like Writer does for encoding.
type Reader struct {
	r   *bytes.Reader
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{r: bytes.NewReader(b)}
}

func (r *Reader) Err() error       { return r.err }
func (r *Reader) Remaining() int   { return r.r.Len() }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) eof(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return protoerr.ErrUnexpectedEof
	}
	return protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
}

func (r *Reader) ReadByte() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.fail(r.eof(err))
		return 0
	}
	return b
}

func (r *Reader) ReadBool() bool { return r.ReadByte() != 0 }

func (r *Reader) ReadBytes(n int) []byte {
	if r.err != nil || n < 0 {
		return nil
	}
	// Bound the allocation by what's actually left to read rather than
	// an arbitrary max: a declared length past the end of the buffer
	// can never be satisfied, so reject it before allocating n bytes.
	if n > r.r.Len() {
		r.fail(protoerr.ErrUnexpectedEof)
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.fail(r.eof(err))
		return nil
	}
	return buf
}

func (r *Reader) ReadVarInt() int32 {
	if r.err != nil {
		return 0
	}
	v, err := varint.ReadVarInt(r.r)
	if err != nil {
		r.fail(err)
		return 0
	}
	return v
}

func (r *Reader) ReadVarLong() int64 {
	if r.err != nil {
		return 0
	}
	v, err := varint.ReadVarLong(r.r)
	if err != nil {
		r.fail(err)
		return 0
	}
	return v
}

func (r *Reader) readBE(v any) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r.r, binary.BigEndian, v); err != nil {
		r.fail(r.eof(err))
	}
}

func (r *Reader) ReadU8() uint8 { return r.ReadByte() }
func (r *Reader) ReadI8() int8  { return int8(r.ReadByte()) }
func (r *Reader) ReadU16() uint16 {
	var v uint16
	r.readBE(&v)
	return v
}
func (r *Reader) ReadI16() int16 {
	var v int16
	r.readBE(&v)
	return v
}
func (r *Reader) ReadI32() int32 {
	var v int32
	r.readBE(&v)
	return v
}
func (r *Reader) ReadI64() int64 {
	var v int64
	r.readBE(&v)
	return v
}
func (r *Reader) ReadU64() uint64 {
	var v uint64
	r.readBE(&v)
	return v
}
func (r *Reader) ReadF32() float32 {
	var v uint32
	r.readBE(&v)
	return math.Float32frombits(v)
}
func (r *Reader) ReadF64() float64 {
	var v uint64
	r.readBE(&v)
	return math.Float64frombits(v)
}

// ReadString reads a VarInt byte-length prefix then that many bytes.
// The protocol places no maximum on a string's declared length — that's
// left to whichever packet field cares (e.g. a 16-character player
// name) rather than enforced here — so the only rejection at this
// layer is a negative length and bodies that fail UTF-8 validation.
func (r *Reader) ReadString() string {
	n := r.ReadVarInt()
	if r.err != nil {
		return ""
	}
	if n < 0 {
		r.fail(protoerr.NewDeserializeError(protoerr.BrokenPacket, "negative string length"))
		return ""
	}
	b := r.ReadBytes(int(n))
	if r.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.fail(protoerr.NewDeserializeError(protoerr.InvalidUtf8, "string is not valid utf-8"))
		return ""
	}
	return string(b)
}

func (r *Reader) ReadByteArray() []byte {
	n := r.ReadVarInt()
	if r.err != nil {
		return nil
	}
	return r.ReadBytes(int(n))
}

func (r *Reader) ReadUUID() UUID {
	var u UUID
	copy(u[:], r.ReadBytes(16))
	return u
}
