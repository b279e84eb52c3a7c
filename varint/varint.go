// Package varint implements the LEB128-style variable-length integer
// encodings used to frame every packet on the wire: VarInt (up to 5
// bytes, backs packet ids, lengths and most numeric fields) and VarLong
// (up to 10 bytes).
package varint

import (
	"io"

	"mcproto/protoerr"
)

const (
	// MaxVarIntBytes is the longest a VarInt encoding of an int32 can be.
	MaxVarIntBytes = 5
	// MaxVarLongBytes is the longest a VarLong encoding of an int64 can be.
	MaxVarLongBytes = 10

	segmentBits = 0x7F
	continueBit = 0x80
)

// ReadVarInt decodes a VarInt from r, reading one byte at a time so it
// never over-reads past the value's own encoding (callers frame-sync on
// exactly this property: a length-prefix VarInt never consumes a byte
// belonging to the body that follows it).
func ReadVarInt(r io.ByteReader) (int32, error) {
	var value int32
	var position uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, protoerr.ErrUnexpectedEof
			}
			return 0, protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
		}
		value |= int32(b&segmentBits) << position
		if b&continueBit == 0 {
			break
		}
		position += 7
		if position >= 32 {
			return 0, protoerr.ErrVarIntTooLong
		}
	}
	return value, nil
}

// WriteVarInt encodes value and writes it to w.
func WriteVarInt(w io.ByteWriter, value int32) error {
	v := uint32(value)
	for {
		if v&^uint32(segmentBits) == 0 {
			return w.WriteByte(byte(v))
		}
		if err := w.WriteByte(byte(v&segmentBits) | continueBit); err != nil {
			return err
		}
		v >>= 7
	}
}

// SizeVarInt returns the number of bytes WriteVarInt would emit for value.
func SizeVarInt(value int32) int {
	v := uint32(value)
	n := 1
	for v&^uint32(segmentBits) != 0 {
		v >>= 7
		n++
	}
	return n
}

// ReadVarLong decodes a VarLong from r.
func ReadVarLong(r io.ByteReader) (int64, error) {
	var value int64
	var position uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, protoerr.ErrUnexpectedEof
			}
			return 0, protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
		}
		value |= int64(b&segmentBits) << position
		if b&continueBit == 0 {
			break
		}
		position += 7
		if position >= 64 {
			return 0, protoerr.ErrVarIntTooLong
		}
	}
	return value, nil
}

// WriteVarLong encodes value and writes it to w.
func WriteVarLong(w io.ByteWriter, value int64) error {
	v := uint64(value)
	for {
		if v&^uint64(segmentBits) == 0 {
			return w.WriteByte(byte(v))
		}
		if err := w.WriteByte(byte(v&segmentBits) | continueBit); err != nil {
			return err
		}
		v >>= 7
	}
}

// SizeVarLong returns the number of bytes WriteVarLong would emit for value.
func SizeVarLong(value int64) int {
	v := uint64(value)
	n := 1
	for v&^uint64(segmentBits) != 0 {
		v >>= 7
		n++
	}
	return n
}
