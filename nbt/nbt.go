// Package nbt implements the minimal subset of Named Binary Tag needed
// to carry item metadata in Slot and block-entity/command-block data in
// the Play packets: compounds of named tags, nested to arbitrary depth.
//
// No NBT library appears anywhere in the reference corpus this module
// was grounded on; DESIGN.md records that omission and the decision to
// hand-roll this codec directly against the format's public spec.
package nbt

import (
	"encoding/binary"
	"io"
	"math"

	"mcproto/protoerr"
)

// Tag type ids, per the NBT specification.
const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// Compound is an ordered map of named tags. Values are one of: int8,
// int16, int32, int64, float32, float64, []byte, string, []int32,
// []int64, *Compound, or []any (a homogeneous List of one of the above).
type Compound struct {
	Names  []string
	Values []any
}

func NewCompound() *Compound { return &Compound{} }

func (c *Compound) Put(name string, v any) {
	c.Names = append(c.Names, name)
	c.Values = append(c.Values, v)
}

func (c *Compound) Get(name string) (any, bool) {
	for i, n := range c.Names {
		if n == name {
			return c.Values[i], true
		}
	}
	return nil, false
}

// EncodeUnnamed writes tag as a bare TagCompound payload (the Slot wire
// format omits the top-level name every standalone .nbt file would carry).
func EncodeUnnamed(c *Compound) ([]byte, error) {
	w := &nbtWriter{}
	w.writeByte(TagCompound)
	if err := w.writeCompoundBody(c); err != nil {
		return nil, err
	}
	w.writeByte(TagEnd)
	return w.buf, w.err
}

// DecodeUnnamed reads a bare TagCompound payload as written by
// EncodeUnnamed, or a single TagEnd byte for "no tag".
func DecodeUnnamed(r io.Reader) (*Compound, error) {
	d := &nbtReader{r: r}
	tag := d.readByte()
	if d.err != nil {
		return nil, d.err
	}
	if tag == TagEnd {
		return nil, nil
	}
	if tag != TagCompound {
		return nil, protoerr.NewDeserializeError(protoerr.NbtError, "expected compound tag")
	}
	c, err := d.readCompoundBody()
	if err != nil {
		return nil, err
	}
	return c, nil
}

type nbtWriter struct {
	buf []byte
	err error
}

func (w *nbtWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *nbtWriter) writeByte(b byte) { w.buf = append(w.buf, b) }
func (w *nbtWriter) writeBytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *nbtWriter) writeU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.writeBytes(b[:])
}

func (w *nbtWriter) writeString(s string) {
	if len(s) > math.MaxUint16 {
		w.fail(protoerr.NewSerializeError(protoerr.SerNbtError, "string too long for nbt"))
		return
	}
	w.writeU16(uint16(len(s)))
	w.writeBytes([]byte(s))
}

func (w *nbtWriter) writeI32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.writeBytes(b[:])
}

func (w *nbtWriter) writeI64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.writeBytes(b[:])
}

func (w *nbtWriter) writeCompoundBody(c *Compound) error {
	if c == nil {
		return nil
	}
	for i, name := range c.Names {
		v := c.Values[i]
		tag, err := w.writeNamedValue(name, v)
		if err != nil {
			return err
		}
		_ = tag
	}
	return w.err
}

func (w *nbtWriter) writeNamedValue(name string, v any) (byte, error) {
	tag := tagFor(v)
	if tag == TagEnd {
		return 0, protoerr.NewSerializeError(protoerr.SerNbtError, "unsupported nbt value type")
	}
	w.writeByte(tag)
	w.writeString(name)
	w.writeValue(tag, v)
	return tag, w.err
}

func (w *nbtWriter) writeValue(tag byte, v any) {
	switch tag {
	case TagByte:
		w.writeByte(byte(v.(int8)))
	case TagShort:
		w.writeU16(uint16(v.(int16)))
	case TagInt:
		w.writeI32(v.(int32))
	case TagLong:
		w.writeI64(v.(int64))
	case TagFloat:
		w.writeI32(int32(math.Float32bits(v.(float32))))
	case TagDouble:
		w.writeI64(int64(math.Float64bits(v.(float64))))
	case TagByteArray:
		b := v.([]byte)
		w.writeI32(int32(len(b)))
		w.writeBytes(b)
	case TagString:
		w.writeString(v.(string))
	case TagIntArray:
		arr := v.([]int32)
		w.writeI32(int32(len(arr)))
		for _, x := range arr {
			w.writeI32(x)
		}
	case TagLongArray:
		arr := v.([]int64)
		w.writeI32(int32(len(arr)))
		for _, x := range arr {
			w.writeI64(x)
		}
	case TagCompound:
		w.writeCompoundBody(v.(*Compound))
		w.writeByte(TagEnd)
	case TagList:
		list := v.([]any)
		if len(list) == 0 {
			w.writeByte(TagEnd)
			w.writeI32(0)
			return
		}
		elemTag := tagFor(list[0])
		w.writeByte(elemTag)
		w.writeI32(int32(len(list)))
		for _, e := range list {
			w.writeValue(elemTag, e)
		}
	}
}

func tagFor(v any) byte {
	switch v.(type) {
	case int8:
		return TagByte
	case int16:
		return TagShort
	case int32:
		return TagInt
	case int64:
		return TagLong
	case float32:
		return TagFloat
	case float64:
		return TagDouble
	case []byte:
		return TagByteArray
	case string:
		return TagString
	case []int32:
		return TagIntArray
	case []int64:
		return TagLongArray
	case *Compound:
		return TagCompound
	case []any:
		return TagList
	default:
		return TagEnd
	}
}

type nbtReader struct {
	r   io.Reader
	err error
}

func (d *nbtReader) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *nbtReader) readByte() byte {
	if d.err != nil {
		return 0
	}
	var b [1]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		d.fail(protoerr.WrapDeserializeError(protoerr.NbtError, err))
		return 0
	}
	return b[0]
}

func (d *nbtReader) readN(n int) []byte {
	if d.err != nil || n < 0 {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.fail(protoerr.WrapDeserializeError(protoerr.NbtError, err))
		return nil
	}
	return b
}

func (d *nbtReader) readU16() uint16 {
	b := d.readN(2)
	if d.err != nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (d *nbtReader) readI32() int32 {
	b := d.readN(4)
	if d.err != nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (d *nbtReader) readI64() int64 {
	b := d.readN(8)
	if d.err != nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

func (d *nbtReader) readString() string {
	n := d.readU16()
	if d.err != nil {
		return ""
	}
	return string(d.readN(int(n)))
}

func (d *nbtReader) readCompoundBody() (*Compound, error) {
	c := NewCompound()
	for {
		tag := d.readByte()
		if d.err != nil {
			return nil, d.err
		}
		if tag == TagEnd {
			return c, nil
		}
		name := d.readString()
		v, err := d.readValue(tag)
		if err != nil {
			return nil, err
		}
		c.Put(name, v)
	}
}

func (d *nbtReader) readValue(tag byte) (any, error) {
	switch tag {
	case TagByte:
		return int8(d.readByte()), d.err
	case TagShort:
		return int16(d.readU16()), d.err
	case TagInt:
		return d.readI32(), d.err
	case TagLong:
		return d.readI64(), d.err
	case TagFloat:
		return math.Float32frombits(uint32(d.readI32())), d.err
	case TagDouble:
		return math.Float64frombits(uint64(d.readI64())), d.err
	case TagByteArray:
		n := d.readI32()
		return d.readN(int(n)), d.err
	case TagString:
		return d.readString(), d.err
	case TagIntArray:
		n := d.readI32()
		arr := make([]int32, n)
		for i := range arr {
			arr[i] = d.readI32()
		}
		return arr, d.err
	case TagLongArray:
		n := d.readI32()
		arr := make([]int64, n)
		for i := range arr {
			arr[i] = d.readI64()
		}
		return arr, d.err
	case TagCompound:
		return d.readCompoundBody()
	case TagList:
		elemTag := d.readByte()
		n := d.readI32()
		if d.err != nil {
			return nil, d.err
		}
		list := make([]any, 0, n)
		for i := int32(0); i < n; i++ {
			v, err := d.readValue(elemTag)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		return nil, protoerr.NewDeserializeError(protoerr.NbtError, "unknown nbt tag")
	}
}
