package varint

import (
	"bytes"
	"errors"
	"testing"

	"mcproto/protoerr"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 2, 127, 128, 255, 2097151, 2147483647, -1, -2147483648}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		if buf.Len() != SizeVarInt(v) {
			t.Fatalf("size mismatch for %d: wrote %d, SizeVarInt said %d", v, buf.Len(), SizeVarInt(v))
		}
		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip %d -> %d", v, got)
		}
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	cases := map[int32][]byte{
		0:          {0x00},
		1:          {0x01},
		127:        {0x7f},
		128:        {0x80, 0x01},
		255:        {0xff, 0x01},
		25565:      {0xdd, 0xc7, 0x01},
		2147483647: {0xff, 0xff, 0xff, 0xff, 0x07},
		-1:         {0xff, 0xff, 0xff, 0xff, 0x0f},
	}
	for v, want := range cases {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Fatalf("encode %d = % x, want % x", v, buf.Bytes(), want)
		}
	}
}

func TestVarIntTooLong(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := ReadVarInt(bytes.NewReader(data))
	var de *protoerr.DeserializeError
	if !errors.As(err, &de) || de.Kind != protoerr.VarIntTooLong {
		t.Fatalf("expected VarIntTooLong, got %v", err)
	}
}

func TestVarIntUnexpectedEof(t *testing.T) {
	data := []byte{0x80}
	_, err := ReadVarInt(bytes.NewReader(data))
	if !errors.Is(err, protoerr.ErrUnexpectedEof) {
		t.Fatalf("expected eof-flavored error, got %v", err)
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteVarLong(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		got, err := ReadVarLong(&buf)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip %d -> %d", v, got)
		}
	}
}
