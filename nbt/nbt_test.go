package nbt

import (
	"bytes"
	"testing"
)

func TestCompoundRoundTrip(t *testing.T) {
	c := NewCompound()
	c.Put("id", int32(42))
	c.Put("name", "diamond_sword")
	nested := NewCompound()
	nested.Put("Unbreakable", int8(1))
	c.Put("display", nested)

	raw, err := EncodeUnnamed(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeUnnamed(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	id, ok := got.Get("id")
	if !ok || id.(int32) != 42 {
		t.Fatalf("id = %v, %v", id, ok)
	}
	name, ok := got.Get("name")
	if !ok || name.(string) != "diamond_sword" {
		t.Fatalf("name = %v, %v", name, ok)
	}
	display, ok := got.Get("display")
	if !ok {
		t.Fatalf("display missing")
	}
	unbreak, ok := display.(*Compound).Get("Unbreakable")
	if !ok || unbreak.(int8) != 1 {
		t.Fatalf("Unbreakable = %v, %v", unbreak, ok)
	}
}

func TestDecodeUnnamedEmpty(t *testing.T) {
	got, err := DecodeUnnamed(bytes.NewReader([]byte{TagEnd}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil compound, got %v", got)
	}
}
