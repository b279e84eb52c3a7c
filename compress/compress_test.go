package compress

import (
	"bytes"
	"testing"
)

func TestBelowThresholdSentRaw(t *testing.T) {
	body := []byte("short")
	dataLen, payload, err := Compress(Threshold(256), body)
	if err != nil {
		t.Fatal(err)
	}
	if dataLen != 0 {
		t.Fatalf("dataLen = %d, want 0", dataLen)
	}
	if !bytes.Equal(payload, body) {
		t.Fatalf("payload mutated for below-threshold body")
	}
}

func TestAtOrAboveThresholdCompressed(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 512)
	dataLen, payload, err := Compress(Threshold(256), body)
	if err != nil {
		t.Fatal(err)
	}
	if dataLen != int32(len(body)) {
		t.Fatalf("dataLen = %d, want %d", dataLen, len(body))
	}
	if bytes.Equal(payload, body) {
		t.Fatalf("payload was not compressed")
	}
	got, err := Decompress(dataLen, payload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestDisabledAlwaysRaw(t *testing.T) {
	body := bytes.Repeat([]byte("y"), 1000)
	dataLen, payload, err := Compress(Disabled, body)
	if err != nil {
		t.Fatal(err)
	}
	if dataLen != 0 || !bytes.Equal(payload, body) {
		t.Fatalf("expected raw passthrough when compression disabled")
	}
}

func TestDecompressRejectsLengthMismatch(t *testing.T) {
	body := bytes.Repeat([]byte("z"), 512)
	dataLen, payload, err := Compress(Threshold(0), body)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decompress(dataLen+1, payload)
	if err == nil {
		t.Fatalf("expected length-mismatch error")
	}
}
