package legacy

import (
	"bufio"
	"bytes"
	"testing"
)

func TestDetectBarePing(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0xFE}))
	kind, ok, err := DetectPing(r)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || kind != BarePing {
		t.Fatalf("got kind=%v ok=%v", kind, ok)
	}
}

func TestDetectPluginPing(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0xFE, 0x01}))
	kind, ok, err := DetectPing(r)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || kind != PluginPing {
		t.Fatalf("got kind=%v ok=%v", kind, ok)
	}
}

func TestDetectNonPingPassesThrough(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x10, 0x00}))
	_, ok, err := DetectPing(r)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("expected modern handshake byte to not be detected as legacy ping")
	}
}

func TestWriteResponseProducesUTF16Frame(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, Status{
		ProtocolVersion:  759,
		MinecraftVersion: "1.19",
		MOTD:             "hello",
		OnlinePlayers:    1,
		MaxPlayers:       20,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if out[0] != 0xFF {
		t.Fatalf("expected leading 0xFF, got %x", out[0])
	}
	if len(out) < 3 {
		t.Fatalf("response too short: %x", out)
	}
}
