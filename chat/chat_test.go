package chat

import (
	"strings"
	"testing"
)

func TestTextMarshalsFlat(t *testing.T) {
	c := Text("hello").WithColor(NamedColor("red")).Bold()
	s, err := c.MarshalToString()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(s, `"text":"hello"`) {
		t.Fatalf("missing text field: %s", s)
	}
	if !strings.Contains(s, `"color":"red"`) {
		t.Fatalf("missing color field: %s", s)
	}
	if !strings.Contains(s, `"bold":true`) {
		t.Fatalf("missing bold field: %s", s)
	}
}

func TestWebColorRoundTrip(t *testing.T) {
	c := Text("x").WithColor(WebColor(0x1a, 0x2b, 0x3c))
	s, err := c.MarshalToString()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Color == nil || got.Color.WebHex != "#1a2b3c" {
		t.Fatalf("color = %+v", got.Color)
	}
}

func TestPlainConcatenatesExtra(t *testing.T) {
	c := Text("a").Append(Text("b"), Text("c"))
	if c.Plain() != "abc" {
		t.Fatalf("plain = %q", c.Plain())
	}
}

func TestKeybindRoundTrip(t *testing.T) {
	c := Keybind("key.jump")
	s, err := c.MarshalToString()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(s, `"keybind":"key.jump"`) {
		t.Fatalf("missing keybind field: %s", s)
	}
	got, err := ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Keybind != "key.jump" {
		t.Fatalf("keybind = %q", got.Keybind)
	}
	if got.Plain() != "key.jump" {
		t.Fatalf("plain = %q", got.Plain())
	}
}

func TestClickAndHoverEventRoundTrip(t *testing.T) {
	c := Text("click me").
		WithClickEvent("run_command", "/spawn").
		WithHoverEvent("show_text", "teleport home")
	s, err := c.MarshalToString()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.ClickEvent == nil || got.ClickEvent.Action != "run_command" || got.ClickEvent.Value != "/spawn" {
		t.Fatalf("clickEvent = %+v", got.ClickEvent)
	}
	if got.HoverEvent == nil || got.HoverEvent.Action != "show_text" || got.HoverEvent.Value != "teleport home" {
		t.Fatalf("hoverEvent = %+v", got.HoverEvent)
	}
}

func TestFormatCodeColor(t *testing.T) {
	col, ok := FormatCodeColor('c')
	if !ok || col.Named != "red" {
		t.Fatalf("format code c = %+v, %v", col, ok)
	}
	_, ok = FormatCodeColor('z')
	if ok {
		t.Fatalf("expected unknown format code to fail")
	}
}
