// Package chat implements the JSON chat-component format the protocol
// uses for every player-facing message: disconnect reasons, player list
// entries, signed chat, and title/subtitle packets.
package chat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Color is a chat component's color, one of three wire shapes: a named
// legacy color, a raw "§"-style format code, or a #rrggbb hex color
// (added for modern clients).
type Color struct {
	Named     string // "red", "aqua", "reset", ...
	FormatHex string // "§c" style single format code, rare on the wire
	WebHex    string // "#rrggbb"
}

func NamedColor(name string) Color { return Color{Named: name} }
func WebColor(r, g, b uint8) Color {
	return Color{WebHex: fmt.Sprintf("#%02x%02x%02x", r, g, b)}
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch {
	case c.WebHex != "":
		return json.Marshal(c.WebHex)
	case c.FormatHex != "":
		return json.Marshal(c.FormatHex)
	default:
		return json.Marshal(c.Named)
	}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(s, "#"):
		*c = Color{WebHex: s}
	case strings.HasPrefix(s, "§"):
		*c = Color{FormatHex: s}
	default:
		*c = Color{Named: s}
	}
	return nil
}

// ClickEvent describes what happens when a player clicks a component,
// e.g. {Action: "open_url", Value: "https://..."} or
// {Action: "run_command", Value: "/spawn"}.
type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// HoverEvent describes what's shown when a player hovers over a
// component, e.g. {Action: "show_text", Value: "..."}.
type HoverEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// Style carries the formatting attributes a Component may set; each
// boolean is a tri-state (unset/true/false) so a component can
// explicitly clear an attribute an ancestor set, which is why these are
// pointers rather than plain bools.
type Style struct {
	Color         *Color      `json:"color,omitempty"`
	Bold          *bool       `json:"bold,omitempty"`
	Italic        *bool       `json:"italic,omitempty"`
	Underlined    *bool       `json:"underlined,omitempty"`
	Strikethrough *bool       `json:"strikethrough,omitempty"`
	Obfuscated    *bool       `json:"obfuscated,omitempty"`
	Insertion     string      `json:"insertion,omitempty"`
	ClickEvent    *ClickEvent `json:"clickEvent,omitempty"`
	HoverEvent    *HoverEvent `json:"hoverEvent,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

// Component is one node of the chat tree: content plus style plus child
// components appended after it ("extra"). Exactly one of Text,
// Translate, or Keybind is expected to be set per the protocol's
// discriminated union, though nothing here enforces that at decode
// time — an absent field is simply its zero value.
type Component struct {
	Style
	Text      string      `json:"text,omitempty"`
	Translate string      `json:"translate,omitempty"`
	Keybind   string      `json:"keybind,omitempty"`
	With      []Component `json:"with,omitempty"`
	Extra     []Component `json:"extra,omitempty"`
}

// Chat is the root of a chat message; it is just a Component, kept as
// a distinct name so callers reach for chat.Text/chat.Translate rather
// than constructing a bare Component by hand.
type Chat = Component

func Text(s string) Chat { return Chat{Text: s} }

func Translate(key string, with ...Chat) Chat {
	return Chat{Translate: key, With: with}
}

// Keybind renders the localized name of whatever key is currently bound
// to the given action (e.g. "key.jump"), resolved client-side.
func Keybind(key string) Chat { return Chat{Keybind: key} }

func (c Chat) WithColor(col Color) Chat {
	c.Color = &col
	return c
}

func (c Chat) Bold() Chat {
	c.Style.Bold = boolPtr(true)
	return c
}

func (c Chat) WithClickEvent(action, value string) Chat {
	c.ClickEvent = &ClickEvent{Action: action, Value: value}
	return c
}

func (c Chat) WithHoverEvent(action, value string) Chat {
	c.HoverEvent = &HoverEvent{Action: action, Value: value}
	return c
}

func (c Chat) Append(children ...Chat) Chat {
	c.Extra = append(c.Extra, children...)
	return c
}

// Plain strips all styling and recursively concatenates text/extra,
// rendering a Component to a legacy flat string (used for console logs
// and legacy-ping MOTDs).
func (c Chat) Plain() string {
	var b strings.Builder
	c.writePlain(&b)
	return b.String()
}

func (c Chat) writePlain(b *strings.Builder) {
	switch {
	case c.Text != "":
		b.WriteString(c.Text)
	case c.Translate != "":
		b.WriteString(c.Translate)
	case c.Keybind != "":
		b.WriteString(c.Keybind)
	}
	for _, e := range c.Extra {
		e.writePlain(b)
	}
}

func (c Chat) MarshalToString() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func ParseString(s string) (Chat, error) {
	var c Chat
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Chat{}, err
	}
	return c, nil
}

// NamedColors lists the legacy 16 colors, in the order the
// §0-§f format codes assign them.
var NamedColors = []string{
	"black", "dark_blue", "dark_green", "dark_aqua", "dark_red", "dark_purple",
	"gold", "gray", "dark_gray", "blue", "green", "aqua", "red", "light_purple",
	"yellow", "white",
}

// FormatCodeColor maps a single legacy format-code hex digit (0-f) to
// its named color.
func FormatCodeColor(digit byte) (Color, bool) {
	v, err := strconv.ParseInt(string(digit), 16, 32)
	if err != nil || int(v) >= len(NamedColors) {
		return Color{}, false
	}
	return NamedColor(NamedColors[v]), true
}
