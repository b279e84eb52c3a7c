// Package legacy implements the pre-Netty (<=1.6) server-list ping: a
// single magic byte probe outside the VarInt-framed protocol entirely,
// kept around because old launchers and multi-version server-list
// tools still send it before falling back to the modern Handshake flow.
package legacy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// PingKind distinguishes the two legacy probe shapes seen in the wild.
type PingKind int

const (
	// BarePing is the original 1.6-era probe: a single 0xFE byte.
	BarePing PingKind = iota
	// PluginPing is the 1.6-era probe extended with a plugin-message
	// payload (0xFE 0x01), used by clients wanting version/player info.
	PluginPing
)

// DetectPing peeks the first byte of a freshly accepted connection and
// reports whether it's a legacy ping rather than a modern Handshake
// VarInt. Modern Handshake packets always start with a VarInt frame
// length; that VarInt only begins with 0xFE for lengths of 254 or more
// (254, 382, ...), which a Handshake is not expected to reach.
func DetectPing(r *bufio.Reader) (PingKind, bool, error) {
	b, err := r.Peek(1)
	if err != nil {
		return 0, false, err
	}
	if b[0] != 0xFE {
		return 0, false, nil
	}
	if _, err := r.Discard(1); err != nil {
		return 0, false, err
	}
	next, err := r.Peek(1)
	if err != nil {
		if err == io.EOF {
			return BarePing, true, nil
		}
		return 0, false, err
	}
	if next[0] == 0x01 {
		r.Discard(1)
		return PluginPing, true, nil
	}
	return BarePing, true, nil
}

// Status is the handful of fields a legacy ping response carries,
// rendered as the UTF-16BE string the old client expects: a "§1" marker
// followed by the fields, all separated by NUL characters.
type Status struct {
	ProtocolVersion int
	MinecraftVersion string
	MOTD             string
	OnlinePlayers    int
	MaxPlayers       int
}

// WriteResponse writes the legacy kick-packet-shaped response: 0xFF,
// a uint16 length, then UTF-16BE text. The modern protocol never uses
// this encoding again past this one exchange.
func WriteResponse(w io.Writer, s Status) error {
	fields := []string{
		"§" + "1",
		fmt.Sprint(s.ProtocolVersion),
		s.MinecraftVersion,
		s.MOTD,
		fmt.Sprint(s.OnlinePlayers),
		fmt.Sprint(s.MaxPlayers),
	}
	text := strings.Join(fields, "\x00")

	u16 := utf16BE(text)
	if _, err := w.Write([]byte{0xFF}); err != nil {
		return err
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(u16)/2))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(u16)
	return err
}

func utf16BE(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		if r > 0xFFFF {
			r = '?'
		}
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}
