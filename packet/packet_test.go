package packet

import (
	"mcproto/nbt"
	"mcproto/types"
	"testing"
)

func encodeDecode(t *testing.T, p Packet, rebuild func() Packet) Packet {
	t.Helper()
	w := types.NewWriter()
	p.Encode(w)
	if w.Err() != nil {
		t.Fatalf("encode: %v", w.Err())
	}
	out := rebuild()
	r := types.NewReader(w.Bytes())
	if err := out.Decode(r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHandshakeRoundTrip(t *testing.T) {
	in := &HandshakePacket{ProtocolVersion: 759, ServerAddress: "localhost", ServerPort: 25565, NextState: NextLogin}
	out := encodeDecode(t, in, func() Packet { return &HandshakePacket{} }).(*HandshakePacket)
	if *out != *in {
		t.Fatalf("got %+v want %+v", out, in)
	}
}

func TestLoginSuccessSignatureGate(t *testing.T) {
	pre := &LoginSuccess{
		UUID: types.NewRandomUUID(), Username: "Notch", ProtocolVersion: 47,
		Properties: []LoginSuccessProperty{{Name: "textures", Value: "abc"}},
	}
	outPre := encodeDecode(t, pre, func() Packet { return &LoginSuccess{ProtocolVersion: 47} }).(*LoginSuccess)
	if outPre.Properties[0].Signature.Present {
		t.Fatalf("pre-1.19 decode should not populate signature")
	}

	post := &LoginSuccess{
		UUID: types.NewRandomUUID(), Username: "Notch", ProtocolVersion: 759,
		Properties: []LoginSuccessProperty{{Name: "textures", Value: "abc", Signature: types.Some("sig")}},
	}
	outPost := encodeDecode(t, post, func() Packet { return &LoginSuccess{ProtocolVersion: 759} }).(*LoginSuccess)
	if !outPost.Properties[0].Signature.Present || outPost.Properties[0].Signature.Value != "sig" {
		t.Fatalf("post-1.19 decode should populate signature: %+v", outPost.Properties[0])
	}
}

func TestWindowItemsSlotSequence(t *testing.T) {
	tag := nbt.NewCompound()
	tag.Put("Unbreakable", int8(1))
	in := &WindowItems{
		WindowID: 1,
		Entries: []WindowItemEntry{
			{SlotIndex: 0, Item: types.EmptySlot()},
			{SlotIndex: 1, Item: types.Slot{Data: &types.SlotData{ItemID: 278, Count: 1, Tag: tag}}},
		},
	}
	out := encodeDecode(t, in, func() Packet { return &WindowItems{} }).(*WindowItems)
	if len(out.Entries) != 2 {
		t.Fatalf("got %d entries", len(out.Entries))
	}
	if out.Entries[0].Item.Data != nil {
		t.Fatalf("expected empty slot at index 0")
	}
	if out.Entries[1].Item.Data == nil || out.Entries[1].Item.Data.ItemID != 278 {
		t.Fatalf("slot 1 mismatch: %+v", out.Entries[1].Item.Data)
	}
}

func TestDispatcherRoutesToState(t *testing.T) {
	d := NewDispatcher()
	RegisterHandshake(d)
	RegisterStatus(d)
	RegisterLogin(d)
	RegisterPlay(d)

	w := types.NewWriter()
	(&HandshakePacket{ProtocolVersion: 759, ServerAddress: "a", ServerPort: 1, NextState: NextStatus}).Encode(w)
	r := types.NewReader(w.Bytes())
	p, err := d.Decode(Serverbound, Handshake, 0x00, 759, r)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	hs, ok := p.(*HandshakePacket)
	if !ok || hs.ServerAddress != "a" {
		t.Fatalf("got %+v", p)
	}

	_, err = d.Decode(Serverbound, Handshake, 0x7f, 759, types.NewReader(nil))
	if err == nil {
		t.Fatalf("expected unknown packet id error")
	}
}

func TestDispatcherRejectsTrailingBytes(t *testing.T) {
	d := NewDispatcher()
	RegisterHandshake(d)

	w := types.NewWriter()
	(&HandshakePacket{ProtocolVersion: 759, ServerAddress: "a", ServerPort: 1, NextState: NextStatus}).Encode(w)
	w.WriteByte(0xff) // trailing garbage after the packet's known fields

	_, err := d.Decode(Serverbound, Handshake, 0x00, 759, types.NewReader(w.Bytes()))
	if err == nil {
		t.Fatalf("expected trailing bytes to be rejected as BrokenPacket")
	}
}

func TestHandshakeRejectsInvalidNextState(t *testing.T) {
	w := types.NewWriter()
	w.WriteVarInt(759)
	w.WriteString("a")
	w.WriteU16(1)
	w.WriteVarInt(99) // not NextStatus(1) or NextLogin(2)

	p := &HandshakePacket{}
	if err := p.Decode(types.NewReader(w.Bytes())); err == nil {
		t.Fatalf("expected invalid NextState to be rejected")
	}
}
