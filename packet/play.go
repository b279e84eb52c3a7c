package packet

import (
	"mcproto/chat"
	"mcproto/types"
)

// KeepAliveClientbound is clientbound: a fixed 8-byte int64 id the client
// must echo back within the timeout to stay connected.
type KeepAliveClientbound struct {
	ID int64
}

func (p *KeepAliveClientbound) ID() int32 { return 0x00 }
func (p *KeepAliveClientbound) Encode(w *types.Writer) {
	w.WriteI64(p.ID)
}
func (p *KeepAliveClientbound) Decode(r *types.Reader) error {
	p.ID = r.ReadI64()
	return r.Err()
}

// KeepAliveServerbound echoes KeepAliveClientbound's id back.
type KeepAliveServerbound struct {
	ID int64
}

func (p *KeepAliveServerbound) ID() int32 { return 0x00 }
func (p *KeepAliveServerbound) Encode(w *types.Writer) {
	w.WriteI64(p.ID)
}
func (p *KeepAliveServerbound) Decode(r *types.Reader) error {
	p.ID = r.ReadI64()
	return r.Err()
}

// PlayerPositionAndLook is clientbound: teleports the client, exercising
// the fixed-width float/byte fields the value codec defines beyond the
// VarInt/string surface Handshake/Status/Login already cover.
type PlayerPositionAndLook struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      byte
	TeleportID int32
}

func (p *PlayerPositionAndLook) ID() int32 { return 0x38 }
func (p *PlayerPositionAndLook) Encode(w *types.Writer) {
	w.WriteF64(p.X)
	w.WriteF64(p.Y)
	w.WriteF64(p.Z)
	w.WriteF32(p.Yaw)
	w.WriteF32(p.Pitch)
	w.WriteByte(p.Flags)
	w.WriteVarInt(p.TeleportID)
}
func (p *PlayerPositionAndLook) Decode(r *types.Reader) error {
	p.X = r.ReadF64()
	p.Y = r.ReadF64()
	p.Z = r.ReadF64()
	p.Yaw = r.ReadF32()
	p.Pitch = r.ReadF32()
	p.Flags = r.ReadByte()
	p.TeleportID = r.ReadVarInt()
	return r.Err()
}

// ChatMessageClientbound delivers a chat component to the client, tagged
// with a position (chat box, system message, or action bar) and the
// sending player's UUID (zero UUID for server-originated messages).
type ChatMessageClientbound struct {
	Message  chat.Chat
	Position byte
	Sender   types.UUID
}

func (p *ChatMessageClientbound) ID() int32 { return 0x0F }
func (p *ChatMessageClientbound) Encode(w *types.Writer) {
	s, err := p.Message.MarshalToString()
	if err != nil {
		return
	}
	w.WriteString(s)
	w.WriteByte(p.Position)
	w.WriteUUID(p.Sender)
}
func (p *ChatMessageClientbound) Decode(r *types.Reader) error {
	s := r.ReadString()
	if r.Err() != nil {
		return r.Err()
	}
	c, err := chat.ParseString(s)
	if err != nil {
		return err
	}
	p.Message = c
	p.Position = r.ReadByte()
	p.Sender = r.ReadUUID()
	return r.Err()
}

// ClientSettings is serverbound: the client's locale/view-distance/chat
// preferences, sent once on join and again whenever changed.
type ClientSettings struct {
	Locale      string
	ViewDist    int8
	ChatMode    int32
	ChatColors  bool
	SkinParts   uint8
	MainHand    int32
}

func (p *ClientSettings) ID() int32 { return 0x07 }
func (p *ClientSettings) Encode(w *types.Writer) {
	w.WriteString(p.Locale)
	w.WriteI8(p.ViewDist)
	w.WriteVarInt(p.ChatMode)
	w.WriteBool(p.ChatColors)
	w.WriteByte(p.SkinParts)
	w.WriteVarInt(p.MainHand)
}
func (p *ClientSettings) Decode(r *types.Reader) error {
	p.Locale = r.ReadString()
	p.ViewDist = r.ReadI8()
	p.ChatMode = r.ReadVarInt()
	p.ChatColors = r.ReadBool()
	p.SkinParts = r.ReadByte()
	p.MainHand = r.ReadVarInt()
	return r.Err()
}

// WindowItemEntry pairs a slot index with its contents, the shape a
// WindowItems packet repeats: the "(i16, Slot) tuple sequence" named as
// the catalog's one non-uniform aggregate.
type WindowItemEntry struct {
	SlotIndex int16
	Item      types.Slot
}

// WindowItems is serverbound here: a window id followed by a
// VarInt-counted list of (slot index, Slot) entries; it exercises the
// Slot codec end to end.
type WindowItems struct {
	WindowID int8
	Entries  []WindowItemEntry
}

func (p *WindowItems) ID() int32 { return 0x10 }
func (p *WindowItems) Encode(w *types.Writer) {
	w.WriteI8(p.WindowID)
	w.WriteVarInt(int32(len(p.Entries)))
	for _, e := range p.Entries {
		w.WriteI16(e.SlotIndex)
		w.WriteSlot(e.Item)
	}
}
func (p *WindowItems) Decode(r *types.Reader) error {
	p.WindowID = r.ReadI8()
	n := r.ReadVarInt()
	if r.Err() != nil {
		return r.Err()
	}
	p.Entries = make([]WindowItemEntry, 0, n)
	for i := int32(0); i < n; i++ {
		var e WindowItemEntry
		e.SlotIndex = r.ReadI16()
		e.Item = r.ReadSlot()
		p.Entries = append(p.Entries, e)
	}
	return r.Err()
}

func RegisterPlay(d *Dispatcher) {
	d.Register(Clientbound, Play, 0x00, func(int32) Packet { return &KeepAliveClientbound{} })
	d.Register(Clientbound, Play, 0x38, func(int32) Packet { return &PlayerPositionAndLook{} })
	d.Register(Clientbound, Play, 0x0F, func(int32) Packet { return &ChatMessageClientbound{} })

	d.Register(Serverbound, Play, 0x00, func(int32) Packet { return &KeepAliveServerbound{} })
	d.Register(Serverbound, Play, 0x07, func(int32) Packet { return &ClientSettings{} })
	d.Register(Serverbound, Play, 0x10, func(int32) Packet { return &WindowItems{} })
}
