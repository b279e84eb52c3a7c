package packet

import (
	"mcproto/protoerr"
	"mcproto/types"
)

// NextState is the Handshake packet's declared follow-up state: either
// Status (server list ping) or Login (join attempt).
type NextState int32

const (
	NextStatus NextState = 1
	NextLogin  NextState = 2
)

// HandshakePacket is the first packet of every connection, serverbound
// only, id 0x00 in the Handshake state.
type HandshakePacket struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (p *HandshakePacket) ID() int32 { return 0x00 }

func (p *HandshakePacket) Encode(w *types.Writer) {
	w.WriteVarInt(p.ProtocolVersion)
	w.WriteString(p.ServerAddress)
	w.WriteU16(p.ServerPort)
	w.WriteVarInt(int32(p.NextState))
}

func (p *HandshakePacket) Decode(r *types.Reader) error {
	p.ProtocolVersion = r.ReadVarInt()
	p.ServerAddress = r.ReadString()
	p.ServerPort = r.ReadU16()
	v := r.ReadVarInt()
	if r.Err() != nil {
		return r.Err()
	}
	if v != int32(NextStatus) && v != int32(NextLogin) {
		return protoerr.InvalidEnum("NextState", int64(v))
	}
	p.NextState = NextState(v)
	return nil
}

func RegisterHandshake(d *Dispatcher) {
	d.Register(Serverbound, Handshake, 0x00, func(int32) Packet { return &HandshakePacket{} })
}
