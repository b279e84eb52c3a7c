// Package packet defines the connection state machine and the
// representative catalog of packets that exercise every field type the
// value codec in package types supports.
package packet

import (
	"mcproto/protoerr"
	"mcproto/types"
)

// Bound distinguishes which side of the connection originates a packet.
type Bound int

const (
	Serverbound Bound = iota
	Clientbound
)

func (b Bound) String() string {
	if b == Clientbound {
		return "clientbound"
	}
	return "serverbound"
}

// State is a node of the connection state machine: Handshake always
// starts a connection and selects Status or Login as next state; Login
// transitions to Play on success.
type State int

const (
	Handshake State = iota
	Status
	Login
	Play
)

func (s State) String() string {
	switch s {
	case Handshake:
		return "handshake"
	case Status:
		return "status"
	case Login:
		return "login"
	case Play:
		return "play"
	default:
		return "unknown"
	}
}

// Packet is implemented by every concrete packet type in the catalog.
// ID is the packet's VarInt identifier within its (Bound, State); Encode
// appends the packet's fields (not including the id) to w; Decode reads
// them back from r.
type Packet interface {
	ID() int32
	Encode(w *types.Writer)
	Decode(r *types.Reader) error
}

// Decoder builds a zero-value Packet ready to have Decode called on it.
// protocolVersion lets a handful of packets (LoginSuccess's signature
// field) gate fields on the connection's negotiated version without the
// dispatcher knowing about any specific packet type.
type Decoder func(protocolVersion int32) Packet

// Table maps packet ids to decoders for one (Bound, State) pair.
type Table map[int32]Decoder

// Dispatcher routes an incoming (bound, state, id) triple to the right
// decoder, the packet-catalog analogue of the teacher's codec.GetCodec
// factory switch.
type Dispatcher struct {
	tables map[Bound]map[State]Table
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{tables: make(map[Bound]map[State]Table)}
}

func (d *Dispatcher) Register(bound Bound, state State, id int32, dec Decoder) {
	byState, ok := d.tables[bound]
	if !ok {
		byState = make(map[State]Table)
		d.tables[bound] = byState
	}
	table, ok := byState[state]
	if !ok {
		table = make(Table)
		byState[state] = table
	}
	table[id] = dec
}

// Decode looks up the decoder for (bound, state, id), builds a zero
// Packet and decodes body into it.
func (d *Dispatcher) Decode(bound Bound, state State, id int32, protocolVersion int32, body *types.Reader) (Packet, error) {
	byState, ok := d.tables[bound]
	if !ok {
		return nil, protoerr.NewDeserializeError(protoerr.UnknownPacketId, "no packets registered for this bound")
	}
	table, ok := byState[state]
	if !ok {
		return nil, protoerr.NewDeserializeError(protoerr.UnknownPacketId, "no packets registered for this state")
	}
	dec, ok := table[id]
	if !ok {
		return nil, protoerr.NewDeserializeError(protoerr.UnknownPacketId, "unrecognized packet id")
	}
	p := dec(protocolVersion)
	if err := p.Decode(body); err != nil {
		return nil, err
	}
	if body.Remaining() != 0 {
		return nil, protoerr.NewDeserializeError(protoerr.BrokenPacket, "trailing bytes after packet fields")
	}
	return p, nil
}
