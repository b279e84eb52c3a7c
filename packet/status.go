package packet

import (
	"encoding/json"

	"mcproto/chat"
	"mcproto/types"
)

// StatusDocument is the JSON shape StatusResponse.JSON carries: protocol
// version info, a sample of online players, and the MOTD description.
type StatusDocument struct {
	Version     StatusVersion `json:"version"`
	Players     StatusPlayers `json:"players"`
	Description chat.Chat     `json:"description"`
	FavIcon     string        `json:"favicon,omitempty"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int32              `json:"max"`
	Online int32              `json:"online"`
	Sample []StatusPlayerInfo `json:"sample,omitempty"`
}

type StatusPlayerInfo struct {
	Name string     `json:"name"`
	ID   types.UUID `json:"id"`
}

func (d StatusDocument) Marshal() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// StatusRequest is serverbound, id 0x00, carries no fields — sent when
// a client opens the server-list-ping screen.
type StatusRequest struct{}

func (p *StatusRequest) ID() int32            { return 0x00 }
func (p *StatusRequest) Encode(w *types.Writer) {}
func (p *StatusRequest) Decode(r *types.Reader) error { return r.Err() }

// PingRequest is serverbound, id 0x01, round-trips an opaque payload to
// measure latency.
type PingRequest struct {
	Payload int64
}

func (p *PingRequest) ID() int32 { return 0x01 }
func (p *PingRequest) Encode(w *types.Writer) {
	w.WriteI64(p.Payload)
}
func (p *PingRequest) Decode(r *types.Reader) error {
	p.Payload = r.ReadI64()
	return r.Err()
}

// StatusResponse is clientbound, id 0x00: a single JSON document string
// describing version, players online and the MOTD.
type StatusResponse struct {
	JSON string
}

func (p *StatusResponse) ID() int32 { return 0x00 }
func (p *StatusResponse) Encode(w *types.Writer) {
	w.WriteString(p.JSON)
}
func (p *StatusResponse) Decode(r *types.Reader) error {
	p.JSON = r.ReadString()
	return r.Err()
}

// PingResponse is clientbound, id 0x01, echoes PingRequest's payload.
type PingResponse struct {
	Payload int64
}

func (p *PingResponse) ID() int32 { return 0x01 }
func (p *PingResponse) Encode(w *types.Writer) {
	w.WriteI64(p.Payload)
}
func (p *PingResponse) Decode(r *types.Reader) error {
	p.Payload = r.ReadI64()
	return r.Err()
}

func RegisterStatus(d *Dispatcher) {
	d.Register(Serverbound, Status, 0x00, func(int32) Packet { return &StatusRequest{} })
	d.Register(Serverbound, Status, 0x01, func(int32) Packet { return &PingRequest{} })
	d.Register(Clientbound, Status, 0x00, func(int32) Packet { return &StatusResponse{} })
	d.Register(Clientbound, Status, 0x01, func(int32) Packet { return &PingResponse{} })
}
