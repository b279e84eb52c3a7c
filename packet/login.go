package packet

import (
	"mcproto/chat"
	"mcproto/types"
)

// SignatureGateProtocolVersion gates login-success fields that only exist from
// protocol version 1.19 (759) onward, resolving spec.md's open question
// about which packet revision this repo targets.
const SignatureGateProtocolVersion = 759

// SigData is the chat-signing material a >=1.19 client attaches to
// LoginStart: a signature timestamp and the public key used to verify
// later signed chat packets. It is carried as an Option since it is
// absent both pre-1.19 and when the server doesn't enforce signing.
type SigData struct {
	Timestamp int64
	PublicKey []byte
	Signature []byte
}

// LoginStart is serverbound, id 0x00.
type LoginStart struct {
	Name    string
	SigData types.Option[SigData]
}

func (p *LoginStart) ID() int32 { return 0x00 }

func (p *LoginStart) Encode(w *types.Writer) {
	w.WriteString(p.Name)
	w.WriteBool(p.SigData.Present)
	if p.SigData.Present {
		sig := p.SigData.Value
		w.WriteI64(sig.Timestamp)
		w.WriteByteArray(sig.PublicKey)
		w.WriteByteArray(sig.Signature)
	}
}

func (p *LoginStart) Decode(r *types.Reader) error {
	p.Name = r.ReadString()
	present := r.ReadBool()
	if present {
		var sig SigData
		sig.Timestamp = r.ReadI64()
		sig.PublicKey = r.ReadByteArray()
		sig.Signature = r.ReadByteArray()
		p.SigData = types.Some(sig)
	} else {
		p.SigData = types.None[SigData]()
	}
	return r.Err()
}

// SaltSignature is the alternative (signed) shape EncryptionResponse's
// verify field takes on >=1.19 clients, in place of the raw encrypted
// verify token bytes pre-1.19 clients send.
type SaltSignature struct {
	Salt      int64
	Signature []byte
}

// EncryptionResponse is serverbound, id 0x01.
type EncryptionResponse struct {
	SharedSecret []byte
	Verify       types.Either[[]byte, SaltSignature]
}

func (p *EncryptionResponse) ID() int32 { return 0x01 }

func (p *EncryptionResponse) Encode(w *types.Writer) {
	w.WriteByteArray(p.SharedSecret)
	w.WriteBool(p.Verify.IsLeft)
	if p.Verify.IsLeft {
		w.WriteByteArray(p.Verify.Left)
	} else {
		w.WriteI64(p.Verify.Right.Salt)
		w.WriteByteArray(p.Verify.Right.Signature)
	}
}

func (p *EncryptionResponse) Decode(r *types.Reader) error {
	p.SharedSecret = r.ReadByteArray()
	hasVerifyToken := r.ReadBool()
	if hasVerifyToken {
		p.Verify = types.LeftOf[[]byte, SaltSignature](r.ReadByteArray())
	} else {
		var ss SaltSignature
		ss.Salt = r.ReadI64()
		ss.Signature = r.ReadByteArray()
		p.Verify = types.RightOf[[]byte, SaltSignature](ss)
	}
	return r.Err()
}

// LoginPluginResponse is serverbound, id 0x02: a client's answer to a
// server-sent LoginPluginRequest.
type LoginPluginResponse struct {
	MessageID int32
	Data      types.Option[[]byte]
}

func (p *LoginPluginResponse) ID() int32 { return 0x02 }

func (p *LoginPluginResponse) Encode(w *types.Writer) {
	w.WriteVarInt(p.MessageID)
	w.WriteBool(p.Data.Present)
	if p.Data.Present {
		w.WriteBytes(p.Data.Value)
	}
}

func (p *LoginPluginResponse) Decode(r *types.Reader) error {
	p.MessageID = r.ReadVarInt()
	present := r.ReadBool()
	if present {
		p.Data = types.Some(r.ReadBytes(r.Remaining()))
	} else {
		p.Data = types.None[[]byte]()
	}
	return r.Err()
}

// LoginDisconnect is clientbound, id 0x00.
type LoginDisconnect struct {
	Reason chat.Chat
}

func (p *LoginDisconnect) ID() int32 { return 0x00 }

func (p *LoginDisconnect) Encode(w *types.Writer) {
	s, err := p.Reason.MarshalToString()
	if err != nil {
		return
	}
	w.WriteString(s)
}

func (p *LoginDisconnect) Decode(r *types.Reader) error {
	s := r.ReadString()
	if r.Err() != nil {
		return r.Err()
	}
	c, err := chat.ParseString(s)
	if err != nil {
		return err
	}
	p.Reason = c
	return nil
}

// EncryptionRequest is clientbound, id 0x01: the server's offer of its
// RSA public key and a random verify token.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   types.RsaPublicKey
	VerifyToken []byte
}

func (p *EncryptionRequest) ID() int32 { return 0x01 }

func (p *EncryptionRequest) Encode(w *types.Writer) {
	w.WriteString(p.ServerID)
	w.WriteRsaPublicKey(p.PublicKey)
	w.WriteByteArray(p.VerifyToken)
}

func (p *EncryptionRequest) Decode(r *types.Reader) error {
	p.ServerID = r.ReadString()
	p.PublicKey = r.ReadRsaPublicKey()
	p.VerifyToken = r.ReadByteArray()
	return r.Err()
}

// LoginSuccessProperty is one entry of a player's game-profile property
// list (most commonly the signed "textures" skin property).
type LoginSuccessProperty struct {
	Name      string
	Value     string
	Signature types.Option[string]
}

// LoginSuccess is clientbound, id 0x02. Signature is populated on each
// property only when the connection negotiated protocol version >=
// SignatureGateProtocolVersion (1.19) — pre-1.19 clients never see the
// signature field at all.
type LoginSuccess struct {
	UUID              types.UUID
	Username          string
	Properties        []LoginSuccessProperty
	ProtocolVersion   int32
}

func (p *LoginSuccess) ID() int32 { return 0x02 }

func (p *LoginSuccess) signed() bool {
	return p.ProtocolVersion >= SignatureGateProtocolVersion
}

func (p *LoginSuccess) Encode(w *types.Writer) {
	w.WriteUUID(p.UUID)
	w.WriteString(p.Username)
	w.WriteVarInt(int32(len(p.Properties)))
	for _, prop := range p.Properties {
		w.WriteString(prop.Name)
		w.WriteString(prop.Value)
		if p.signed() {
			w.WriteBool(prop.Signature.Present)
			if prop.Signature.Present {
				w.WriteString(prop.Signature.Value)
			}
		}
	}
}

func (p *LoginSuccess) Decode(r *types.Reader) error {
	p.UUID = r.ReadUUID()
	p.Username = r.ReadString()
	n := r.ReadVarInt()
	if r.Err() != nil {
		return r.Err()
	}
	p.Properties = make([]LoginSuccessProperty, 0, n)
	for i := int32(0); i < n; i++ {
		var prop LoginSuccessProperty
		prop.Name = r.ReadString()
		prop.Value = r.ReadString()
		if p.signed() {
			present := r.ReadBool()
			if present {
				prop.Signature = types.Some(r.ReadString())
			} else {
				prop.Signature = types.None[string]()
			}
		}
		p.Properties = append(p.Properties, prop)
	}
	return r.Err()
}

// SetCompression is clientbound, id 0x03: enables zlib compression for
// packets at or above Threshold bytes.
type SetCompression struct {
	Threshold int32
}

func (p *SetCompression) ID() int32 { return 0x03 }
func (p *SetCompression) Encode(w *types.Writer) {
	w.WriteVarInt(p.Threshold)
}
func (p *SetCompression) Decode(r *types.Reader) error {
	p.Threshold = r.ReadVarInt()
	return r.Err()
}

// LoginPluginRequest is clientbound, id 0x04: a server-initiated
// request for a mod/plugin-specific handshake exchange.
type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

func (p *LoginPluginRequest) ID() int32 { return 0x04 }
func (p *LoginPluginRequest) Encode(w *types.Writer) {
	w.WriteVarInt(p.MessageID)
	w.WriteString(p.Channel)
	w.WriteBytes(p.Data)
}
func (p *LoginPluginRequest) Decode(r *types.Reader) error {
	p.MessageID = r.ReadVarInt()
	p.Channel = r.ReadString()
	p.Data = r.ReadBytes(r.Remaining())
	return r.Err()
}

func RegisterLogin(d *Dispatcher) {
	d.Register(Serverbound, Login, 0x00, func(int32) Packet { return &LoginStart{} })
	d.Register(Serverbound, Login, 0x01, func(int32) Packet { return &EncryptionResponse{} })
	d.Register(Serverbound, Login, 0x02, func(int32) Packet { return &LoginPluginResponse{} })

	d.Register(Clientbound, Login, 0x00, func(int32) Packet { return &LoginDisconnect{} })
	d.Register(Clientbound, Login, 0x01, func(int32) Packet { return &EncryptionRequest{} })
	d.Register(Clientbound, Login, 0x02, func(v int32) Packet { return &LoginSuccess{ProtocolVersion: v} })
	d.Register(Clientbound, Login, 0x03, func(int32) Packet { return &SetCompression{} })
	d.Register(Clientbound, Login, 0x04, func(int32) Packet { return &LoginPluginRequest{} })
}
