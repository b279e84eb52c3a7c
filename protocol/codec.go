// Package protocol implements the frame Codec: the per-connection state
// that turns a raw byte stream into discrete packets and back, applying
// whatever compression and encryption the connection has negotiated so
// far. One Codec belongs to exactly one connection and is never shared
// across goroutines — mutated in place the way the teacher's
// protocol.Header/Encode/Decode pair operated directly on a net.Conn,
// just generalized from a fixed 14-byte header to VarInt framing plus
// optional zlib/AES stages.
package protocol

import (
	"bytes"
	"crypto/cipher"
	"errors"
	"io"

	"mcproto/compress"
	"mcproto/packet"
	"mcproto/protoerr"
	"mcproto/types"
	"mcproto/varint"
)

// Codec is the per-connection frame state machine.
type Codec struct {
	bound           packet.Bound
	state           packet.State
	protocolVersion int32

	threshold compress.Threshold

	encryptStream cipher.Stream
	decryptStream cipher.Stream

	dispatcher *packet.Dispatcher

	// pending buffers bytes read off the wire that have not yet formed a
	// complete frame; Decode is called repeatedly as more bytes arrive.
	pending bytes.Buffer
}

// NewCodec builds a Codec for one connection. bound names which
// direction this Codec decodes (a server decodes Serverbound packets
// and encodes Clientbound ones; a client the reverse).
func NewCodec(bound packet.Bound, dispatcher *packet.Dispatcher) *Codec {
	return &Codec{
		bound:      bound,
		state:      packet.Handshake,
		threshold:  compress.Disabled,
		dispatcher: dispatcher,
	}
}

func (c *Codec) State() packet.State { return c.state }

// SetState transitions the connection's state machine; called after a
// Handshake, a successful Login, etc.
func (c *Codec) SetState(s packet.State) { c.state = s }

func (c *Codec) SetProtocolVersion(v int32) { c.protocolVersion = v }
func (c *Codec) ProtocolVersion() int32     { return c.protocolVersion }

// EnableCompression turns on zlib compression for all frames from this
// point forward, gated by threshold (spec: Disabled means "never", 0
// means "always").
func (c *Codec) EnableCompression(threshold compress.Threshold) {
	c.threshold = threshold
}

// EnableEncryption installs the encrypt and decrypt streams (AES-128/
// CFB8 built from the Login exchange's shared secret, e.g. by
// cryptoutil.NewEncryptStream/NewDecryptStream) for all later traffic.
func (c *Codec) EnableEncryption(encrypt, decrypt cipher.Stream) {
	c.encryptStream = encrypt
	c.decryptStream = decrypt
}

// decodingBound is the direction of packets this Codec reads off the wire.
func (c *Codec) decodingBound() packet.Bound {
	return c.bound
}

// encodingBound is the direction of packets this Codec writes to the
// wire: always the opposite of what it decodes.
func (c *Codec) encodingBound() packet.Bound {
	if c.bound == packet.Serverbound {
		return packet.Clientbound
	}
	return packet.Serverbound
}

// Feed appends freshly-read wire bytes (after decryption, if enabled)
// into the Codec's pending buffer. Callers read raw bytes off the
// socket, decrypt them through DecryptBytes, then Feed the result.
func (c *Codec) Feed(b []byte) {
	c.pending.Write(b)
}

// DecryptBytes runs raw wire bytes through the decrypt stream into a new
// slice; when encryption isn't enabled yet it returns b unchanged.
func (c *Codec) DecryptBytes(b []byte) []byte {
	if c.decryptStream == nil {
		return b
	}
	out := make([]byte, len(b))
	c.decryptStream.XORKeyStream(out, b)
	return out
}

// EncryptBytes runs outgoing wire bytes through the encrypt stream,
// a no-op when encryption isn't enabled yet.
func (c *Codec) EncryptBytes(b []byte) []byte {
	if c.encryptStream == nil {
		return b
	}
	out := make([]byte, len(b))
	c.encryptStream.XORKeyStream(out, b)
	return out
}

// Decode attempts to pull one complete packet out of the pending
// buffer. It returns (nil, protoerr.ErrUnexpectedEof) when the buffer
// doesn't yet hold a full frame — callers treat that as "read more off
// the socket and retry", never as a fatal error.
func (c *Codec) Decode() (pkt packet.Packet, err error) {
	snapshot := c.pending.Bytes()
	r := bytes.NewReader(snapshot)

	frameLen, err := varint.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	headerLen := len(snapshot) - r.Len()
	if r.Len() < int(frameLen) {
		return nil, protoerr.ErrUnexpectedEof
	}

	frame := make([]byte, frameLen)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
	}
	c.pending.Next(headerLen + int(frameLen))

	// The frame is consumed from here on: an EOF inside it can never be
	// cured by more input, so it is reported as BrokenPacket instead.
	defer func() {
		if errors.Is(err, protoerr.ErrUnexpectedEof) {
			pkt, err = nil, protoerr.NewDeserializeError(protoerr.BrokenPacket, "frame ended mid-packet: "+err.Error())
		}
	}()

	body := frame
	if c.threshold != compress.Disabled {
		fr := bytes.NewReader(frame)
		dataLength, err := varint.ReadVarInt(fr)
		if err != nil {
			return nil, err
		}
		rest := make([]byte, fr.Len())
		if _, err := io.ReadFull(fr, rest); err != nil {
			return nil, protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
		}
		body, err = compress.Decompress(dataLength, rest)
		if err != nil {
			return nil, err
		}
	}

	br := bytes.NewReader(body)
	id, err := varint.ReadVarInt(br)
	if err != nil {
		return nil, err
	}
	remaining := make([]byte, br.Len())
	if _, err := io.ReadFull(br, remaining); err != nil {
		return nil, protoerr.WrapDeserializeError(protoerr.UnexpectedEof, err)
	}

	reader := types.NewReader(remaining)
	pkt, err = c.dispatcher.Decode(c.decodingBound(), c.state, id, c.protocolVersion, reader)
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// Encode renders p into a complete wire frame: packet id + fields,
// optionally zlib-compressed, length-prefixed, then optionally
// encrypted, ready to write directly to the connection.
func (c *Codec) Encode(p packet.Packet) ([]byte, error) {
	w := types.NewWriter()
	w.WriteVarInt(p.ID())
	p.Encode(w)
	if w.Err() != nil {
		return nil, w.Err()
	}
	body := w.Bytes()

	var framed []byte
	if c.threshold != compress.Disabled {
		dataLength, payload, err := compress.Compress(c.threshold, body)
		if err != nil {
			return nil, err
		}
		fw := types.NewWriter()
		fw.WriteVarInt(dataLength)
		fw.WriteBytes(payload)
		framed = fw.Bytes()
	} else {
		framed = body
	}

	out := types.NewWriter()
	out.WriteVarInt(int32(len(framed)))
	out.WriteBytes(framed)
	if out.Err() != nil {
		return nil, out.Err()
	}
	return c.EncryptBytes(out.Bytes()), nil
}
