package protocol

import (
	"testing"

	cryptoutil "mcproto/crypto"
	"mcproto/compress"
	"mcproto/packet"
)

func newTestDispatcher() *packet.Dispatcher {
	d := packet.NewDispatcher()
	packet.RegisterHandshake(d)
	packet.RegisterStatus(d)
	packet.RegisterLogin(d)
	packet.RegisterPlay(d)
	return d
}

func TestCodecPlainRoundTrip(t *testing.T) {
	d := newTestDispatcher()
	server := NewCodec(packet.Serverbound, d)

	in := &packet.HandshakePacket{
		ProtocolVersion: 759,
		ServerAddress:   "play.example.com",
		ServerPort:      25565,
		NextState:       packet.NextLogin,
	}
	wire, err := server.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	server.Feed(wire)
	got, err := server.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	hs, ok := got.(*packet.HandshakePacket)
	if !ok || hs.ServerAddress != in.ServerAddress {
		t.Fatalf("got %+v", got)
	}
}

func TestCodecPartialFrameWantsMore(t *testing.T) {
	d := newTestDispatcher()
	server := NewCodec(packet.Serverbound, d)
	in := &packet.HandshakePacket{ProtocolVersion: 759, ServerAddress: "x", ServerPort: 1, NextState: packet.NextStatus}
	wire, err := server.Encode(in)
	if err != nil {
		t.Fatal(err)
	}

	server.Feed(wire[:len(wire)-1])
	_, err = server.Decode()
	if err == nil {
		t.Fatalf("expected incomplete-frame error")
	}

	server.Feed(wire[len(wire)-1:])
	_, err = server.Decode()
	if err != nil {
		t.Fatalf("decode after completing frame: %v", err)
	}
}

func TestCodecCompressionThreshold(t *testing.T) {
	d := newTestDispatcher()
	server := NewCodec(packet.Serverbound, d)
	server.SetState(packet.Status)
	server.EnableCompression(compress.Threshold(16))

	small := &packet.PingRequest{Payload: 1}
	wire, err := server.Encode(small)
	if err != nil {
		t.Fatal(err)
	}
	server.Feed(wire)
	got, err := server.Decode()
	if err != nil {
		t.Fatalf("decode small: %v", err)
	}
	if got.(*packet.PingRequest).Payload != 1 {
		t.Fatalf("payload mismatch")
	}

	large := &packet.StatusResponse{JSON: string(make([]byte, 200))}
	wire2, err := server.Encode(large)
	if err != nil {
		t.Fatal(err)
	}
	server.Feed(wire2)
	_, err = server.Decode()
	if err != nil {
		t.Fatalf("decode large: %v", err)
	}
}

func TestCodecEncryptedRoundTrip(t *testing.T) {
	d := newTestDispatcher()
	server := NewCodec(packet.Serverbound, d)
	client := NewCodec(packet.Clientbound, d)

	secret, err := cryptoutil.GenerateSharedSecret()
	if err != nil {
		t.Fatal(err)
	}
	srvEnc, err := cryptoutil.NewEncryptStream(secret)
	if err != nil {
		t.Fatal(err)
	}
	srvDec, err := cryptoutil.NewDecryptStream(secret)
	if err != nil {
		t.Fatal(err)
	}
	server.EnableEncryption(srvEnc, srvDec)

	cliEnc, err := cryptoutil.NewEncryptStream(secret)
	if err != nil {
		t.Fatal(err)
	}
	cliDec, err := cryptoutil.NewDecryptStream(secret)
	if err != nil {
		t.Fatal(err)
	}
	client.EnableEncryption(cliEnc, cliDec)

	in := &packet.HandshakePacket{ProtocolVersion: 759, ServerAddress: "enc", ServerPort: 1, NextState: packet.NextLogin}
	wire, err := client.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	decrypted := server.DecryptBytes(wire)
	server.Feed(decrypted)
	got, err := server.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(*packet.HandshakePacket).ServerAddress != "enc" {
		t.Fatalf("mismatch: %+v", got)
	}
}
