// Command loginserver is a worked example tying every package in this
// module together: it accepts a connection, runs the Handshake/Status/
// Login state machine over protocol.Codec, then hands the now-Play-
// state connection off to a backend server chosen from backend.Registry
// — the Go analogue of the teacher's server+client+registry+codec
// integration test, just wired as a runnable binary instead of a test.
package main

import (
	"bufio"
	"context"
	"crypto/rsa"
	"errors"
	"flag"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"mcproto/auth"
	"mcproto/backend"
	"mcproto/chat"
	"mcproto/compress"
	"mcproto/config"
	cryptoutil "mcproto/crypto"
	"mcproto/legacy"
	"mcproto/packet"
	"mcproto/protoerr"
	"mcproto/protocol"
	"mcproto/ratelimit"
	"mcproto/types"
)

func main() {
	listenAddr := flag.String("listen", ":25565", "address to listen on")
	advertiseAddr := flag.String("advertise", "localhost:25565", "address advertised to backend discovery")
	onlineMode := flag.Bool("online-mode", true, "verify sessions against Mojang")
	etcdEndpoint := flag.String("etcd", "", "etcd endpoint for backend discovery (empty disables)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.New(
		config.WithListenAddr(*listenAddr),
		config.WithAdvertisedAddr(*advertiseAddr),
		config.WithOnlineMode(*onlineMode),
	)

	var reg backend.Registry
	if *etcdEndpoint != "" {
		r, err := backend.NewEtcdRegistry([]string{*etcdEndpoint}, log)
		if err != nil {
			log.Fatalw("failed to connect to backend registry", "error", err)
		}
		reg = r
	}

	gw := &gateway{
		cfg:       cfg,
		log:       log,
		dispatch:  newDispatcher(),
		throttle:  ratelimit.NewLoginThrottle(cfg.LoginRateLimit, cfg.LoginRateBurst),
		registry:  reg,
		balancer:  &backend.RoundRobin{},
		verifier:  auth.NewMojangSessionVerifier(),
	}

	if err := gw.listenAndServe(); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}

func newDispatcher() *packet.Dispatcher {
	d := packet.NewDispatcher()
	packet.RegisterHandshake(d)
	packet.RegisterStatus(d)
	packet.RegisterLogin(d)
	packet.RegisterPlay(d)
	return d
}

type gateway struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	dispatch *packet.Dispatcher
	throttle *ratelimit.LoginThrottle
	registry backend.Registry
	balancer backend.Balancer
	verifier auth.SessionVerifier
}

func (g *gateway) listenAndServe() error {
	ln, err := net.Listen("tcp", g.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer ln.Close()
	g.log.Infow("listening", "addr", g.cfg.ListenAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go g.handleConn(conn)
	}
}

// handleConn runs the full Handshake -> Status|Login -> Play sequence
// for one connection, one goroutine, strictly sequential — matching the
// teacher's single-reader-goroutine-per-connection shape, generalized
// from RPC request framing to the game handshake state machine.
func (g *gateway) handleConn(conn net.Conn) {
	defer conn.Close()
	addr := conn.RemoteAddr()
	log := g.log.With("addr", addr.String())

	br := bufio.NewReader(conn)
	if kind, isLegacy, err := legacy.DetectPing(br); err == nil && isLegacy {
		log.Infow("legacy ping", "kind", kind)
		legacy.WriteResponse(conn, legacy.Status{
			ProtocolVersion:  759,
			MinecraftVersion: "1.19",
			MOTD:             "A mcproto server",
			OnlinePlayers:    0,
			MaxPlayers:       20,
		})
		return
	}

	codec := protocol.NewCodec(packet.Serverbound, g.dispatch)

	readFrame := func() (packet.Packet, error) {
		for {
			pkt, err := codec.Decode()
			if err == nil {
				return pkt, nil
			}
			if !errors.Is(err, protoerr.ErrUnexpectedEof) {
				return nil, err
			}
			buf := make([]byte, 4096)
			n, rerr := br.Read(buf)
			if n > 0 {
				codec.Feed(codec.DecryptBytes(buf[:n]))
			}
			if rerr != nil {
				return nil, rerr
			}
		}
	}

	writeMu := &sync.Mutex{}
	writePacket := func(p packet.Packet) error {
		wire, err := codec.Encode(p)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		_, err = conn.Write(wire)
		return err
	}

	hsPkt, err := readFrame()
	if err != nil {
		log.Debugw("failed to read handshake", "error", err)
		return
	}
	hs, ok := hsPkt.(*packet.HandshakePacket)
	if !ok {
		log.Warnw("first packet was not a handshake")
		return
	}
	codec.SetProtocolVersion(hs.ProtocolVersion)

	switch hs.NextState {
	case packet.NextStatus:
		g.handleStatus(codec, readFrame, writePacket, log)
	case packet.NextLogin:
		codec.SetState(packet.Login)
		g.handleLogin(conn, codec, readFrame, writePacket, log, addr)
	default:
		log.Warnw("unknown next_state in handshake", "next_state", hs.NextState)
	}
}

func (g *gateway) handleStatus(codec *protocol.Codec, readFrame func() (packet.Packet, error), writePacket func(packet.Packet) error, log *zap.SugaredLogger) {
	codec.SetState(packet.Status)
	doc := packet.StatusDocument{
		Version:     packet.StatusVersion{Name: "mcproto 1.19", Protocol: 759},
		Players:     packet.StatusPlayers{Max: 20, Online: 0},
		Description: chat.Text("A mcproto server").WithColor(chat.NamedColor("aqua")),
	}
	body, err := doc.Marshal()
	if err != nil {
		log.Warnw("failed to marshal status document", "error", err)
		return
	}

	for i := 0; i < 2; i++ {
		req, err := readFrame()
		if err != nil {
			return
		}
		switch p := req.(type) {
		case *packet.StatusRequest:
			writePacket(&packet.StatusResponse{JSON: body})
		case *packet.PingRequest:
			writePacket(&packet.PingResponse{Payload: p.Payload})
			return
		}
	}
}

func (g *gateway) handleLogin(conn net.Conn, codec *protocol.Codec, readFrame func() (packet.Packet, error), writePacket func(packet.Packet) error, log *zap.SugaredLogger, addr net.Addr) {
	if !g.throttle.Allow(addr) {
		writePacket(&packet.LoginDisconnect{Reason: chat.Text("Too many login attempts, try again later")})
		return
	}
	defer g.throttle.Forget(addr)

	startPkt, err := readFrame()
	if err != nil {
		return
	}
	start, ok := startPkt.(*packet.LoginStart)
	if !ok {
		return
	}
	log = log.With("username", start.Name)

	var playerUUID = auth.OfflineUUID(start.Name)

	if g.cfg.OnlineMode {
		priv, err := cryptoutil.GenerateServerKeyPair()
		if err != nil {
			log.Errorw("failed to generate server key pair", "error", err)
			return
		}
		verifyToken, err := cryptoutil.GenerateVerifyToken()
		if err != nil {
			return
		}

		if err := writePacket(&packet.EncryptionRequest{
			ServerID:    "",
			PublicKey:   mustRsaPublicKey(&priv.PublicKey),
			VerifyToken: verifyToken,
		}); err != nil {
			return
		}

		respPkt, err := readFrame()
		if err != nil {
			return
		}
		resp, ok := respPkt.(*packet.EncryptionResponse)
		if !ok {
			return
		}

		sharedSecret, err := cryptoutil.DecryptWithPrivateKey(priv, resp.SharedSecret)
		if err != nil {
			log.Warnw("shared secret decrypt failed", "error", err)
			return
		}
		if resp.Verify.IsLeft {
			decryptedToken, err := cryptoutil.DecryptWithPrivateKey(priv, resp.Verify.Left)
			if err != nil || string(decryptedToken) != string(verifyToken) {
				log.Warnw("verify token mismatch")
				return
			}
		}

		serverHash, err := auth.ComputeServerHash("", sharedSecret, &priv.PublicKey)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		profile, err := g.verifier.VerifySession(ctx, start.Name, serverHash)
		cancel()
		if err != nil {
			log.Warnw("session verification failed", "error", err)
			writePacket(&packet.LoginDisconnect{Reason: chat.Text("Failed to verify session")})
			return
		}
		if parsed, err := parseUUID(profile.ID); err == nil {
			playerUUID = parsed
		}

		encStream, err := cryptoutil.NewEncryptStream(sharedSecret)
		if err != nil {
			return
		}
		decStream, err := cryptoutil.NewDecryptStream(sharedSecret)
		if err != nil {
			return
		}
		codec.EnableEncryption(encStream, decStream)
	}

	if g.cfg.CompressionThresh >= 0 {
		if err := writePacket(&packet.SetCompression{Threshold: g.cfg.CompressionThresh}); err != nil {
			return
		}
		codec.EnableCompression(compress.Threshold(g.cfg.CompressionThresh))
	}

	if err := writePacket(&packet.LoginSuccess{
		UUID:            playerUUID,
		Username:        start.Name,
		ProtocolVersion: codec.ProtocolVersion(),
	}); err != nil {
		return
	}
	codec.SetState(packet.Play)
	log.Infow("player joined", "uuid", playerUUID.String())

	g.proxyToBackend(conn, log)
}

// proxyToBackend picks a backend Play server from the fleet and splices
// the raw connection to it; the gateway itself implements no game
// logic, matching spec.md's stance that the core owns only the codec
// and state machine, not gameplay.
func (g *gateway) proxyToBackend(conn net.Conn, log *zap.SugaredLogger) {
	if g.registry == nil {
		log.Warnw("no backend registry configured, dropping connection after login")
		return
	}
	servers, err := g.registry.Discover("play")
	if err != nil || len(servers) == 0 {
		log.Warnw("no backend servers available", "error", err)
		return
	}
	srv, err := g.balancer.Pick(servers)
	if err != nil {
		return
	}

	backendConn, err := net.DialTimeout("tcp", srv.Addr, 5*time.Second)
	if err != nil {
		log.Warnw("failed to dial backend", "addr", srv.Addr, "error", err)
		return
	}
	defer backendConn.Close()

	done := make(chan struct{}, 2)
	go func() { io.Copy(backendConn, conn); done <- struct{}{} }()
	go func() { io.Copy(conn, backendConn); done <- struct{}{} }()
	<-done
}

func mustRsaPublicKey(pub *rsa.PublicKey) types.RsaPublicKey {
	return types.RsaPublicKey{Key: pub}
}

func parseUUID(s string) (types.UUID, error) {
	return types.ParseUUID(s)
}
