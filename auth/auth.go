// Package auth implements the login-time identity side channel: Mojang
// session verification and offline-mode UUID derivation. Neither is
// part of the codec's decode/encode path — both are documented external
// collaborators the example server in cmd/loginserver calls out to
// between LoginStart and LoginSuccess.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	cryptoutil "mcproto/crypto"
	"mcproto/types"
)

// SessionProfile is what Mojang's session server returns for a verified
// client: the player's canonical UUID, username, and game-profile
// properties (skin/cape textures).
type SessionProfile struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Properties []SessionPropertyDTO `json:"properties"`
}

type SessionPropertyDTO struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// SessionVerifier abstracts the call to Mojang's "hasJoined" endpoint so
// it can be mocked in tests; the codec itself never performs this call.
type SessionVerifier interface {
	VerifySession(ctx context.Context, username, serverHash string) (*SessionProfile, error)
}

const sessionServerBase = "https://sessionserver.mojang.com/session/minecraft/hasJoined"

// MojangSessionVerifier calls the real Mojang session server.
type MojangSessionVerifier struct {
	Client *http.Client
}

func NewMojangSessionVerifier() *MojangSessionVerifier {
	return &MojangSessionVerifier{Client: http.DefaultClient}
}

func (v *MojangSessionVerifier) VerifySession(ctx context.Context, username, serverHash string) (*SessionProfile, error) {
	u := sessionServerBase + "?username=" + url.QueryEscape(username) + "&serverId=" + url.QueryEscape(serverHash)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		return nil, fmt.Errorf("auth: session not found for %q", username)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: session server returned %d", resp.StatusCode)
	}
	var profile SessionProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ComputeServerHash builds the session-hash value a login server sends
// to Mojang's hasJoined endpoint, per the exchange spec.md §6 describes.
func ComputeServerHash(serverID string, sharedSecret []byte, serverPublicKey *rsa.PublicKey) (string, error) {
	der, err := cryptoutil.MarshalPublicKeyDER(serverPublicKey)
	if err != nil {
		return "", err
	}
	return cryptoutil.SessionHash(serverID, sharedSecret, der), nil
}

// OfflineUUID derives the deterministic UUID offline-mode (online-mode
// disabled) servers assign a connecting player.
func OfflineUUID(username string) types.UUID {
	return types.OfflinePlayerUUID(username)
}
