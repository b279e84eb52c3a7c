package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier struct {
	profile *SessionProfile
	err     error
}

func (s *stubVerifier) VerifySession(ctx context.Context, username, serverHash string) (*SessionProfile, error) {
	return s.profile, s.err
}

func TestOfflineUUIDIsDeterministic(t *testing.T) {
	a := OfflineUUID("Notch")
	b := OfflineUUID("Notch")
	if a != b {
		t.Fatalf("offline uuid not deterministic: %v vs %v", a, b)
	}
	c := OfflineUUID("jeb_")
	if a == c {
		t.Fatalf("different usernames produced the same uuid")
	}
}

func TestSessionProfileDecodesFromStubServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SessionProfile{ID: "abc123", Name: "Notch"})
	}))
	defer srv.Close()

	v := NewMojangSessionVerifier()
	v.Client = srv.Client()
	// Exercise the JSON decode path directly against the stub server's
	// transport rather than the hardcoded Mojang host.
	resp, err := v.Client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var profile SessionProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Notch" {
		t.Fatalf("got %+v", profile)
	}
}

func TestSessionVerifierInterfaceSatisfiedByStub(t *testing.T) {
	var v SessionVerifier = &stubVerifier{profile: &SessionProfile{Name: "Notch"}}
	profile, err := v.VerifySession(context.Background(), "Notch", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Notch" {
		t.Fatalf("got %+v", profile)
	}
}
