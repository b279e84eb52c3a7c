package cryptoutil

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"crypto/sha1"
	"testing"
)

func shaSum(b []byte) []byte {
	sum := sha1.Sum(b)
	return sum[:]
}

func TestCFB8RoundTrip(t *testing.T) {
	key := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("the quick brown fox jumps over the lazy dog, 0123456789")

	enc := NewCFB8Encrypter(block, key)
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	block2, _ := aes.NewCipher(key)
	dec := NewCFB8Decrypter(block2, key)
	recovered := make([]byte, len(ciphertext))
	dec.XORKeyStream(recovered, ciphertext)

	if !bytes.Equal(recovered, plaintext) {
		t.Fatalf("roundtrip failed: got %q want %q", recovered, plaintext)
	}
}

func TestCFB8StreamingAcrossCalls(t *testing.T) {
	key := make([]byte, 16)
	block, _ := aes.NewCipher(key)
	plaintext := []byte("streamed-in-small-pieces-to-check-register-continuity")

	enc := NewCFB8Encrypter(block, key)
	var whole bytes.Buffer
	for i := 0; i < len(plaintext); i++ {
		out := make([]byte, 1)
		enc.XORKeyStream(out, plaintext[i:i+1])
		whole.Write(out)
	}

	block2, _ := aes.NewCipher(key)
	enc2 := NewCFB8Encrypter(block2, key)
	oneShot := make([]byte, len(plaintext))
	enc2.XORKeyStream(oneShot, plaintext)

	if !bytes.Equal(whole.Bytes(), oneShot) {
		t.Fatalf("byte-at-a-time and one-shot encryption diverged")
	}
}

func TestRsaEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := GenerateServerKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	secret, err := GenerateSharedSecret()
	if err != nil {
		t.Fatal(err)
	}
	ct, err := EncryptWithPublicKey(&priv.PublicKey, secret)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptWithPrivateKey(priv, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, secret) {
		t.Fatalf("rsa roundtrip mismatch")
	}
}

func TestSessionHashKnownVectors(t *testing.T) {
	// Vectors from wiki.vg's documented examples for the "Notch" hash.
	cases := map[string]string{
		"Notch":      "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48",
		"jeb_":       "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1",
		"simon":      "88e16a1019277b15d58faf0541e11910eb756f6",
	}
	for input, want := range cases {
		got := javaHexDigest(mustHash(input))
		if got != want {
			t.Errorf("javaHexDigest(%q) = %s, want %s", input, got, want)
		}
	}
}

func mustHash(s string) []byte {
	h := shaSum([]byte(s))
	return h
}
