package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"math/big"

	"mcproto/protoerr"
)

// SharedSecretSize is the fixed length the protocol requires for the
// AES-128 shared secret negotiated during login.
const SharedSecretSize = 16

// GenerateServerKeyPair mints the RSA-1024 key pair the login server
// advertises in EncryptionRequest; 1024 bits matches the key size
// vanilla clients have always been sent and accepted.
func GenerateServerKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 1024)
}

// GenerateVerifyToken returns a fresh random token the client must echo
// back encrypted, proving it holds the public key the server sent.
func GenerateVerifyToken() ([]byte, error) {
	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return nil, err
	}
	return token, nil
}

// GenerateSharedSecret mints a random AES-128 key for the session cipher.
func GenerateSharedSecret() ([]byte, error) {
	secret := make([]byte, SharedSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// EncryptWithPublicKey wraps RSA PKCS#1 v1.5 encryption (what the
// client uses to send the shared secret and verify token, and what a
// client-side implementation would use against the server's key).
func EncryptWithPublicKey(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
	if err != nil {
		return nil, protoerr.WrapSerializeError(protoerr.SerRsaError, err)
	}
	return ct, nil
}

// DecryptWithPrivateKey undoes EncryptWithPublicKey: what the server
// does to recover the shared secret and verify token the client sent.
func DecryptWithPrivateKey(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
	if err != nil {
		return nil, protoerr.WrapDeserializeError(protoerr.RsaError, err)
	}
	return pt, nil
}

// MarshalPublicKeyDER renders the public half of a key pair as a DER
// SubjectPublicKeyInfo blob, the form EncryptionRequest puts on the wire.
func MarshalPublicKeyDER(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, protoerr.WrapSerializeError(protoerr.SerSpkiError, err)
	}
	return der, nil
}

// SessionHash computes the digest used for Mojang's "hasJoined" session
// check: SHA-1 over the server id, shared secret and DER public key,
// then rendered as Java's signed hex-digest (a leading "-" for negative
// values, rather than two's-complement hex).
func SessionHash(serverID string, sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	sum := h.Sum(nil)
	return javaHexDigest(sum)
}

// javaHexDigest reproduces java.math.BigInteger(bytes).toString(16): the
// digest is interpreted as a signed two's-complement big integer, then
// printed in hex with a leading minus sign rather than wraparound.
func javaHexDigest(sum []byte) string {
	n := new(big.Int).SetBytes(sum)
	// two's complement: if the top bit of a SHA-1 digest (160 bits) is
	// set, the value is negative; subtract 2^160 to get the signed value.
	if sum[0]&0x80 != 0 {
		max := new(big.Int).Lsh(big.NewInt(1), uint(len(sum)*8))
		n.Sub(n, max)
	}
	return n.Text(16)
}

// NewEncryptStream builds the AES-128/CFB8 encrypting stream the
// connection switches to once the shared secret is established. The
// shared secret is reused as the IV, matching the key-exchange step.
func NewEncryptStream(sharedSecret []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, err
	}
	return NewCFB8Encrypter(block, sharedSecret), nil
}

// NewDecryptStream builds the matching decrypting stream.
func NewDecryptStream(sharedSecret []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, err
	}
	return NewCFB8Decrypter(block, sharedSecret), nil
}
