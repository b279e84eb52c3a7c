// Package cryptoutil implements the login-encryption primitives: the
// AES-128/CFB8 stream cipher the protocol switches the connection to
// after a successful key exchange, and the RSA encrypt/decrypt used to
// wrap the shared secret and verify token during that handshake.
//
// Go's standard library cipher.NewCFBEncrypter/NewCFBDecrypter implement
// full-block-segment CFB (128-bit feedback), not the byte-granular CFB8
// this protocol requires, so this file hand-rolls a cipher.Stream that
// feeds the cipher one byte at a time — the same shape as the other
// custom stream-cipher implementations in the retrieval corpus (MTProxy's
// obfuscated transport, go-ethereum's RLPx frame cipher), just with an
// 8-bit shift register instead of XOR-obfuscation or a counter.
package cryptoutil

import "crypto/cipher"

// cfb8 implements cipher.Stream for CFB8 mode: the shift register is the
// cipher's full block size, but only the leading byte of each encrypted
// register ever reaches the ciphertext/plaintext stream.
type cfb8 struct {
	block     cipher.Block
	register  []byte
	tmp       []byte
	decrypt   bool
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	bs := block.BlockSize()
	register := make([]byte, bs)
	copy(register, iv)
	return &cfb8{
		block:    block,
		register: register,
		tmp:      make([]byte, bs),
		decrypt:  decrypt,
	}
}

// NewCFB8Encrypter returns a cipher.Stream that encrypts using AES-128
// in CFB8 mode with the given IV (the shared secret doubles as the IV,
// per the protocol's key-exchange step).
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter returns the matching decrypting stream.
func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func (s *cfb8) XORKeyStream(dst, src []byte) {
	for i := range src {
		s.block.Encrypt(s.tmp, s.register)
		out := src[i] ^ s.tmp[0]
		if s.decrypt {
			s.shiftIn(src[i])
		} else {
			s.shiftIn(out)
		}
		dst[i] = out
	}
}

// shiftIn pushes b into the low end of the shift register, discarding
// the oldest byte at the front — the CFB8 feedback step.
func (s *cfb8) shiftIn(b byte) {
	copy(s.register, s.register[1:])
	s.register[len(s.register)-1] = b
}
