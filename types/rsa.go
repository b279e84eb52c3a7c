package types

import (
	"crypto/rsa"
	"crypto/x509"

	"mcproto/protoerr"
)

// RsaPublicKey is the wire form of the server's login-encryption public
// key: a VarInt-length-prefixed DER blob in SubjectPublicKeyInfo form,
// exactly what Go's x509.MarshalPKIXPublicKey / ParsePKIXPublicKey speak.
type RsaPublicKey struct {
	Key *rsa.PublicKey
}

func (w *Writer) WriteRsaPublicKey(k RsaPublicKey) {
	der, err := x509.MarshalPKIXPublicKey(k.Key)
	if err != nil {
		w.fail(protoerr.WrapSerializeError(protoerr.SerSpkiError, err))
		return
	}
	w.WriteByteArray(der)
}

func (r *Reader) ReadRsaPublicKey() RsaPublicKey {
	der := r.ReadByteArray()
	if r.Err() != nil {
		return RsaPublicKey{}
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		r.fail(protoerr.WrapDeserializeError(protoerr.SpkiError, err))
		return RsaPublicKey{}
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		r.fail(protoerr.NewDeserializeError(protoerr.SpkiError, "key is not rsa"))
		return RsaPublicKey{}
	}
	return RsaPublicKey{Key: rsaKey}
}
