// Package compress implements the threshold-gated zlib wrapping the
// protocol applies to packet bodies once compression is negotiated:
// below the threshold a packet is sent with a zero data-length prefix
// and left uncompressed; at or above it, the prefix carries the
// uncompressed length and the body that follows is zlib-deflated.
package compress

import (
	"bytes"
	"compress/zlib"
	"io"

	"mcproto/protoerr"
)

// Threshold gates whether a packet body gets compressed at all; bodies
// shorter than Threshold bytes are sent uncompressed regardless of the
// server's negotiated setting, since compressing them would only add
// overhead.
type Threshold int32

// Disabled means compression was never enabled for this connection —
// distinct from a Threshold of 0, which means "always compress".
const Disabled Threshold = -1

// Compress deflates body if it meets the threshold, returning the
// (dataLength, payload) pair the frame codec writes: dataLength is 0
// when payload is sent raw, and the original length otherwise.
func Compress(threshold Threshold, body []byte) (dataLength int32, payload []byte, err error) {
	if threshold == Disabled || int32(len(body)) < int32(threshold) {
		return 0, body, nil
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return 0, nil, protoerr.WrapSerializeError(protoerr.SerZlibError, err)
	}
	if err := zw.Close(); err != nil {
		return 0, nil, protoerr.WrapSerializeError(protoerr.SerZlibError, err)
	}
	return int32(len(body)), buf.Bytes(), nil
}

// Decompress reverses Compress given the frame's declared dataLength
// (0 meaning "not compressed") and the payload bytes that followed it.
func Decompress(dataLength int32, payload []byte) ([]byte, error) {
	if dataLength == 0 {
		return payload, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, protoerr.WrapDeserializeError(protoerr.ZlibError, err)
	}
	defer zr.Close()
	out := make([]byte, 0, dataLength)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, protoerr.WrapDeserializeError(protoerr.ZlibError, err)
	}
	if int32(buf.Len()) != dataLength {
		return nil, protoerr.NewDeserializeError(protoerr.ZlibError, "decompressed length does not match declared data length")
	}
	return buf.Bytes(), nil
}
