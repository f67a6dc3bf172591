package game

import (
	"bytes"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// WebSocket subprotocols a client may request.
const (
	JSONSubprotocol    = "json"
	MsgpackSubprotocol = "msgpack"
)

// Codec encodes messages for one wire format.
type Codec interface {
	Name() string
	FrameType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	JSONCodec    Codec = jsonCodec{}
	MsgpackCodec Codec = msgpackCodec{}
)

// CodecFor maps a negotiated subprotocol to its codec; JSON is the default.
func CodecFor(subprotocol string) Codec {
	if subprotocol == MsgpackSubprotocol {
		return MsgpackCodec
	}
	return JSONCodec
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return JSONSubprotocol }
func (jsonCodec) FrameType() int                     { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// msgpackCodec reuses the json struct tags so both formats carry the same keys.
type msgpackCodec struct{}

func (msgpackCodec) Name() string   { return MsgpackSubprotocol }
func (msgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
