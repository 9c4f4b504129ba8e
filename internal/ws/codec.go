package ws

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts Messages to and from WebSocket frames.
type Codec interface {
	Name() string
	Encode(msg Message) ([]byte, error)
	Decode(data []byte) (Message, error)
	// FrameType is the websocket message type used for encoded frames.
	FrameType() int
}

// CodecByName returns the codec registered under name, defaulting to JSON.
func CodecByName(name string) Codec {
	if name == "msgpack" {
		return MsgpackCodec{}
	}
	return JSONCodec{}
}

// JSONCodec sends text frames of {"type": ..., "data": ...}.
type JSONCodec struct{}

func (JSONCodec) Name() string   { return "json" }
func (JSONCodec) FrameType() int { return websocket.TextMessage }

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// MsgpackCodec sends binary frames carrying the same envelope as JSONCodec.
// Struct payloads keep their json field names.
type MsgpackCodec struct{}

type msgpackEnvelope struct {
	Type string `json:"type" msgpack:"type"`
	Data any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

func (MsgpackCodec) Name() string   { return "msgpack" }
func (MsgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (MsgpackCodec) Encode(msg Message) ([]byte, error) {
	env := msgpackEnvelope{Type: msg.Type, Data: msg.payload}
	if env.Data == nil && len(msg.Data) > 0 {
		var decoded any
		if err := json.Unmarshal(msg.Data, &decoded); err != nil {
			return nil, fmt.Errorf("decode json payload: %w", err)
		}
		env.Data = decoded
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte) (Message, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Message{}, err
	}
	msg := Message{Type: env.Type}
	if env.Data != nil {
		raw, err := json.Marshal(env.Data)
		if err != nil {
			return Message{}, fmt.Errorf("re-encode payload: %w", err)
		}
		msg.Data = raw
	}
	return msg, nil
}
