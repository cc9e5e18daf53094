package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

// websocket subprotocols a client may ask for
const (
	SubprotocolJSON    = "pong.json"
	SubprotocolMsgpack = "pong.msgpack"
	SubprotocolProto   = "pong.proto"
)

var (
	ErrEmptyFrame         = errors.New("empty frame")
	ErrUnknownSubprotocol = errors.New("unknown subprotocol")
	ErrMissingMessageType = errors.New("message has no type")
)

// Codec turns messages into websocket frames and back
type Codec interface {
	Name() string
	// FrameType is the websocket message type frames are written with
	FrameType() int
	Encode(msg Message) ([]byte, error)
	Decode(b []byte) (Message, error)
}

// Subprotocols lists the negotiable subprotocols in order of preference
func Subprotocols() []string {
	return []string{SubprotocolJSON, SubprotocolMsgpack, SubprotocolProto}
}

// CodecFor returns the codec for a negotiated subprotocol. An empty name means
// the client asked for nothing and gets JSON.
func CodecFor(subprotocol string) (Codec, error) {
	switch subprotocol {
	case "", SubprotocolJSON:
		return JSONCodec{}, nil
	case SubprotocolMsgpack:
		return MsgpackCodec{}, nil
	case SubprotocolProto:
		return ProtoCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubprotocol, subprotocol)
	}
}

type JSONCodec struct{}

func (JSONCodec) Name() string { return SubprotocolJSON }
func (JSONCodec) FrameType() int { return websocket.TextMessage }

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, ErrMissingMessageType
	}
	return json.Marshal(msg)
}

func (JSONCodec) Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return Message{}, ErrEmptyFrame
	}
	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		return Message{}, fmt.Errorf("decode json message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, ErrMissingMessageType
	}
	return msg, nil
}
