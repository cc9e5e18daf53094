package protocol

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackCodec carries the same envelope as JSON, packed into binary frames
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return SubprotocolMsgpack }
func (MsgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (MsgpackCodec) Encode(msg Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, ErrMissingMessageType
	}
	return msgpack.Marshal(&msg)
}

func (MsgpackCodec) Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return Message{}, ErrEmptyFrame
	}
	var msg Message
	if err := msgpack.Unmarshal(b, &msg); err != nil {
		return Message{}, fmt.Errorf("decode msgpack message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, ErrMissingMessageType
	}
	return msg, nil
}
