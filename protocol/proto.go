package protocol

import (
	"fmt"
	"math"

	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mo-shahab/duel-pong/ball"
	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/paddle"
	"github.com/mo-shahab/duel-pong/scores"
)

// ProtoCodec writes messages in protobuf wire format. The schema, for clients
// generating their own bindings:
//
//	message Paddle { double x = 1; double y = 2; double width = 3; double height = 4; double speed = 5; }
//	message Ball   { double x = 1; double y = 2; double radius = 3; double dx = 4; double dy = 5; }
//	message Score  { int64 player1 = 1; int64 player2 = 2; }
//	message State  { Paddle paddle1 = 1; Paddle paddle2 = 2; Ball ball = 3; Score score = 4;
//	                 double canvas_width = 5; double canvas_height = 6; }
//	message Message { string type = 1; string role = 2; string direction = 3;
//	                  string message = 4; State state = 5; }
type ProtoCodec struct{}

func (ProtoCodec) Name() string { return SubprotocolProto }
func (ProtoCodec) FrameType() int { return websocket.BinaryMessage }

// Message fields
const (
	fieldType      protowire.Number = 1
	fieldRole      protowire.Number = 2
	fieldDirection protowire.Number = 3
	fieldMessage   protowire.Number = 4
	fieldState     protowire.Number = 5
)

// State fields
const (
	fieldPaddle1      protowire.Number = 1
	fieldPaddle2      protowire.Number = 2
	fieldBall         protowire.Number = 3
	fieldScore        protowire.Number = 4
	fieldCanvasWidth  protowire.Number = 5
	fieldCanvasHeight protowire.Number = 6
)

func (ProtoCodec) Encode(msg Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, ErrMissingMessageType
	}

	var b []byte
	b = appendString(b, fieldType, msg.Type)
	b = appendString(b, fieldRole, msg.Role)
	b = appendString(b, fieldDirection, msg.Direction)
	b = appendString(b, fieldMessage, msg.Message)
	if msg.State != nil {
		b = protowire.AppendTag(b, fieldState, protowire.BytesType)
		b = protowire.AppendBytes(b, appendState(nil, msg.State))
	}
	return b, nil
}

func (ProtoCodec) Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return Message{}, ErrEmptyFrame
	}

	var msg Message
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldType:
			return consumeString(typ, b, &msg.Type), nil
		case fieldRole:
			return consumeString(typ, b, &msg.Role), nil
		case fieldDirection:
			return consumeString(typ, b, &msg.Direction), nil
		case fieldMessage:
			return consumeString(typ, b, &msg.Message), nil
		case fieldState:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			state, err := decodeState(v)
			if err != nil {
				return 0, err
			}
			msg.State = &state
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return Message{}, fmt.Errorf("decode proto message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, ErrMissingMessageType
	}
	return msg, nil
}

func appendState(b []byte, s *game.State) []byte {
	b = appendMessage(b, fieldPaddle1, appendPaddle(nil, s.Paddle1))
	b = appendMessage(b, fieldPaddle2, appendPaddle(nil, s.Paddle2))
	b = appendMessage(b, fieldBall, appendBall(nil, s.Ball))
	b = appendMessage(b, fieldScore, appendScore(nil, s.Score))
	b = appendDouble(b, fieldCanvasWidth, s.CanvasWidth)
	b = appendDouble(b, fieldCanvasHeight, s.CanvasHeight)
	return b
}

func appendPaddle(b []byte, p paddle.Paddle) []byte {
	b = appendDouble(b, 1, p.X)
	b = appendDouble(b, 2, p.Y)
	b = appendDouble(b, 3, p.Width)
	b = appendDouble(b, 4, p.Height)
	b = appendDouble(b, 5, p.Speed)
	return b
}

func appendBall(b []byte, bl ball.Ball) []byte {
	b = appendDouble(b, 1, bl.X)
	b = appendDouble(b, 2, bl.Y)
	b = appendDouble(b, 3, bl.Radius)
	b = appendDouble(b, 4, bl.Dx)
	b = appendDouble(b, 5, bl.Dy)
	return b
}

func appendScore(b []byte, s scores.Scores) []byte {
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(s.Player1)))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(s.Player2)))
	return b
}

func decodeState(b []byte) (game.State, error) {
	var s game.State
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldPaddle1:
			return consumeNested(typ, b, func(v []byte) error { return decodePaddle(v, &s.Paddle1) })
		case fieldPaddle2:
			return consumeNested(typ, b, func(v []byte) error { return decodePaddle(v, &s.Paddle2) })
		case fieldBall:
			return consumeNested(typ, b, func(v []byte) error { return decodeBall(v, &s.Ball) })
		case fieldScore:
			return consumeNested(typ, b, func(v []byte) error { return decodeScore(v, &s.Score) })
		case fieldCanvasWidth:
			return consumeDouble(typ, b, &s.CanvasWidth), nil
		case fieldCanvasHeight:
			return consumeDouble(typ, b, &s.CanvasHeight), nil
		}
		return 0, nil
	})
	return s, err
}

func decodePaddle(b []byte, p *paddle.Paddle) error {
	fields := map[protowire.Number]*float64{1: &p.X, 2: &p.Y, 3: &p.Width, 4: &p.Height, 5: &p.Speed}
	return consumeDoubles(b, fields)
}

func decodeBall(b []byte, bl *ball.Ball) error {
	fields := map[protowire.Number]*float64{1: &bl.X, 2: &bl.Y, 3: &bl.Radius, 4: &bl.Dx, 5: &bl.Dy}
	return consumeDoubles(b, fields)
}

func decodeScore(b []byte, s *scores.Scores) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.VarintType {
			return 0, nil
		}
		var dst *int
		switch num {
		case 1:
			dst = &s.Player1
		case 2:
			dst = &s.Player2
		default:
			return 0, nil
		}
		v, n := protowire.ConsumeVarint(b)
		if n >= 0 {
			*dst = int(int64(v))
		}
		return n, nil
	})
}

// consumeFields walks b field by field. fn returns the number of bytes it
// consumed from the value, 0 to have the field skipped, or a negative protowire
// error code.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeDoubles(b []byte, fields map[protowire.Number]*float64) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		dst, ok := fields[num]
		if !ok {
			return 0, nil
		}
		return consumeDouble(typ, b, dst), nil
	})
}

func consumeNested(typ protowire.Type, b []byte, decode func(v []byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, decode(v)
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeDouble(typ protowire.Type, b []byte, dst *float64) int {
	if typ != protowire.Fixed64Type {
		return 0
	}
	v, n := protowire.ConsumeFixed64(b)
	if n >= 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
