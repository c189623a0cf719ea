package messages

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// BaseMessage is the envelope of every frame
type BaseMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outgoing struct {
	Type    MessageType `json:"type"`
	Payload Message     `json:"payload"`
}

// inbound lists the messages a client may send, keyed by their tag
var inbound = map[MessageType]func() Message{
	TypeIDRequest:             func() Message { return &IDRequest{} },
	TypeMapListRequest:        func() Message { return &MapListRequest{} },
	TypeJoinMapRequest:        func() Message { return &JoinMapRequest{} },
	TypeLeaveMapRequest:       func() Message { return &LeaveMapRequest{} },
	TypeMoveRequest:           func() Message { return &MoveRequest{} },
	TypeFightChallengeRequest: func() Message { return &FightChallengeRequest{} },
	TypePlayCardRequest:       func() Message { return &PlayCardRequest{} },
	TypeEndTurnRequest:        func() Message { return &EndTurnRequest{} },
}

// Encode wraps a message in its envelope
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(outgoing{Type: msg.MessageType(), Payload: msg})
}

// Decode parses a client frame into its concrete request type. The result is a value,
// not a pointer, so callers can switch on it directly.
func Decode(data []byte) (Message, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	factory, ok := inbound[base.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, base.Type)
	}
	msg := factory()
	if len(base.Payload) > 0 && string(base.Payload) != "null" {
		if err := json.Unmarshal(base.Payload, msg); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", ErrMalformed, base.Type, err)
		}
	}
	return deref(msg), nil
}

func deref(msg Message) Message {
	switch m := msg.(type) {
	case *IDRequest:
		return *m
	case *MapListRequest:
		return *m
	case *JoinMapRequest:
		return *m
	case *LeaveMapRequest:
		return *m
	case *MoveRequest:
		return *m
	case *FightChallengeRequest:
		return *m
	case *PlayCardRequest:
		return *m
	case *EndTurnRequest:
		return *m
	}
	return msg
}
