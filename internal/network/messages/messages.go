// Package messages defines the actor feed protocol.
//
// Every message travels as a frame: a 4-byte big-endian payload length
// followed by a UTF-8 JSON object. The object's "message_type" field selects
// the message kind.
package messages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Protocol errors.
var (
	ErrUnknownType   = errors.New("unknown message type")
	ErrFrameTooLarge = errors.New("frame too large")
)

// Type is the value of the message_type discriminator.
type Type string

// Message types
const (
	TypeMove    Type = "Move"
	TypeSpawn   Type = "Spawn"
	TypeDespawn Type = "Despawn"
)

// Message is one of Move, Spawn or Despawn.
type Message interface {
	Type() Type
	ActorID() string
}

// Vector3 is a position on the wire.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// NewVector3 converts an mgl32 vector.
func NewVector3(v mgl32.Vec3) Vector3 {
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Vec3 converts to an mgl32 vector.
func (v Vector3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Move reports an actor travelling from Orig to Dest.
type Move struct {
	ID   string  `json:"id"`
	Orig Vector3 `json:"orig"`
	Dest Vector3 `json:"dest"`
}

// Spawn reports a new actor.
type Spawn struct {
	ID        string  `json:"id"`
	ActorType string  `json:"type"`
	Position  Vector3 `json:"position"`
}

// Despawn reports an actor leaving.
type Despawn struct {
	ID string `json:"id"`
}

func (Move) Type() Type    { return TypeMove }
func (Spawn) Type() Type   { return TypeSpawn }
func (Despawn) Type() Type { return TypeDespawn }

func (m Move) ActorID() string    { return m.ID }
func (m Spawn) ActorID() string   { return m.ID }
func (m Despawn) ActorID() string { return m.ID }

// envelope reads the discriminator before the body is decoded.
type envelope struct {
	MessageType Type `json:"message_type"`
}

// Encode marshals msg to JSON with its message_type field first.
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case Move:
		return json.Marshal(struct {
			MessageType Type `json:"message_type"`
			Move
		}{TypeMove, m})
	case Spawn:
		return json.Marshal(struct {
			MessageType Type `json:"message_type"`
			Spawn
		}{TypeSpawn, m})
	case Despawn:
		return json.Marshal(struct {
			MessageType Type `json:"message_type"`
			Despawn
		}{TypeDespawn, m})
	case nil:
		return nil, fmt.Errorf("%w: nil message", ErrUnknownType)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, msg)
	}
}

// Decode unmarshals a JSON payload into the message its message_type names.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	switch env.MessageType {
	case TypeMove:
		var m Move
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", env.MessageType, err)
		}
		return m, nil
	case TypeSpawn:
		var m Spawn
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", env.MessageType, err)
		}
		return m, nil
	case TypeDespawn:
		var m Despawn
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", env.MessageType, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.MessageType)
	}
}
