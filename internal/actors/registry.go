// Package actors tracks the actors announced on the actor feed.
package actors

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/network/messages"
)

// Actor is one tracked actor.
type Actor struct {
	ID          string
	Type        string
	Position    mgl32.Vec3
	Destination mgl32.Vec3
	Moving      bool
}

// Registry holds actors by id. It is not safe for concurrent use; the
// render loop owns it together with the network client.
type Registry struct {
	actors map[string]*Actor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actors: make(map[string]*Actor)}
}

// Apply updates the registry from one message.
func (r *Registry) Apply(msg messages.Message) {
	switch m := msg.(type) {
	case messages.Spawn:
		pos := m.Position.Vec3()
		r.actors[m.ID] = &Actor{
			ID:          m.ID,
			Type:        m.ActorType,
			Position:    pos,
			Destination: pos,
		}

	case messages.Move:
		a, ok := r.actors[m.ID]
		if !ok {
			// Joined mid-move; all we know is where it is heading
			dest := m.Dest.Vec3()
			r.actors[m.ID] = &Actor{ID: m.ID, Position: dest, Destination: dest}
			return
		}
		a.Position = m.Orig.Vec3()
		a.Destination = m.Dest.Vec3()
		a.Moving = a.Position != a.Destination

	case messages.Despawn:
		delete(r.actors, m.ID)
	}
}

// ApplyAll applies msgs in order.
func (r *Registry) ApplyAll(msgs []messages.Message) {
	for _, m := range msgs {
		r.Apply(m)
	}
}

// Get returns a copy of the actor with the given id.
func (r *Registry) Get(id string) (Actor, bool) {
	a, ok := r.actors[id]
	if !ok {
		return Actor{}, false
	}
	return *a, true
}

// Len returns the number of tracked actors.
func (r *Registry) Len() int {
	return len(r.actors)
}

// Clear removes every actor, e.g. after a disconnect.
func (r *Registry) Clear() {
	clear(r.actors)
}

// Snapshot returns copies of all actors sorted by id.
func (r *Registry) Snapshot() []Actor {
	out := make([]Actor, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
