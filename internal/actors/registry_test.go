package actors

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/network/messages"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()

	r.Apply(messages.Spawn{ID: "enemy1", ActorType: "goblin", Position: messages.Vector3{X: 5, Z: 5}})
	a, ok := r.Get("enemy1")
	if !ok {
		t.Fatal("expected actor after spawn")
	}
	if a.Type != "goblin" || a.Position != (mgl32.Vec3{5, 0, 5}) || a.Moving {
		t.Errorf("unexpected actor after spawn: %+v", a)
	}

	r.Apply(messages.Move{ID: "enemy1", Orig: messages.Vector3{X: 5, Z: 5}, Dest: messages.Vector3{X: 10, Z: 10}})
	a, _ = r.Get("enemy1")
	if a.Position != (mgl32.Vec3{5, 0, 5}) || a.Destination != (mgl32.Vec3{10, 0, 10}) {
		t.Errorf("unexpected actor after move: %+v", a)
	}
	if !a.Moving {
		t.Error("expected actor to be moving")
	}
	if a.Type != "goblin" {
		t.Error("move should keep the actor type")
	}

	r.Apply(messages.Despawn{ID: "enemy1"})
	if _, ok := r.Get("enemy1"); ok {
		t.Error("expected actor gone after despawn")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistry_MoveUnknownCreatesAtDest(t *testing.T) {
	r := NewRegistry()
	r.Apply(messages.Move{ID: "ghost", Orig: messages.Vector3{X: 1}, Dest: messages.Vector3{X: 7, Y: 1, Z: 3}})

	a, ok := r.Get("ghost")
	if !ok {
		t.Fatal("expected actor to be created")
	}
	want := mgl32.Vec3{7, 1, 3}
	if a.Position != want || a.Destination != want {
		t.Errorf("expected actor at %v, got %+v", want, a)
	}
}

func TestRegistry_DespawnUnknown(t *testing.T) {
	r := NewRegistry()
	r.Apply(messages.Despawn{ID: "nobody"})
	if r.Len() != 0 {
		t.Error("despawning an unknown actor should be a no-op")
	}
}

func TestRegistry_RespawnReplaces(t *testing.T) {
	r := NewRegistry()
	r.ApplyAll([]messages.Message{
		messages.Spawn{ID: "a", ActorType: "poring"},
		messages.Spawn{ID: "a", ActorType: "drops", Position: messages.Vector3{Y: 2}},
	})

	a, _ := r.Get("a")
	if a.Type != "drops" || a.Position.Y() != 2 {
		t.Errorf("expected second spawn to replace the first, got %+v", a)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 actor, got %d", r.Len())
	}
}

func TestRegistry_SnapshotSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		r.Apply(messages.Spawn{ID: id})
	}

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 actors, got %d", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].ID != want {
			t.Errorf("index %d: expected %s, got %s", i, want, snap[i].ID)
		}
	}

	// Snapshot entries are copies
	snap[0].Type = "changed"
	if a, _ := r.Get("a"); a.Type == "changed" {
		t.Error("snapshot aliased registry storage")
	}

	r.Clear()
	if r.Len() != 0 {
		t.Error("expected Clear to empty the registry")
	}
}
