package sensor

import "github.com/milk9111/gravityfps/ecs"

// MissileRegistry tracks the homing missiles alive in a session so their
// lock-on sweeps can ignore each other. It belongs to the session, not to
// any missile.
type MissileRegistry struct {
	alive   func(ecs.Entity) bool
	entries []ecs.Entity
}

// NewMissileRegistry creates an empty registry. alive, when set, is used to
// prune entries whose missile no longer exists.
func NewMissileRegistry(alive func(ecs.Entity) bool) *MissileRegistry {
	return &MissileRegistry{alive: alive}
}

func (r *MissileRegistry) Register(e ecs.Entity) {
	if r == nil || contains(r.entries, e) {
		return
	}
	r.entries = append(r.entries, e)
}

// Unregister removes e. It reports whether e was registered.
func (r *MissileRegistry) Unregister(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	for i, x := range r.entries {
		if x == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the live registered missiles, dropping dead ones.
func (r *MissileRegistry) Active() []ecs.Entity {
	if r == nil {
		return nil
	}
	if r.alive != nil {
		kept := r.entries[:0]
		for _, e := range r.entries {
			if r.alive(e) {
				kept = append(kept, e)
			}
		}
		r.entries = kept
	}
	out := make([]ecs.Entity, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *MissileRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
