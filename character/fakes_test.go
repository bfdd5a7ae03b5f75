package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

type fakeQueries struct {
	overlaps   []ecs.TraceHit
	overlapFn  func(radius float64) []ecs.TraceHit
	trace      ecs.TraceHit
	traceOK    bool
	overlapCnt int
}

func (q *fakeQueries) OverlapCapsule(_ mgl64.Vec3, radius, _ float64, _ []ecs.Entity) []ecs.TraceHit {
	q.overlapCnt++
	if q.overlapFn != nil {
		return q.overlapFn(radius)
	}
	return q.overlaps
}

func (q *fakeQueries) LineTrace(_, _ mgl64.Vec3, _ []ecs.Entity) (ecs.TraceHit, bool) {
	return q.trace, q.traceOK
}

type fakeHUD struct {
	invisibility []bool
	labels       []string
	charge       []float64
	radar        []bool
	fuel         []bool
}

func (h *fakeHUD) ShowInvisibility(v bool)    { h.invisibility = append(h.invisibility, v) }
func (h *fakeHUD) SetFuelPercent(float64)     {}
func (h *fakeHUD) SetChargePercent(p float64) { h.charge = append(h.charge, p) }
func (h *fakeHUD) EquipmentChanged(l string)  { h.labels = append(h.labels, l) }
func (h *fakeHUD) SetRadarVisible(v bool)     { h.radar = append(h.radar, v) }
func (h *fakeHUD) SetFuelVisible(v bool)      { h.fuel = append(h.fuel, v) }

type fakeProjectile struct {
	req       SpawnRequest
	inherited mgl64.Vec3
}

func (p *fakeProjectile) AddVelocity(v mgl64.Vec3) { p.inherited = p.inherited.Add(v) }

type fakeHeld struct {
	thrown    bool
	destroyed bool
	velocity  mgl64.Vec3
}

func (h *fakeHeld) Throw(_ mgl64.Vec3, _ common.Rotator, v mgl64.Vec3) {
	h.thrown = true
	h.velocity = v
}

func (h *fakeHeld) Destroy() { h.destroyed = true }

type fakeSpawner struct {
	spawned []*fakeProjectile
	held    []*fakeHeld
}

func (s *fakeSpawner) Spawn(req SpawnRequest) (Projectile, bool) {
	p := &fakeProjectile{req: req}
	s.spawned = append(s.spawned, p)
	return p, true
}

func (s *fakeSpawner) Hold(component.ProjectileKind, mgl64.Vec3) (HeldObject, bool) {
	h := &fakeHeld{}
	s.held = append(s.held, h)
	return h, true
}

type fakeSockets struct{ gun bool }

func (s *fakeSockets) SetGunVisible(v bool) { s.gun = v }

type fakeClock struct{ now float64 }

func (c *fakeClock) Time() float64 { return c.now }

type fakeFuel struct{ states []bool }

func (f *fakeFuel) UpdateFlightState(v bool) { f.states = append(f.states, v) }

type fakeDoors struct {
	doors      map[ecs.Entity]bool
	interacted []ecs.Entity
}

func (d *fakeDoors) Interact(e ecs.Entity) bool {
	if !d.doors[e] {
		return false
	}
	d.interacted = append(d.interacted, e)
	return true
}

type rig struct {
	c       *Character
	body    *component.CharacterBody
	queries *fakeQueries
	hud     *fakeHUD
	spawner *fakeSpawner
	sockets *fakeSockets
	clock   *fakeClock
	timers  *ecs.Timers
	fuel    *fakeFuel
	doors   *fakeDoors
	walls   map[ecs.Entity]bool
}

const testSelf = ecs.Entity(1)

func newRig(t interface{ Fatalf(string, ...any) }, tuning Tuning) *rig {
	r := &rig{
		body:    &component.CharacterBody{Pos: mgl64.Vec3{0, 0, 96}},
		queries: &fakeQueries{},
		hud:     &fakeHUD{},
		spawner: &fakeSpawner{},
		sockets: &fakeSockets{},
		clock:   &fakeClock{},
		timers:  &ecs.Timers{},
		fuel:    &fakeFuel{},
		doors:   &fakeDoors{doors: map[ecs.Entity]bool{}},
		walls:   map[ecs.Entity]bool{},
	}
	c, err := New(tuning, Collaborators{
		Self:         testSelf,
		Body:         r.body,
		Queries:      r.queries,
		HUD:          r.hud,
		Spawner:      r.spawner,
		Sockets:      r.sockets,
		Timers:       r.timers,
		Clock:        r.clock,
		Doors:        r.doors,
		Fuel:         r.fuel,
		WallRunnable: func(e ecs.Entity) bool { return r.walls[e] },
		Describe: func(e ecs.Entity) (string, mgl64.Vec3, bool) {
			return "actor-" + e.String(), mgl64.Vec3{100, 0, 96}, true
		},
	})
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	r.c = c
	return r
}

// armoured swaps into the suit and selects ability a.
func (r *rig) armoured(a ArmouredAbility) {
	if r.c.Mode() != ModeArmoured {
		r.c.SwapArmour()
	}
	for r.c.ArmouredAbility() != a {
		r.c.Cycle(1)
	}
}

func (r *rig) human(a HumanAbility) {
	if r.c.Mode() != ModeHuman {
		r.c.SwapArmour()
	}
	for r.c.HumanAbility() != a {
		r.c.Cycle(1)
	}
}
