package character

import "github.com/go-gl/mathgl/mgl64"

// Tuning holds every gameplay constant of the avatar. It is loaded from the
// player prefab; keys missing there keep their DefaultTuning value.
type Tuning struct {
	GravityScale float64 `yaml:"gravity_scale"`
	SpawnOffset  float64 `yaml:"spawn_offset"`

	ArmourBaseWalk float64 `yaml:"armour_base_walk"`
	ArmourBaseJump float64 `yaml:"armour_base_jump"`
	HumanBaseWalk  float64 `yaml:"human_base_walk"`
	HumanMaxWalk   float64 `yaml:"human_max_walk"`
	HumanBaseJump  float64 `yaml:"human_base_jump"`
	HumanMaxJump   float64 `yaml:"human_max_jump"`
	MomentumStep   float64 `yaml:"momentum_step"`

	HorizontalPush float64 `yaml:"horizontal_push"`
	WallGravity    float64 `yaml:"wall_gravity"`

	ThrustAccel    float64 `yaml:"thrust_accel"`
	MaxFlyingSpeed float64 `yaml:"max_flying_speed"`

	LaserSpawnDelay      float64 `yaml:"laser_spawn_delay"`
	NukeChargeRate       float64 `yaml:"nuke_charge_rate"`
	NukeMaxCharge        float64 `yaml:"nuke_max_charge"`
	InvisibilityDuration float64 `yaml:"invisibility_duration"`
	CubeThrowSpeed       float64 `yaml:"cube_throw_speed"`

	CapsuleRadius      float64 `yaml:"capsule_radius"`
	CapsuleHalfHeight  float64 `yaml:"capsule_half_height"`
	WallDetectorRadius float64 `yaml:"wall_detector_radius"`
	SurfaceMargin      float64 `yaml:"surface_margin"`
	EyeHeight          float64 `yaml:"eye_height"`
	ViewOffset         float64 `yaml:"view_offset"`

	WidgetDelay        float64    `yaml:"widget_delay"`
	GunMuzzleOffset    mgl64.Vec3 `yaml:"gun_muzzle_offset,flow"`
	BiopadTraceRange   float64    `yaml:"biopad_trace_range"`
	DoorDetectionRange float64    `yaml:"door_detection_range"`
}

func DefaultTuning() Tuning {
	return Tuning{
		GravityScale:         1.75,
		SpawnOffset:          200,
		ArmourBaseWalk:       600,
		ArmourBaseJump:       420,
		HumanBaseWalk:        600,
		HumanMaxWalk:         1200,
		HumanBaseJump:        420,
		HumanMaxJump:         720,
		MomentumStep:         1,
		HorizontalPush:       600,
		WallGravity:          0.3,
		ThrustAccel:          3000,
		MaxFlyingSpeed:       4000,
		LaserSpawnDelay:      0.05,
		NukeChargeRate:       10,
		NukeMaxCharge:        30000,
		InvisibilityDuration: 180,
		CubeThrowSpeed:       1000,
		CapsuleRadius:        55,
		CapsuleHalfHeight:    96,
		WallDetectorRadius:   57,
		SurfaceMargin:        10,
		EyeHeight:            64,
		ViewOffset:           100,
		WidgetDelay:          0.5,
		GunMuzzleOffset:      mgl64.Vec3{100, 0, 10},
		BiopadTraceRange:     200,
		DoorDetectionRange:   1000,
	}
}

// momentumRatio maps a walk speed into 0..1 across the human speed band.
func (t Tuning) momentumRatio(speed float64) float64 {
	band := t.HumanMaxWalk - t.HumanBaseWalk
	if band <= 0 {
		return 0
	}
	r := (speed - t.HumanBaseWalk) / band
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
