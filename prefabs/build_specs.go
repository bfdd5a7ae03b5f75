package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
	// Tuning carries gameplay constants for prefabs that drive a character.
	Tuning map[string]any `yaml:"tuning"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// DecodeOver decodes raw on top of base, so keys raw omits keep base's
// values.
func DecodeOver[T any](base T, raw any) (T, error) {
	if raw == nil {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

type ColliderComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfX      float64 `yaml:"half_x"`
	HalfY      float64 `yaml:"half_y"`
	HalfHeight float64 `yaml:"half_height"`
	Static     bool    `yaml:"static"`
	Sensor     bool    `yaml:"sensor"`
}

type CharacterBodyComponentSpec struct {
	Acceleration float64 `yaml:"acceleration"`
	BrakingDecel float64 `yaml:"braking_decel"`
	AirControl   float64 `yaml:"air_control"`
}

type FuelComponentSpec struct {
	Max  float64 `yaml:"max"`
	Cost float64 `yaml:"cost"`
}

type RadarComponentSpec struct {
	Range        float64 `yaml:"range"`
	WidgetRadius float64 `yaml:"widget_radius"`
	Interval     float64 `yaml:"interval"`
}

type ProjectileComponentSpec struct {
	Kind         string  `yaml:"kind"`
	Speed        float64 `yaml:"speed"`
	Radius       float64 `yaml:"radius"`
	ImpulseScale float64 `yaml:"impulse_scale"`
}

type LifetimeComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type HomingComponentSpec struct {
	Accel    float64 `yaml:"accel"`
	MaxSpeed float64 `yaml:"max_speed"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type BlastComponentSpec struct {
	Radius  float64 `yaml:"radius"`
	Impulse float64 `yaml:"impulse"`
}

type CubeComponentSpec struct {
	Delay float64 `yaml:"delay"`
}

type PropComponentSpec struct {
	Mass    float64 `yaml:"mass"`
	Damping float64 `yaml:"damping"`
}

type PickupComponentSpec struct {
	Kind string `yaml:"kind"`
}

type DoorComponentSpec struct {
	Script string `yaml:"script"`
	Open   bool   `yaml:"open"`
}

type PressurePlateComponentSpec struct {
	Script string `yaml:"script"`
	Target string `yaml:"target"`
}
