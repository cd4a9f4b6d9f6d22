package config

import (
	"sort"

	"github.com/san-kum/motionlab/internal/session"
)

// Preset is a named set of control values for one screen.
type Preset struct {
	View        session.View
	Description string
	Inputs      session.Inputs
}

var Presets = map[session.View]map[string]*Preset{
	session.FreeFall: {
		"short": {
			View: session.FreeFall, Description: "a dropped pen",
			Inputs: session.Inputs{FallTime: 0.5},
		},
		"second": {
			View: session.FreeFall, Description: "one second of fall",
			Inputs: session.Inputs{FallTime: 1.0},
		},
		"long": {
			View: session.FreeFall, Description: "longest slider setting",
			Inputs: session.Inputs{FallTime: 10.0},
		},
	},
	session.LinearMotion: {
		"walk": {
			View: session.LinearMotion, Description: "walking pace for a minute",
			Inputs: session.Inputs{Linear: session.LinearInputs{InitialPosition: 0, Velocity: 1.4, Time: 60}},
		},
		"reverse": {
			View: session.LinearMotion, Description: "backing up from 10 m",
			Inputs: session.Inputs{Linear: session.LinearInputs{InitialPosition: 10, Velocity: -2, Time: 3}},
		},
	},
	session.ProjectileMotion: {
		"flat": {
			View: session.ProjectileMotion, Description: "horizontal launch",
			Inputs: session.Inputs{Projectile: session.ProjectileInputs{InitialVelocity: 20, Angle: 0}},
		},
		"max-range": {
			View: session.ProjectileMotion, Description: "45 degree launch",
			Inputs: session.Inputs{Projectile: session.ProjectileInputs{InitialVelocity: 20, Angle: 45}},
		},
		"low": {
			View: session.ProjectileMotion, Description: "same range as steep",
			Inputs: session.Inputs{Projectile: session.ProjectileInputs{InitialVelocity: 20, Angle: 30}},
		},
		"steep": {
			View: session.ProjectileMotion, Description: "same range as low",
			Inputs: session.Inputs{Projectile: session.ProjectileInputs{InitialVelocity: 20, Angle: 60}},
		},
		"lob": {
			View: session.ProjectileMotion, Description: "near vertical",
			Inputs: session.Inputs{Projectile: session.ProjectileInputs{InitialVelocity: 15, Angle: 80}},
		},
	},
}

func GetPreset(view session.View, preset string) *Preset {
	viewPresets, ok := Presets[view]
	if !ok {
		return nil
	}
	p, ok := viewPresets[preset]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns preset names for a view in sorted order.
func ListPresets(view session.View) []string {
	viewPresets, ok := Presets[view]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(viewPresets))
	for name := range viewPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's values for its own screen into in.
func (p *Preset) Apply(in *session.Inputs) {
	switch p.View {
	case session.FreeFall:
		in.FallTime = p.Inputs.FallTime
	case session.LinearMotion:
		in.Linear = p.Inputs.Linear
	case session.ProjectileMotion:
		in.Projectile = p.Inputs.Projectile
	}
}
