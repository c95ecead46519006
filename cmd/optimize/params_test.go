package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/torus/config"
)

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config default %v, param default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		if i%2 == 0 {
			v[i] = spec.Min - 1
		} else {
			v[i] = spec.Max + 1
		}
	}
	v[8] = 3.6 // predation_samples

	c := pv.Clamp(v)
	for i, spec := range pv.Specs {
		if c[i] < spec.Min || c[i] > spec.Max {
			t.Errorf("%s = %v outside [%v, %v]", spec.Name, c[i], spec.Min, spec.Max)
		}
	}
	if c[8] != 4 {
		t.Errorf("predation_samples = %v, want rounded 4", c[8])
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	v := pv.Denormalize([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0})

	cfg := config.Default()
	pv.ApplyToConfig(cfg, v)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("applied config invalid: %v", err)
	}
	got := pv.ExtractFromConfig(cfg)
	want := pv.Clamp(v)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", spec.Name, got[i], want[i])
		}
	}
	if cfg.Derived.SpeciesTable[1].BaseStrength != cfg.Species.Prey.BaseStrength {
		t.Error("ApplyToConfig should refresh derived values")
	}
}
