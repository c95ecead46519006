// Package main provides CMA-ES optimization for torus simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/torus/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults mirror the embedded config defaults.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Predator
			{Name: "pred_base_strength", Path: "species.predator.base_strength", Min: 500, Max: 4000, Default: 2000},
			{Name: "pred_mutation_sigma", Path: "species.predator.mutation_sigma", Min: 0, Max: 100, Default: 20},
			{Name: "pred_repro_threshold", Path: "species.predator.repro_threshold", Min: 200, Max: 3000, Default: 1000},
			// Prey (base strength stays above the default death threshold)
			{Name: "prey_base_strength", Path: "species.prey.base_strength", Min: 55, Max: 400, Default: 100},
			{Name: "prey_mutation_sigma", Path: "species.prey.mutation_sigma", Min: 0, Max: 10, Default: 1},
			{Name: "prey_repro_threshold", Path: "species.prey.repro_threshold", Min: 100, Max: 2000, Default: 500},
			// Interaction
			{Name: "contest_bonus", Path: "interaction.contest_bonus", Min: 0, Max: 0.3, Default: 0.05},
			{Name: "prey_defense_bonus", Path: "interaction.prey_defense_bonus", Min: 0, Max: 0.2, Default: 0},
			// Survival (death_threshold locked)
			{Name: "predation_samples", Path: "survival.predation_samples", Min: 1, Max: 8, Default: 4, Integer: true},
			{Name: "starvation_decay", Path: "survival.starvation_decay", Min: 0.001, Max: 0.05, Default: 0.01},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := max(spec.Min, min(v[i], spec.Max))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Species.Predator.BaseStrength = c[0]
	cfg.Species.Predator.MutationSigma = c[1]
	cfg.Species.Predator.ReproThreshold = c[2]

	cfg.Species.Prey.BaseStrength = c[3]
	cfg.Species.Prey.MutationSigma = c[4]
	cfg.Species.Prey.ReproThreshold = c[5]

	cfg.Interaction.ContestBonus = c[6]
	cfg.Interaction.PreyDefenseBonus = c[7]

	cfg.Survival.PredationSamples = int(c[8])
	cfg.Survival.StarvationDecay = c[9]

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Species.Predator.BaseStrength,
		cfg.Species.Predator.MutationSigma,
		cfg.Species.Predator.ReproThreshold,
		cfg.Species.Prey.BaseStrength,
		cfg.Species.Prey.MutationSigma,
		cfg.Species.Prey.ReproThreshold,
		cfg.Interaction.ContestBonus,
		cfg.Interaction.PreyDefenseBonus,
		float64(cfg.Survival.PredationSamples),
		cfg.Survival.StarvationDecay,
	}
}

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval               int     `csv:"eval"`
	Fitness            float64 `csv:"fitness"`
	SurvivalTicks      float64 `csv:"survival_ticks"`
	Quality            float64 `csv:"quality"`
	PredBaseStrength   float64 `csv:"pred_base_strength"`
	PredMutationSigma  float64 `csv:"pred_mutation_sigma"`
	PredReproThreshold float64 `csv:"pred_repro_threshold"`
	PreyBaseStrength   float64 `csv:"prey_base_strength"`
	PreyMutationSigma  float64 `csv:"prey_mutation_sigma"`
	PreyReproThreshold float64 `csv:"prey_repro_threshold"`
	ContestBonus       float64 `csv:"contest_bonus"`
	PreyDefenseBonus   float64 `csv:"prey_defense_bonus"`
	PredationSamples   int     `csv:"predation_samples"`
	StarvationDecay    float64 `csv:"starvation_decay"`
}

// newEvalRecord builds a log row from the config an evaluation actually ran.
func newEvalRecord(eval int, r EvalResult, cfg *config.Config) evalRecord {
	return evalRecord{
		Eval:               eval,
		Fitness:            r.Fitness,
		SurvivalTicks:      r.SurvivalTicks,
		Quality:            r.Quality,
		PredBaseStrength:   cfg.Species.Predator.BaseStrength,
		PredMutationSigma:  cfg.Species.Predator.MutationSigma,
		PredReproThreshold: cfg.Species.Predator.ReproThreshold,
		PreyBaseStrength:   cfg.Species.Prey.BaseStrength,
		PreyMutationSigma:  cfg.Species.Prey.MutationSigma,
		PreyReproThreshold: cfg.Species.Prey.ReproThreshold,
		ContestBonus:       cfg.Interaction.ContestBonus,
		PreyDefenseBonus:   cfg.Interaction.PreyDefenseBonus,
		PredationSamples:   cfg.Survival.PredationSamples,
		StarvationDecay:    cfg.Survival.StarvationDecay,
	}
}
