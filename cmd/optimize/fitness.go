package main

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/telemetry"
)

// Functional extinction: a species that stays below minViablePop for
// graceTicks consecutive ticks counts as gone.
const (
	minViablePop = 3
	graceTicks   = 200
	warmupTicks  = 50
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []uint64
	baseConfig *config.Config
	parallel   int
}

// EvalResult is the outcome of one parameter vector averaged over seeds.
type EvalResult struct {
	Fitness       float64 // lower is better
	SurvivalTicks float64 // mean ticks until extinction, capped at maxTicks
	Quality       float64 // mean ecosystem quality in [0, 1]
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32
	windows       []telemetry.WindowStats
}

// NewFitnessEvaluator creates a new evaluator that runs at most parallel
// seeds at once.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []uint64, baseCfg *config.Config, parallel int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		parallel:   max(1, parallel),
	}
}

// Config returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) Config(x []float64) *config.Config {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	return cfg
}

// Evaluate runs every seed with parameters x and averages the results.
// Fitness is -(survival × (1 + 0.2 × quality)): survival dominates, quality
// separates configs that survive equally long.
func (fe *FitnessEvaluator) Evaluate(x []float64) (EvalResult, error) {
	cfg := fe.Config(x)
	if err := cfg.Validate(); err != nil {
		return EvalResult{}, err
	}

	results := make([]runResult, len(fe.seeds))
	var eg errgroup.Group
	eg.SetLimit(fe.parallel)
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSimulation(cfg, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return EvalResult{}, err
	}

	var out EvalResult
	for _, r := range results {
		survival := float64(r.survivalTicks)
		quality := computeQuality(r.windows)
		out.Fitness += -(survival * (1.0 + 0.2*quality))
		out.SurvivalTicks += survival
		out.Quality += quality
	}
	n := float64(len(results))
	out.Fitness /= n
	out.SurvivalTicks /= n
	out.Quality /= n
	return out, nil
}

// runSimulation executes a single headless run until functional extinction
// or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed uint64) (runResult, error) {
	var r runResult
	g := game.NewGame(game.Options{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(s telemetry.WindowStats) {
			r.windows = append(r.windows, s)
		},
	})
	if err := g.Seed(cfg.Population.InitialPredators, cfg.Population.InitialPrey); err != nil {
		return r, err
	}

	var predBelow, preyBelow int32
	for g.Tick() < fe.maxTicks {
		g.Update()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		pred, prey := g.PredatorCount(), g.PreyCount()
		if pred == 0 || prey == 0 {
			r.survivalTicks = tick
			return r, nil
		}

		predBelow = belowCount(predBelow, pred)
		preyBelow = belowCount(preyBelow, prey)
		if predBelow >= graceTicks || preyBelow >= graceTicks {
			r.survivalTicks = tick
			return r, nil
		}
	}

	r.survivalTicks = fe.maxTicks
	return r, nil
}

func belowCount(run int32, pop int) int32 {
	if pop < minViablePop {
		return run + 1
	}
	return 0
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.30
	qualityWeightHunting   = 0.30

	qualityWarmupWindows = 3 // skip first N windows
	qualityTargetRatio   = 5 // prey per predator
	qualityTargetKill    = 0.5
)

// computeQuality scores a run's window series in [0, 1].
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, huntSum float64
	var huntCount int
	preyCounts := make([]float64, 0, len(windows))
	predCounts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.PreyCount < minViablePop || w.PredCount < minViablePop {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		logErr := math.Log(float64(w.PreyCount) / float64(w.PredCount) / qualityTargetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		if w.Hunts > 0 {
			huntSum += math.Exp(-math.Pow((w.KillRate-qualityTargetKill)/0.25, 2))
			huntCount++
		}
	}

	if len(preyCounts) == 0 {
		return 0
	}

	ratioScore := ratioSum / float64(len(preyCounts))

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey, cvPred := cv(preyCounts), cv(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	huntScore := 0.0
	if huntCount > 0 {
		huntScore = huntSum / float64(huntCount)
	}

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightHunting*huntScore
	return max(0, min(quality, 1))
}

// cv computes the population coefficient of variation (std/mean).
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	if mean == 0 {
		return 0
	}
	return math.Sqrt(variance) / mean
}
