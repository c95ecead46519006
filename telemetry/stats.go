package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	PredCount int `csv:"pred"`
	PreyCount int `csv:"prey"`

	// Events during window
	PredBirths int `csv:"pred_births"`
	PreyBirths int `csv:"prey_births"`
	PredDeaths int `csv:"pred_deaths"`
	PreyDeaths int `csv:"prey_deaths"`

	// Deaths by cause
	DeathsContest  int `csv:"deaths_contest"`
	DeathsEaten    int `csv:"deaths_eaten"`
	DeathsRepelled int `csv:"deaths_repelled"`
	DeathsCulled   int `csv:"deaths_culled"`

	// Conflicts
	Hunts       int     `csv:"hunts"`
	Kills       int     `csv:"kills"`
	Repels      int     `csv:"repels"`
	KillRate    float64 `csv:"kill_rate"`
	Contests    int     `csv:"contests"`
	Starvations int     `csv:"starvations"`

	// Strength distribution (sampled at window end)
	PredStrengthMean float64 `csv:"pred_strength_mean"`
	PredStrengthStd  float64 `csv:"pred_strength_std"`
	PredStrengthP10  float64 `csv:"pred_strength_p10"`
	PredStrengthP50  float64 `csv:"pred_strength_p50"`
	PredStrengthP90  float64 `csv:"pred_strength_p90"`

	PreyStrengthMean float64 `csv:"prey_strength_mean"`
	PreyStrengthStd  float64 `csv:"prey_strength_std"`
	PreyStrengthP10  float64 `csv:"prey_strength_p10"`
	PreyStrengthP50  float64 `csv:"prey_strength_p50"`
	PreyStrengthP90  float64 `csv:"prey_strength_p90"`

	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PreyEnergyMean float64 `csv:"prey_energy_mean"`

	// Mean lifespan in ticks of agents that died during the window
	PredLifespanMean float64 `csv:"pred_lifespan_mean"`
	PreyLifespanMean float64 `csv:"prey_lifespan_mean"`

	PredMaxGeneration uint32 `csv:"pred_max_generation"`
	PreyMaxGeneration uint32 `csv:"prey_max_generation"`
}

// Distribution summarizes a sample of values.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Percentile returns the smallest value whose empirical CDF reaches p.
// sorted must be in ascending order. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean, sample standard deviation and
// percentiles. values is not modified.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("pred", s.PredCount),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("deaths_contest", s.DeathsContest),
		slog.Int("deaths_eaten", s.DeathsEaten),
		slog.Int("deaths_repelled", s.DeathsRepelled),
		slog.Int("deaths_culled", s.DeathsCulled),
		slog.Int("hunts", s.Hunts),
		slog.Int("kills", s.Kills),
		slog.Int("repels", s.Repels),
		slog.Float64("kill_rate", s.KillRate),
		slog.Int("contests", s.Contests),
		slog.Int("starvations", s.Starvations),
		slog.Float64("pred_strength_mean", s.PredStrengthMean),
		slog.Float64("pred_strength_std", s.PredStrengthStd),
		slog.Float64("pred_strength_p50", s.PredStrengthP50),
		slog.Float64("prey_strength_mean", s.PreyStrengthMean),
		slog.Float64("prey_strength_std", s.PreyStrengthStd),
		slog.Float64("prey_strength_p50", s.PreyStrengthP50),
		slog.Float64("pred_lifespan_mean", s.PredLifespanMean),
		slog.Float64("prey_lifespan_mean", s.PreyLifespanMean),
		slog.Int("pred_max_generation", int(s.PredMaxGeneration)),
		slog.Int("prey_max_generation", int(s.PreyMaxGeneration)),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"pred", s.PredCount,
		"prey", s.PreyCount,
		"pred_births", s.PredBirths,
		"prey_births", s.PreyBirths,
		"pred_deaths", s.PredDeaths,
		"prey_deaths", s.PreyDeaths,
		"hunts", s.Hunts,
		"kills", s.Kills,
		"kill_rate", s.KillRate,
		"contests", s.Contests,
		"starvations", s.Starvations,
		"culled", s.DeathsCulled,
		"pred_strength_mean", s.PredStrengthMean,
		"prey_strength_mean", s.PreyStrengthMean,
		"pred_max_generation", s.PredMaxGeneration,
		"prey_max_generation", s.PreyMaxGeneration,
	)
}
