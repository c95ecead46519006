package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/torus/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Detection thresholds.
const (
	recoveryLowWater  = 3    // predator count that counts as near-extinct
	recoveryFactor    = 3    // growth over the low-water mark that counts as recovery
	recoveryMinCount  = 6    // recovered population must reach at least this
	crashDropFraction = 0.30 // prey drop from peak that counts as a crash
	crashMinDrop      = 10   // and at least this many agents
	stableWindows     = 5    // consecutive steady windows before a stable bookmark
	stableLookback    = 4    // windows used for the variance estimate
	stableMaxCV2      = 0.04 // squared coefficient of variation (CV < 0.2)
	stableMinPrey     = 10
	stableMinPred     = 3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the population history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	recentPredMin      int // minimum predator count since the last recovery
	recentPreyPeak     int // peak prey count since the last crash
	stableWindowsCount int // consecutive windows with steady populations
	extinct            [components.NumSpecies]bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	historySize = max(historySize, stableLookback+1)
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		recentPredMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if bd.recentPredMin < 0 || stats.PredCount < bd.recentPredMin {
		bd.recentPredMin = stats.PredCount
	}
	bd.recentPreyPeak = max(bd.recentPreyPeak, stats.PreyCount)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent history entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = len(bd.history)
	}
	n = min(n, size)
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + len(bd.history)) % len(bd.history)
		out = append(out, bd.history[idx])
	}
	return out
}

// checkExtinction fires when a species count first reaches zero.
// Each species is reported at most once.
func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark
	counts := [components.NumSpecies]int{stats.PredCount, stats.PreyCount}
	for s, n := range counts {
		if n > 0 || bd.extinct[s] {
			continue
		}
		bd.extinct[s] = true
		out = append(out, Bookmark{
			Type:        BookmarkExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%s population went extinct", components.Species(s)),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin < 1 || bd.recentPredMin > recoveryLowWater {
		return nil
	}

	if stats.PredCount >= bd.recentPredMin*recoveryFactor && stats.PredCount >= recoveryMinCount {
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.PredCount

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.PredCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if drop > crashDropFraction && stats.PreyCount < bd.recentPreyPeak-crashMinDrop {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.PreyCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.PreyCount < stableMinPrey || stats.PredCount < stableMinPred {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.recent(stableLookback)
	if len(history) < stableLookback {
		return nil
	}

	prey := make([]float64, len(history))
	pred := make([]float64, len(history))
	for i, h := range history {
		prey[i] = float64(h.PreyCount)
		pred[i] = float64(h.PredCount)
	}

	if squaredCV(prey) < stableMaxCV2 && squaredCV(pred) < stableMaxCV2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	// Trigger exactly once per steady stretch
	if bd.stableWindowsCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over %d+ windows", stats.PreyCount, stats.PredCount, stableWindows),
		}
	}
	return nil
}

// squaredCV returns the population variance over the squared mean.
func squaredCV(values []float64) float64 {
	mean, variance := stat.PopMeanVariance(values, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
