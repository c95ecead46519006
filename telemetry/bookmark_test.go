package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 100), PreyCount: 100, PredCount: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, PreyCount: 50, PredCount: 10})
	if !hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("expected prey_crash bookmark")
	}

	// The peak resets to the crash level, so holding steady does not re-trigger
	bookmarks = bd.Check(WindowStats{WindowEndTick: 600, PreyCount: 50, PredCount: 10})
	if hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("prey_crash should not repeat without a new peak")
	}
}

func TestBookmarkDetector_SmallDropIsNotCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 100, PreyCount: 20, PredCount: 10})

	// 40% drop but only 8 agents
	bookmarks := bd.Check(WindowStats{WindowEndTick: 200, PreyCount: 12, PredCount: 10})
	if hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("drop below the absolute minimum should not be a crash")
	}
}

func TestBookmarkDetector_PredatorRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 100), PreyCount: 100, PredCount: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, PreyCount: 100, PredCount: 10})
	if !hasBookmark(bookmarks, BookmarkPredatorRecovery) {
		t.Error("expected predator_recovery bookmark")
	}
}

func TestBookmarkDetector_NoRecoveryFromExtinction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 100, PreyCount: 100, PredCount: 0})
	bookmarks := bd.Check(WindowStats{WindowEndTick: 200, PreyCount: 100, PredCount: 0})
	if hasBookmark(bookmarks, BookmarkPredatorRecovery) {
		t.Error("zero predators is not a recovery")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 100, PreyCount: 40, PredCount: 5}); len(bms) != 0 {
		t.Fatalf("unexpected bookmarks %v", bms)
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 200, PreyCount: 0, PredCount: 5})
	if !hasBookmark(bookmarks, BookmarkExtinction) {
		t.Fatal("expected extinction bookmark for prey")
	}

	bookmarks = bd.Check(WindowStats{WindowEndTick: 300, PreyCount: 0, PredCount: 0})
	n := 0
	for _, bm := range bookmarks {
		if bm.Type == BookmarkExtinction {
			n++
		}
	}
	if n != 1 {
		t.Errorf("got %d extinction bookmarks, want 1 (predators only)", n)
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := -1
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 100), PreyCount: 100, PredCount: 20})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			if fired >= 0 {
				t.Fatalf("stable_ecosystem fired twice (windows %d and %d)", fired, i)
			}
			fired = i
		}
	}

	// First check has no history, the next three fill the lookback,
	// then five steady windows are needed.
	if fired != 8 {
		t.Errorf("stable_ecosystem fired at window %d, want 8", fired)
	}
}

func TestBookmarkDetector_UnstableResetsCount(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 20; i++ {
		prey := 100
		if i%2 == 0 {
			prey = 300
		}
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 100), PreyCount: prey, PredCount: 20})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			t.Fatalf("oscillating prey should not be stable (window %d)", i)
		}
	}
}
