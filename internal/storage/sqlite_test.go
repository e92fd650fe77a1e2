package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("klondike3", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("klondike3", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("klondike3", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("klondike1", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for klondike3
	scores, err := store.TopScores("klondike3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for klondike1
	klondike1Scores, err := store.TopScores("klondike1", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(klondike1Scores) != 1 {
		t.Errorf("Expected 1 klondike1 score, got %d", len(klondike1Scores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("klondike", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("klondike", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("klondike3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("klondike3", 100)
	store.SaveScore("klondike3", 300)
	store.SaveScore("klondike3", 200)

	high, err = store.HighScore("klondike3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("klondike3", 100)
	store.SaveScore("klondike3", 200)
	store.SaveScore("klondike1", 300)

	// Clear only klondike3 scores
	err = store.ClearScores("klondike3")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Klondike3 should be empty
	klondike3Scores, _ := store.TopScores("klondike3", 10)
	if len(klondike3Scores) != 0 {
		t.Errorf("Expected 0 klondike3 scores after clear, got %d", len(klondike3Scores))
	}

	// Klondike1 should still have scores
	klondike1Scores, _ := store.TopScores("klondike1", 10)
	if len(klondike1Scores) != 1 {
		t.Errorf("Klondike1 scores should not be affected by clearing klondike3")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenMemory(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("klondike", 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	high, err := store.HighScore("klondike")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 10 {
		t.Errorf("HighScore() = %d, expected 10", high)
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult(GameResult{
		GameID:      "klondike3",
		Seed:        42,
		CardsToDraw: 3,
		Won:         true,
		Moves:       118,
		Score:       1020,
		Duration:    315,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveResult() id = %q, expected a UUID", id)
	}

	r, err := store.ResultByID(id)
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("ResultByID() = nil, expected the saved result")
	}
	if r.GameID != "klondike3" || r.Seed != 42 || r.CardsToDraw != 3 || !r.Won ||
		r.Moves != 118 || r.Score != 1020 || r.Duration != 315 {
		t.Errorf("ResultByID() = %+v", *r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreSaveResultKeepsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult(GameResult{ID: "fixed-id", GameID: "klondike", Seed: 1, CardsToDraw: 1})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveResult() id = %q, expected fixed-id", id)
	}

	if _, err := store.SaveResult(GameResult{ID: "fixed-id", GameID: "klondike"}); err == nil {
		t.Error("SaveResult() with a duplicate id should fail")
	}
}

func TestStoreResultByIDMissing(t *testing.T) {
	store := openTestStore(t)

	r, err := store.ResultByID("nope")
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if r != nil {
		t.Errorf("ResultByID() = %+v, expected nil", *r)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveResult(GameResult{GameID: "klondike", Seed: int64(i), CardsToDraw: 3}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	if _, err := store.SaveResult(GameResult{GameID: "klondike1", Seed: 99, CardsToDraw: 1}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	all, err := store.RecentResults("", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(all) != 3 || all[0].Seed != 99 {
		t.Errorf("RecentResults(\"\") newest = %+v, expected seed 99 first", all)
	}

	results, err := store.RecentResults("klondike", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("RecentResults(3) returned %d results", len(results))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if results[0].Seed != 4 || results[1].Seed != 3 || results[2].Seed != 2 {
		t.Errorf("RecentResults() seeds = %d,%d,%d, expected 4,3,2",
			results[0].Seed, results[1].Seed, results[2].Seed)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("klondike")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.WinRate() != 0 {
		t.Errorf("empty stats = %+v", *stats)
	}

	store.SaveResult(GameResult{GameID: "klondike", Won: true, Moves: 120, Score: 1020})
	store.SaveResult(GameResult{GameID: "klondike", Won: true, Moves: 99, Score: 1020})
	store.SaveResult(GameResult{GameID: "klondike", Won: false, Moves: 40, Score: 60})
	store.SaveResult(GameResult{GameID: "klondike", Won: false, Moves: 10, Score: 0})
	store.SaveResult(GameResult{GameID: "klondike1", Won: true, Moves: 5, Score: 2000})

	stats, err = store.GetGameStats("klondike")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 4 {
		t.Errorf("GamesCount = %d, expected 4", stats.GamesCount)
	}
	if stats.Wins != 2 {
		t.Errorf("Wins = %d, expected 2", stats.Wins)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, expected 0.5", stats.WinRate())
	}
	if stats.HighScore != 1020 {
		t.Errorf("HighScore = %d, expected 1020", stats.HighScore)
	}
	if stats.FewestMoves != 99 {
		t.Errorf("FewestMoves = %d, expected 99", stats.FewestMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v; expected not found", ok, err)
	}

	if err := store.Set("klondike/position", "1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("klondike/position", "2"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("klondike/position")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if v != "2" {
		t.Errorf("Get() = %q, expected 2", v)
	}

	if err := store.Delete("klondike/position"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("klondike/position"); ok {
		t.Error("key still present after Delete()")
	}
	if err := store.Delete("klondike/position"); err != nil {
		t.Errorf("Delete() of a missing key failed: %v", err)
	}
}

func TestStoreKVPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("klondike/state/1", `{"stock":[]}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get("klondike/state/1")
	if err != nil || !ok || v != `{"stock":[]}` {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}
