package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleHistory(n int) dynamo.Snapshot {
	records := make([]dynamo.Record, n)
	for i := range records {
		x := float64(i+1) * 0.001
		records[i] = dynamo.Record{Time: x, Height: x * x, Velocity: 2 * x, Potential: 0.1 * x, KineticTrans: x / 3, KineticRot: x / 7}
	}
	return dynamo.SnapshotOf(records)
}

func TestStoreOpenClose(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "runs.db")); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", s.Dir(), dir)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	s := openTemp(t)

	meta := &RunMeta{
		Preset:       "lab",
		Params:       physics.DefaultParams(),
		Floor:        "reflect",
		Dt:           0.001,
		Duration:     2,
		Steps:        2000,
		TimeToBottom: 1.0309,
		HasBottom:    true,
		Metrics:      map[string]float64{"reversals": 2},
	}
	snap := sampleHistory(50)

	id, err := s.Save(meta, snap)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if id != "lab_1" || meta.ID != id {
		t.Errorf("unexpected id %q (meta %q)", id, meta.ID)
	}

	got, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Params != meta.Params || got.Steps != 2000 || !got.HasBottom || got.TimeToBottom != 1.0309 {
		t.Errorf("Load() = %+v", got)
	}
	if got.Metrics["reversals"] != 2 {
		t.Errorf("metrics not restored: %v", got.Metrics)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not restored")
	}

	hist, err := s.LoadHistory(id)
	if err != nil {
		t.Fatalf("LoadHistory() failed: %v", err)
	}
	if hist.Len() != 50 || hist.Record(49) != snap.Record(49) {
		t.Errorf("history not restored exactly")
	}
}

func TestStoreWithoutBottom(t *testing.T) {
	s := openTemp(t)
	id, err := s.Save(&RunMeta{Floor: "absorb", Dt: 0.001, Duration: 0.1}, sampleHistory(3))
	if err != nil {
		t.Fatal(err)
	}
	if id != "custom_1" {
		t.Errorf("expected custom label, got %q", id)
	}
	got, err := s.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.HasBottom {
		t.Error("expected no time to bottom")
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	s := openTemp(t)
	for _, preset := range []string{"classic", "lab", "tall"} {
		if _, err := s.Save(&RunMeta{Preset: preset}, sampleHistory(2)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "tall_3" || runs[2].ID != "classic_1" {
		t.Errorf("unexpected order: %s .. %s", runs[0].ID, runs[2].ID)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTemp(t)
	id, err := s.Save(&RunMeta{Preset: "lab"}, sampleHistory(2))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := s.LoadHistory(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected history to be gone, got %v", err)
	}
	if err := s.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	s := openTemp(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Save(&RunMeta{Preset: "sweep"}, sampleHistory(10)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	runs, _ := s.List()
	if len(runs) != 8 {
		t.Errorf("expected 8 runs, got %d", len(runs))
	}
}
