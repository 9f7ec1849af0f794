package dynamo

import "testing"

func rec(t float64) Record {
	return Record{Time: t, Height: t * 2, Velocity: t * 3, Potential: t * 4, KineticTrans: t * 5, KineticRot: t * 6}
}

func TestHistoryUnbounded(t *testing.T) {
	h := NewHistory(0)
	for i := 1; i <= 5; i++ {
		h.Append(rec(float64(i)))
	}

	if h.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", h.Len())
	}
	if h.At(0).Time != 1 || h.At(4).Time != 5 {
		t.Errorf("unexpected order: first=%v last=%v", h.At(0).Time, h.At(4).Time)
	}

	last, ok := h.Last()
	if !ok || last.Time != 5 {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestHistoryBoundedKeepsNewest(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 7; i++ {
		h.Append(rec(float64(i)))
	}

	if h.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", h.Len())
	}
	for i, want := range []float64{5, 6, 7} {
		if got := h.At(i).Time; got != want {
			t.Errorf("At(%d).Time = %v, want %v", i, got, want)
		}
	}
}

func TestHistoryClear(t *testing.T) {
	for _, capacity := range []int{0, 4} {
		h := NewHistory(capacity)
		h.Append(rec(1))
		h.Append(rec(2))
		h.Clear()

		if h.Len() != 0 {
			t.Errorf("capacity %d: expected empty history, got %d", capacity, h.Len())
		}
		if _, ok := h.Last(); ok {
			t.Errorf("capacity %d: Last() on empty history reported ok", capacity)
		}

		h.Append(rec(3))
		if h.At(0).Time != 3 {
			t.Errorf("capacity %d: append after clear got %v", capacity, h.At(0).Time)
		}
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	h := NewHistory(0)
	h.Append(rec(1))
	h.Append(rec(2))

	snap := h.Snapshot()
	h.Append(rec(3))
	h.Clear()

	if snap.Len() != 2 {
		t.Fatalf("snapshot changed with history: len %d", snap.Len())
	}
	if !snap.Aligned() {
		t.Error("snapshot series are not aligned")
	}
	if got := snap.Record(1); got != rec(2) {
		t.Errorf("Record(1) = %+v, want %+v", got, rec(2))
	}
}

func TestSnapshotOfRoundTrip(t *testing.T) {
	records := []Record{rec(0.5), rec(1.5)}
	snap := SnapshotOf(records)

	for i, r := range records {
		if snap.Record(i) != r {
			t.Errorf("Record(%d) = %+v, want %+v", i, snap.Record(i), r)
		}
	}
}

func TestHistoryAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewHistory(0).At(0)
}
