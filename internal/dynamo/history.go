package dynamo

// History is an append-only log of records. With a positive capacity it keeps
// the most recent records only; Append is O(1) either way.
type History struct {
	records  []Record
	start    int
	n        int
	capacity int
}

// NewHistory creates a log. capacity <= 0 means unbounded.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	h := &History{capacity: capacity}
	if capacity > 0 {
		h.records = make([]Record, capacity)
	}
	return h
}

func (h *History) Append(r Record) {
	if h.capacity == 0 {
		h.records = append(h.records, r)
		h.n++
		return
	}
	if h.n < h.capacity {
		h.records[(h.start+h.n)%h.capacity] = r
		h.n++
		return
	}
	// full: overwrite the oldest
	h.records[h.start] = r
	h.start = (h.start + 1) % h.capacity
}

func (h *History) Len() int { return h.n }

func (h *History) Capacity() int { return h.capacity }

// At returns the i-th oldest record. It panics if i is out of range.
func (h *History) At(i int) Record {
	if i < 0 || i >= h.n {
		panic("dynamo: history index out of range")
	}
	if h.capacity == 0 {
		return h.records[i]
	}
	return h.records[(h.start+i)%h.capacity]
}

func (h *History) Last() (Record, bool) {
	if h.n == 0 {
		return Record{}, false
	}
	return h.At(h.n - 1), true
}

// Clear drops all records and keeps the allocated storage.
func (h *History) Clear() {
	h.start = 0
	h.n = 0
	if h.capacity == 0 {
		h.records = h.records[:0]
	}
}

// Snapshot returns a column-oriented deep copy safe to hand to another
// goroutine.
func (h *History) Snapshot() Snapshot {
	s := newSnapshot(h.n)
	for i := 0; i < h.n; i++ {
		s.append(h.At(i))
	}
	return s
}

// Snapshot holds time-aligned copies of every recorded series.
type Snapshot struct {
	Time         []float64 `json:"t"`
	Height       []float64 `json:"h"`
	Velocity     []float64 `json:"v"`
	Potential    []float64 `json:"ep"`
	KineticTrans []float64 `json:"ek_t"`
	KineticRot   []float64 `json:"ek_r"`
}

func newSnapshot(n int) Snapshot {
	return Snapshot{
		Time:         make([]float64, 0, n),
		Height:       make([]float64, 0, n),
		Velocity:     make([]float64, 0, n),
		Potential:    make([]float64, 0, n),
		KineticTrans: make([]float64, 0, n),
		KineticRot:   make([]float64, 0, n),
	}
}

// SnapshotOf builds a snapshot from records, e.g. ones decoded from disk.
func SnapshotOf(records []Record) Snapshot {
	s := newSnapshot(len(records))
	for _, r := range records {
		s.append(r)
	}
	return s
}

func (s *Snapshot) append(r Record) {
	s.Time = append(s.Time, r.Time)
	s.Height = append(s.Height, r.Height)
	s.Velocity = append(s.Velocity, r.Velocity)
	s.Potential = append(s.Potential, r.Potential)
	s.KineticTrans = append(s.KineticTrans, r.KineticTrans)
	s.KineticRot = append(s.KineticRot, r.KineticRot)
}

func (s Snapshot) Len() int { return len(s.Time) }

func (s Snapshot) Record(i int) Record {
	return Record{
		Time:         s.Time[i],
		Height:       s.Height[i],
		Velocity:     s.Velocity[i],
		Potential:    s.Potential[i],
		KineticTrans: s.KineticTrans[i],
		KineticRot:   s.KineticRot[i],
	}
}

// Aligned reports whether all series have the same length.
func (s Snapshot) Aligned() bool {
	n := len(s.Time)
	return len(s.Height) == n && len(s.Velocity) == n && len(s.Potential) == n &&
		len(s.KineticTrans) == n && len(s.KineticRot) == n
}
