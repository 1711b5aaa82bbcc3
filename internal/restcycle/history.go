package restcycle

// #region ring

// Ring is a fixed-capacity history buffer; appending past capacity
// evicts the oldest sample. Appends are the only mutation.
type Ring struct {
	buf   []TickSample
	start int
	n     int
}

// NewRing allocates a ring with the given capacity (minimum 1).
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]TickSample, capacity)}
}

// Append adds a sample, evicting the oldest when full.
func (r *Ring) Append(s TickSample) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = s
		r.n++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

// Len reports how many samples are held.
func (r *Ring) Len() int {
	return r.n
}

// Last returns the most recent sample.
func (r *Ring) Last() (TickSample, bool) {
	if r.n == 0 {
		return TickSample{}, false
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)], true
}

// Items returns the held samples oldest first, as a fresh slice.
func (r *Ring) Items() []TickSample {
	out := make([]TickSample, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// #endregion ring
