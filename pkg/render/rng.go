package render

// rngSeed is the fixed seed of the sketch stream. Every render starts from
// this state, which is what makes output byte-identical across runs.
const rngSeed = 42

// rng is a Lehmer linear-congruential generator (Park–Miller constants).
// The renderer owns one instance per render; the sequence of draws defines
// the exact output bytes, so consumers must not reorder calls.
type rng struct {
	state int64
}

func newRNG() *rng {
	return &rng{state: rngSeed}
}

// reset rewinds the stream to the seed. Called once at render entry.
func (r *rng) reset() {
	r.state = rngSeed
}

// next returns the next value in [0, 1).
func (r *rng) next() float64 {
	r.state = r.state * 16807 % 2147483647
	return float64(r.state-1) / 2147483646
}

// jitter perturbs v by up to ±amount.
func (r *rng) jitter(v, amount float64) float64 {
	return v + (r.next()-0.5)*2*amount
}

// jitterPoint perturbs both coordinates, drawing x first then y.
func (r *rng) jitterPoint(x, y, amount float64) (float64, float64) {
	jx := r.jitter(x, amount)
	jy := r.jitter(y, amount)
	return jx, jy
}
