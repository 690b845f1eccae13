package chunk

import "github.com/tphakala/go-audio-resampler/v2/internal/simdops"

// Ring is a fixed-capacity FIFO of samples for one channel.
//
// Storage is mirrored: every sample is written at i and i+capacity, so any
// run of buffered samples is addressable as one contiguous slice without
// copying. A Ring never grows and never allocates after construction. It is
// not safe for concurrent use.
type Ring[F simdops.Float] struct {
	data  []F
	size  int
	start int
	fill  int
}

// NewRing creates a ring holding at most capacity samples.
func NewRing[F simdops.Float](capacity int) *Ring[F] {
	capacity = max(capacity, 1)
	return &Ring[F]{
		data: make([]F, mirrorFactor*capacity),
		size: capacity,
	}
}

// Cap returns the capacity in samples.
func (r *Ring[F]) Cap() int { return r.size }

// Len returns the number of buffered samples.
func (r *Ring[F]) Len() int { return r.fill }

// Free returns the number of samples that can be written.
func (r *Ring[F]) Free() int { return r.size - r.fill }

// Write appends as much of src as fits and returns the count written.
func (r *Ring[F]) Write(src []F) int {
	n := min(len(src), r.Free())
	w := (r.start + r.fill) % r.size
	for todo := src[:n]; len(todo) > 0; {
		seg := min(len(todo), r.size-w)
		copy(r.data[w:w+seg], todo[:seg])
		copy(r.data[w+r.size:w+r.size+seg], todo[:seg])
		todo = todo[seg:]
		w = 0
	}
	r.fill += n
	return n
}

// WriteZeros appends up to n zero samples and returns the count written.
func (r *Ring[F]) WriteZeros(n int) int {
	n = min(n, r.Free())
	w := (r.start + r.fill) % r.size
	for left := n; left > 0; {
		seg := min(left, r.size-w)
		clear(r.data[w : w+seg])
		clear(r.data[w+r.size : w+r.size+seg])
		left -= seg
		w = 0
	}
	r.fill += n
	return n
}

// Window returns n buffered samples starting off samples after the oldest
// one. The slice aliases the ring and is valid until the next Write,
// WriteZeros or Reset. off+n must not exceed Len.
func (r *Ring[F]) Window(off, n int) []F {
	i := r.start + off
	return r.data[i : i+n : i+n]
}

// At returns the sample off positions after the oldest one.
func (r *Ring[F]) At(off int) F {
	return r.data[r.start+off]
}

// Read moves up to len(dst) of the oldest samples into dst and returns the
// count moved.
func (r *Ring[F]) Read(dst []F) int {
	n := copy(dst, r.data[r.start:r.start+r.fill])
	r.Discard(n)
	return n
}

// Discard drops up to n of the oldest samples and returns the count dropped.
func (r *Ring[F]) Discard(n int) int {
	n = min(max(n, 0), r.fill)
	r.start = (r.start + n) % r.size
	r.fill -= n
	return n
}

// Reset empties the ring and zeroes its storage.
func (r *Ring[F]) Reset() {
	clear(r.data)
	r.start = 0
	r.fill = 0
}
