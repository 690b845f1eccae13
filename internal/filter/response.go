package filter

import "math"

// FilterResponse holds a sampled frequency response.
type FilterResponse struct {
	// Frequencies are normalized to the filter's sample rate, 0 to 0.5.
	Frequencies []float64

	// Magnitude is the linear magnitude at each frequency.
	Magnitude []float64

	// Phase is the phase at each frequency in radians.
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of an FIR filter at numPoints
// frequencies from DC up to (but excluding) Nyquist. numPoints <= 0 selects
// 512 points.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(2*numPoints)
		omega := 2 * math.Pi * freq

		var re, im float64
		for n, h := range coeffs {
			s, c := math.Sincos(omega * float64(n))
			re += h * c
			im -= h * s
		}

		response.Frequencies[k] = freq
		response.Magnitude[k] = math.Hypot(re, im)
		response.Phase[k] = math.Atan2(im, re)
	}
	return response
}

// MagnitudeDB converts a linear magnitude to decibels, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	const minMagnitude = 1e-10
	return 20.0 * math.Log10(math.Max(magnitude, minMagnitude))
}
