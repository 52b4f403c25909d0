package audio

import "math"

// volumeToPower maps linear volume to beep's base-2 exponent.
func volumeToPower(vol float64) float64 {
	if vol <= 0.01 {
		return -10 // Silent
	}
	return math.Log2(vol)
}

// ClampVolume limits vol to [0, 1].
func ClampVolume(vol float64) float64 {
	switch {
	case vol < 0:
		return 0
	case vol > 1:
		return 1
	default:
		return vol
	}
}
