package misc

import (
	"math"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

func LerpFloat32(v1 float32, v2 float32, fraction float32) float32 {
	return v1 + (v2-v1)*fraction
}

// UnitToUint8 maps a color component in [0, 1] to [0, 255], clamping values outside the range.
func UnitToUint8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}

func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}
