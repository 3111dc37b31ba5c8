package gradient

// Benchmark is the built-in gradient used when none is configured.
func Benchmark() Gradient {
	return New("benchmark",
		Stop{Pos: 0.00, R: 0.00, G: 0.03, B: 0.39},
		Stop{Pos: 0.16, R: 0.13, G: 0.42, B: 0.80},
		Stop{Pos: 0.42, R: 0.93, G: 1.00, B: 1.00},
		Stop{Pos: 0.64, R: 1.00, G: 0.67, B: 0.00},
		Stop{Pos: 0.86, R: 0.00, G: 0.01, B: 0.01},
		Stop{Pos: 1.00, R: 0.00, G: 0.03, B: 0.39},
	)
}
