package level

import "math"

func cos32(rad float32) float32 { return float32(math.Cos(float64(rad))) }
func sin32(rad float32) float32 { return float32(math.Sin(float64(rad))) }
