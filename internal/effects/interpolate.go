package effects

// Interpolate maps x from [inFrom, inTo] onto [outFrom, outTo], clamping to the output range.
func Interpolate(x, inFrom, inTo, outFrom, outTo float64) float64 {
	if inTo == inFrom {
		if x < inFrom {
			return outFrom
		}
		return outTo
	}
	t := clamp01((x - inFrom) / (inTo - inFrom))
	return lerp(outFrom, outTo, t)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// easeOutCubic decelerates into the target value.
func easeOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - pow(1-t, 3)
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
