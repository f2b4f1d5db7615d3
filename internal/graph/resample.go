package graph

// Resample stretches or squeezes data to n points. Downsampling keeps the
// max of each bucket so spikes survive; upsampling interpolates linearly.
// Callers use it to fit a history to 2*Width before rendering.
func Resample(data []float64, n int) []float64 {
	if len(data) == 0 || n <= 0 {
		return nil
	}

	result := make([]float64, n)

	if len(data) == n {
		copy(result, data)
		return result
	}

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > n {
		bucket := float64(len(data)) / float64(n)
		for i := 0; i < n; i++ {
			start := int(float64(i) * bucket)
			end := int(float64(i+1) * bucket)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}

			peak := data[start]
			for _, v := range data[start+1 : end] {
				if v > peak {
					peak = v
				}
			}
			result[i] = peak
		}
		return result
	}

	scale := float64(len(data)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}

// Peak returns the largest value in data, or floor if that is larger.
// Auto-scaled graphs such as network rates use it as Config.Max.
func Peak(data []float64, floor float64) float64 {
	peak := floor
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	return peak
}
