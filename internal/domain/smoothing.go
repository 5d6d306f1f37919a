package domain

// RollingAverage replaces each value by the mean of itself and up to n-1
// preceding values. The window is shorter for the first n-1 points.
// n <= 1 returns a copy of s.
func RollingAverage(s Series, n int) Series {
	out := make(Series, len(s))
	copy(out, s)
	if n <= 1 {
		return out
	}

	var sum float64
	for i, p := range s {
		sum += p.Value
		if i >= n {
			sum -= s[i-n].Value
		}
		width := min(i+1, n)
		out[i].Value = sum / float64(width)
	}
	return out
}

// RateOfChange returns the percentage change of each value against the value
// lag points earlier. Points without a defined change (from 0 to non-zero)
// are dropped; 0 to 0 counts as no change.
func RateOfChange(s Series, lag int) Series {
	if lag <= 0 {
		lag = 1
	}
	out := make(Series, 0, len(s))
	for i := lag; i < len(s); i++ {
		prev, cur := s[i-lag].Value, s[i].Value
		p := s[i]
		switch {
		case prev == 0 && cur == 0:
			p.Value = 0
		case prev == 0:
			continue
		default:
			p.Value = 100 * (cur/prev - 1)
		}
		out = append(out, p)
	}
	return out
}
