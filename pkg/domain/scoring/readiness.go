package scoring

import "math"

// rating computes the overall readiness percentage from the two section
// totals. Clarity contributes at most 40 points and INVEST at most 60, so
// the rounded percentage is always within [0,100].
func rating(clarityTotal, investTotal int) int {
	return int(math.Round(float64(clarityTotal+investTotal) * 100.0 / 100.0))
}

// classify selects the first band whose threshold the rating meets or
// exceeds. Bands are ordered by descending threshold; the final band has
// threshold 0, so classification always succeeds.
func classify(cfg Config, rating int) ReadinessBand {
	for _, band := range cfg.Bands {
		if rating >= band.Threshold {
			return band
		}
	}
	if len(cfg.Bands) == 0 {
		return ReadinessBand{}
	}
	return cfg.Bands[len(cfg.Bands)-1]
}
