package match

// Options holds the Merge Engine's tunables.
type Options struct {
	// MinVotes is the minimum first-place vote count for promotion.
	MinVotes int
	// MinGap is the minimum first-minus-second gap for promotion.
	MinGap int
	// BatchPercent is the fraction of pending entries the collector may
	// confirm per invocation (0.10 = 10%).
	BatchPercent float64
	// FloorClasses/FloorFields/FloorMethods set the minimum batch size
	// regardless of BatchPercent.
	FloorClasses int
	FloorFields  int
	FloorMethods int
	// MaxIterations is the global safety bound on pipeline jumps.
	MaxIterations int
}

// DefaultOptions returns the Merge Engine's default tunables.
func DefaultOptions() Options {
	return Options{
		MinVotes:      3,
		MinGap:        2,
		BatchPercent:  0.10,
		FloorClasses:  5,
		FloorFields:   5,
		FloorMethods:  10,
		MaxIterations: 50,
	}
}

// BatchSize computes max(floor, batchPercent * pendingCount) for a kind.
func BatchSize(pendingCount int, batchPercent float64, floor int) int {
	scaled := int(float64(pendingCount) * batchPercent)
	if scaled < floor {
		return floor
	}
	return scaled
}
