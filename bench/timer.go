// Package bench measures the wall-clock cost of an operation over repeated
// runs and reports the median, which resists the scheduling and cold-cache
// outliers that dominate small sample counts.
package bench

import (
	"fmt"
	"slices"
	"time"
)

// Measure runs op the given number of times and returns the median duration.
// Every repetition executes op in full; nothing is reused between runs. An
// error from op aborts the measurement and propagates immediately. With a
// single repetition the median degenerates to the one observed duration,
// which is accepted rather than rejected.
func Measure(op func() error, repetitions int) (time.Duration, error) {
	if repetitions < 1 {
		return 0, fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}
	durations := make([]time.Duration, 0, repetitions)
	for i := 0; i < repetitions; i++ {
		start := time.Now()
		if err := op(); err != nil {
			return 0, err
		}
		durations = append(durations, time.Since(start))
	}
	return median(durations), nil
}

// median returns the middle duration, or the mean of the two middle
// durations for even-sized samples. The input is not modified.
func median(durations []time.Duration) time.Duration {
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
