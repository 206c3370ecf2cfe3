// Package exitcodes defines the standard exit codes used by qbench.
package exitcodes

// Exit code constants used by qbench
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when the suite completes and every circuit is equivalent
// * BenchFailure (1): Used when the suite completes but at least one circuit mismatches
// * RuntimeErr (2): Used for runtime errors such as engine failures, panics or timeouts
const (
	Success      = 0 // Suite completed, all circuits equivalent
	BenchFailure = 1 // Suite completed with mismatched circuits
	RuntimeErr   = 2 // Runtime errors or timeouts
)
