package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "qbench"
)

var (
	Debug                bool = true
	validResults              = []string{"equivalent", "mismatch"}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "comparisons_total",
		Help:      "Count of circuit comparisons",
	}, []string{
		"run_id",
		"circuit",
		"result",
	})

	caseDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "case_duration_seconds",
		Help:      "Median simulation duration per circuit and engine",
	}, []string{
		"run_id",
		"circuit",
		"engine",
	})

	suiteCircuitsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_circuits_total",
		Help:      "Total number of circuits compared in a suite run",
	}, []string{
		"run_id",
	})

	suiteCircuitsEquivalent = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_circuits_equivalent",
		Help:      "Number of circuits where both engines agreed",
	}, []string{
		"run_id",
	})

	suiteCircuitsMismatched = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_circuits_mismatched",
		Help:      "Number of circuits where the engines disagreed",
	}, []string{
		"run_id",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Wall-clock duration of a suite run",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordComparison(runID string, circuit string, result string, candidate time.Duration, reference time.Duration) {
	if !isValidResult(result) {
		log.Error("RecordComparison - invalid result", "result", result)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "comparisons_total",
			"run_id", runID,
			"circuit", circuit,
			"result", result)
	}
	comparisonsTotal.WithLabelValues(runID, circuit, result).Inc()
	caseDuration.WithLabelValues(runID, circuit, "candidate").Set(candidate.Seconds())
	caseDuration.WithLabelValues(runID, circuit, "reference").Set(reference.Seconds())
}

func RecordSuite(
	runID string,
	total int,
	equivalent int,
	mismatched int,
	duration time.Duration,
) {
	suiteCircuitsTotal.WithLabelValues(runID).Set(float64(total))
	suiteCircuitsEquivalent.WithLabelValues(runID).Set(float64(equivalent))
	suiteCircuitsMismatched.WithLabelValues(runID).Set(float64(mismatched))
	suiteDuration.WithLabelValues(runID).Set(duration.Seconds())
}

func isValidResult(result string) bool {
	return slices.Contains(validResults, result)
}
