package telemetry

import (
	"io"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"diabetes-risk/pkg/models"
)

const (
	SubmissionsCount        = "submissions.count"
	SubmissionsIgnoredCount = "submissions.ignored"
	PredictionsSucceeded    = "predictions.succeeded"
	PredictionsFailedPrefix = "predictions.failed."
	PredictionLatency       = "predictions.latency_ms"
	SessionsActive          = "sessions.active"
)

const latencySampleSize = 1028

// Telemetry counts form submissions and their outcomes
type Telemetry struct {
	registry    gometrics.Registry
	submissions gometrics.Counter
	ignored     gometrics.Counter
	succeeded   gometrics.Counter
	latency     gometrics.Histogram
	sessions    gometrics.Gauge
}

func NewTelemetry() *Telemetry {
	telemetry := Telemetry{}
	telemetry.registry = gometrics.NewRegistry()
	telemetry.submissions = gometrics.NewCounter()
	telemetry.ignored = gometrics.NewCounter()
	telemetry.succeeded = gometrics.NewCounter()
	// Milliseconds; no Timer, which would start the go-metrics meter goroutine
	telemetry.latency = gometrics.NewHistogram(gometrics.NewUniformSample(latencySampleSize))
	telemetry.sessions = gometrics.NewGauge()

	telemetry.registry.Register(SubmissionsCount, telemetry.submissions)
	telemetry.registry.Register(SubmissionsIgnoredCount, telemetry.ignored)
	telemetry.registry.Register(PredictionsSucceeded, telemetry.succeeded)
	telemetry.registry.Register(PredictionLatency, telemetry.latency)
	telemetry.registry.Register(SessionsActive, telemetry.sessions)
	return &telemetry
}

func (t *Telemetry) SubmissionStarted() {
	t.submissions.Inc(1)
}

func (t *Telemetry) SubmissionIgnored() {
	t.ignored.Inc(1)
}

func (t *Telemetry) PredictionSucceeded(elapsed time.Duration) {
	t.succeeded.Inc(1)
	t.latency.Update(elapsed.Milliseconds())
}

// PredictionFailed counts failures per error kind
func (t *Telemetry) PredictionFailed(kind models.ErrorKind, elapsed time.Duration) {
	counter := t.registry.GetOrRegister(PredictionsFailedPrefix+string(kind), gometrics.NewCounter).(gometrics.Counter)
	counter.Inc(1)
	t.latency.Update(elapsed.Milliseconds())
}

func (t *Telemetry) SetActiveSessions(n int) {
	t.sessions.Update(int64(n))
}

// Count returns the value of a registered counter, or 0 if there is none
func (t *Telemetry) Count(name string) int64 {
	if counter, ok := t.registry.Get(name).(gometrics.Counter); ok {
		return counter.Count()
	}
	return 0
}

// WriteJSON dumps every registered metric
func (t *Telemetry) WriteJSON(w io.Writer) {
	gometrics.WriteJSONOnce(t.registry, w)
}
