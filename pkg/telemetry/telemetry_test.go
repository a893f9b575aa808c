package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"diabetes-risk/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTelemetryCounters(t *testing.T) {
	tel := NewTelemetry()

	tel.SubmissionStarted()
	tel.SubmissionStarted()
	tel.SubmissionIgnored()
	tel.PredictionSucceeded(10 * time.Millisecond)
	tel.PredictionFailed(models.ErrorKindTransport, 5*time.Millisecond)
	tel.PredictionFailed(models.ErrorKindTransport, 5*time.Millisecond)

	assert.Equal(t, int64(2), tel.Count(SubmissionsCount))
	assert.Equal(t, int64(1), tel.Count(SubmissionsIgnoredCount))
	assert.Equal(t, int64(1), tel.Count(PredictionsSucceeded))
	assert.Equal(t, int64(2), tel.Count(PredictionsFailedPrefix+"transport"))
	assert.Equal(t, int64(0), tel.Count(PredictionsFailedPrefix+"unknown"))
}

func TestTelemetryWriteJSON(t *testing.T) {
	tel := NewTelemetry()
	tel.SubmissionStarted()
	tel.SetActiveSessions(3)

	var buf bytes.Buffer
	tel.WriteJSON(&buf)

	var dump map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, 1.0, dump[SubmissionsCount]["count"])
	assert.Equal(t, 3.0, dump[SessionsActive]["value"])
	assert.Equal(t, 0.0, dump[PredictionLatency]["count"])
}

func TestTelemetryLatencyHistogram(t *testing.T) {
	tel := NewTelemetry()
	tel.PredictionSucceeded(40 * time.Millisecond)
	tel.PredictionFailed(models.ErrorKindUnknown, 20*time.Millisecond)

	var buf bytes.Buffer
	tel.WriteJSON(&buf)

	var dump map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, 2.0, dump[PredictionLatency]["count"])
	assert.Equal(t, 40.0, dump[PredictionLatency]["max"])
	assert.Equal(t, 20.0, dump[PredictionLatency]["min"])
}
