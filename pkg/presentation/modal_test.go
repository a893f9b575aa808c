package presentation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabetes-risk/pkg/models"
)

func prob(v float64) *float64 {
	return &v
}

func TestRenderSucceeded(t *testing.T) {
	m := Render(models.SucceededState(models.PredictionResult{Prediction: "High risk", Probability: prob(0.8732)}))

	assert.Equal(t, ViewResult, m.View)
	require.NotNil(t, m.Result)
	assert.Equal(t, "High risk", m.Result.Label)
	assert.Equal(t, "87.32%", m.Result.Probability)
	assert.Nil(t, m.Error)
	assert.True(t, m.Visible())
}

func TestRenderFailed(t *testing.T) {
	m := Render(models.FailedState(models.NewTransportError("Invalid BMI", nil)))

	assert.Equal(t, ViewError, m.View)
	require.NotNil(t, m.Error)
	assert.Equal(t, "Invalid BMI", m.Error.Message)
	assert.Nil(t, m.Result)
}

func TestRenderFallbackMessages(t *testing.T) {
	m := Render(models.FailedState(models.NewTransportError("", errors.New("connection refused"))))
	assert.Equal(t, models.TransportFallbackMessage, m.Error.Message)

	m = Render(models.FailedState(models.NewUnknownError(nil)))
	assert.Equal(t, models.UnknownErrorMessage, m.Error.Message)
}

func TestRenderHiddenStates(t *testing.T) {
	for _, state := range []models.SubmissionState{models.IdleState(), models.SubmittingState()} {
		m := Render(state)
		assert.Equal(t, ViewHidden, m.View, state.Status)
		assert.Nil(t, m.Result)
		assert.Nil(t, m.Error)
		assert.False(t, m.Visible())
	}
}

func TestRenderPanelsMutuallyExclusive(t *testing.T) {
	states := []models.SubmissionState{
		models.IdleState(),
		models.SubmittingState(),
		models.SucceededState(models.PredictionResult{Prediction: "Low risk"}),
		models.FailedState(models.NewUnknownError(nil)),
		{Status: models.StatusSucceeded},
		{Status: models.StatusFailed},
	}
	for _, state := range states {
		m := Render(state)
		assert.False(t, m.Result != nil && m.Error != nil, "both panels populated for %s", state.Status)
	}
}

func TestFormatProbability(t *testing.T) {
	tests := []struct {
		name string
		p    *float64
		want string
	}{
		{"missing", nil, "0.00%"},
		{"zero", prob(0), "0.00%"},
		{"nan", prob(math.NaN()), "0.00%"},
		{"one", prob(1), "100.00%"},
		{"rounds", prob(0.12346), "12.35%"},
		{"tiny", prob(0.00001), "0.00%"},
		{"out of range", prob(1.5), "150.00%"},
		{"negative", prob(-0.25), "-25.00%"},
		{"infinite", prob(math.Inf(1)), "Infinity%"},
		{"half up below one", prob(0.00625), "0.63%"},
		{"half up small", prob(0.00125), "0.13%"},
		{"half up above one", prob(0.01125), "1.13%"},
		{"half up midrange", prob(0.50125), "50.13%"},
		{"just below half", prob(0.001005), "0.10%"},
		{"negative half", prob(-0.00625), "-0.63%"},
		{"negative tiny", prob(-0.00001), "-0.00%"},
		{"huge", prob(1e20), "1e+22%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProbability(tt.p))
		})
	}
}

func TestRenderTerminal(t *testing.T) {
	assert.Empty(t, RenderTerminal(Render(models.IdleState())))

	out := RenderTerminal(Render(models.SucceededState(models.PredictionResult{Prediction: "High risk", Probability: prob(0.8732)})))
	assert.Contains(t, out, "High risk")
	assert.Contains(t, out, "87.32%")
	assert.NotContains(t, out, "Error")

	out = RenderTerminal(Render(models.FailedState(models.NewTransportError("Invalid BMI", nil))))
	assert.Contains(t, out, "Invalid BMI")
	assert.Contains(t, out, "Error")
	assert.NotContains(t, out, "Probability")
}
