package sessions

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/telemetry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubClient struct{}

func (stubClient) Predict(context.Context, models.SurveyInput) (*models.PredictionResult, error) {
	return &models.PredictionResult{Prediction: "Low risk"}, nil
}

func newStore(ttl time.Duration) *Store {
	tel := telemetry.NewTelemetry()
	return NewStore(ttl, func() services.FormController {
		return services.NewFormController(stubClient{}, tel)
	}, tel)
}

func TestGetOrCreateIssuesNewSession(t *testing.T) {
	store := newStore(time.Minute)

	id, controller := store.GetOrCreate("")
	require.NotNil(t, controller)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	sameID, same := store.GetOrCreate(id)
	assert.Equal(t, id, sameID)
	assert.Same(t, controller, same)
	assert.Equal(t, 1, store.Len())
}

func TestGetOrCreateReplacesUnknownID(t *testing.T) {
	store := newStore(time.Minute)

	id, _ := store.GetOrCreate("not-a-session")
	assert.NotEqual(t, "not-a-session", id)

	_, ok := store.touch("not-a-session")
	assert.False(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newStore(time.Minute)

	_, first := store.GetOrCreate("")
	_, second := store.GetOrCreate("")

	_, err := first.Submit(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSucceeded, first.State().Status)
	assert.Equal(t, models.StatusIdle, second.State().Status)
}

func TestSessionExpires(t *testing.T) {
	store := newStore(50 * time.Millisecond)

	id, _ := store.GetOrCreate("")
	time.Sleep(100 * time.Millisecond)

	_, ok := store.touch(id)
	assert.False(t, ok)
}

func TestExpiredSessionsSweptOnNewSession(t *testing.T) {
	store := newStore(50 * time.Millisecond)

	store.GetOrCreate("")
	store.GetOrCreate("")
	time.Sleep(100 * time.Millisecond)

	store.GetOrCreate("")
	assert.Equal(t, 1, store.Len())
}
