package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"diabetes-risk/pkg/clients/prediction"
	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/payload"
	"diabetes-risk/pkg/telemetry"
)

// ErrSubmissionInFlight is returned when a submit arrives while another one is still running
var ErrSubmissionInFlight = errors.New("submission already in flight")

// FormController owns the submission lifecycle of one survey form
type FormController interface {
	// Submit builds the payload, calls the prediction service and settles the state.
	// A submit while Submitting is ignored and returns ErrSubmissionInFlight.
	Submit(ctx context.Context, fields payload.RawFields) (models.SubmissionState, error)
	// Dismiss closes the modal and returns a settled submission to Idle
	Dismiss()
	// State returns a copy of the current submission state
	State() models.SubmissionState
}

type formControllerImpl struct {
	client    prediction.Client
	telemetry *telemetry.Telemetry

	inFlight *semaphore.Weighted
	mu       sync.Mutex
	state    models.SubmissionState
}

// NewFormController creates a controller in the Idle state
func NewFormController(client prediction.Client, telemetry *telemetry.Telemetry) FormController {
	return &formControllerImpl{
		client:    client,
		telemetry: telemetry,
		inFlight:  semaphore.NewWeighted(1),
		state:     models.IdleState(),
	}
}

func (s *formControllerImpl) Submit(ctx context.Context, fields payload.RawFields) (models.SubmissionState, error) {
	if !s.inFlight.TryAcquire(1) {
		s.telemetry.SubmissionIgnored()
		zap.L().Debug("ignoring submit while another is in flight")
		return s.State(), ErrSubmissionInFlight
	}
	defer s.inFlight.Release(1)

	input := payload.Build(fields)

	s.setState(models.SubmittingState())
	s.telemetry.SubmissionStarted()

	// Once issued the request runs to completion even if the caller goes away
	start := time.Now()
	result, err := s.predict(context.WithoutCancel(ctx), input)
	elapsed := time.Since(start)

	if err != nil {
		reqErr := toRequestError(err)
		zap.L().Info("prediction failed",
			zap.String("kind", string(reqErr.Kind)),
			zap.String("message", reqErr.Message),
			zap.Duration("elapsed", elapsed),
			zap.Error(errors.Unwrap(reqErr)),
		)
		s.telemetry.PredictionFailed(reqErr.Kind, elapsed)
		s.setState(models.FailedState(reqErr))
		return s.State(), nil
	}

	zap.L().Info("prediction succeeded",
		zap.String("prediction", result.Prediction),
		zap.Duration("elapsed", elapsed),
	)
	s.telemetry.PredictionSucceeded(elapsed)
	s.setState(models.SucceededState(*result))
	return s.State(), nil
}

// predict calls the client and turns a panic or an empty result into an error
func (s *formControllerImpl) predict(ctx context.Context, input models.SurveyInput) (result *models.PredictionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("prediction client panicked: %v", r)
		}
	}()

	result, err = s.client.Predict(ctx, input)
	if err == nil && result == nil {
		err = errors.New("prediction client returned no result")
	}
	return result, err
}

func (s *formControllerImpl) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Settled() {
		s.state = models.IdleState()
	}
}

func (s *formControllerImpl) State() models.SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *formControllerImpl) setState(state models.SubmissionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// toRequestError keeps a tagged RequestError and classifies anything else as unknown
func toRequestError(err error) *models.RequestError {
	var reqErr *models.RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return models.NewUnknownError(err)
}
