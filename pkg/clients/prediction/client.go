package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"diabetes-risk/pkg/models"
)

// Client defines the interface for interacting with the prediction service
type Client interface {
	// Predict returns the classification for the given survey. Any failure is a *models.RequestError.
	Predict(ctx context.Context, input models.SurveyInput) (*models.PredictionResult, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new prediction service client. A zero timeout keeps the
// transport default.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Predict(ctx context.Context, input models.SurveyInput) (*models.PredictionResult, error) {
	url := c.baseURL + "/predict"

	jsonPayload, err := json.Marshal(input)
	if err != nil {
		return nil, models.NewUnknownError(fmt.Errorf("error creating payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, models.NewUnknownError(fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Warn("prediction request failed", zap.String("url", url), zap.Error(err))
		return nil, models.NewTransportError("", fmt.Errorf("error calling prediction service: %w", err))
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewTransportError("", fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(body)
		zap.L().Info("prediction service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, models.NewTransportError(message,
			fmt.Errorf("error from prediction service: status %d: %s", resp.StatusCode, string(body)))
	}

	// A null body decodes without error but carries no prediction
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, models.NewUnknownError(errors.New("error parsing response: null body"))
	}

	var result models.PredictionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, models.NewUnknownError(fmt.Errorf("error parsing response: %w", err))
	}

	zap.L().Debug("prediction received", zap.String("prediction", result.Prediction))
	return &result, nil
}

// errorMessage pulls a string "message" out of an error body. Any other shape
// yields "" so the caller falls back to the generic text.
func errorMessage(body []byte) string {
	var errorResponse map[string]interface{}
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return ""
	}
	message, _ := errorResponse["message"].(string)
	return message
}
