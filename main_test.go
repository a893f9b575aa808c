package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabetes-risk/pkg/clients/prediction"
	"diabetes-risk/pkg/config"
	"diabetes-risk/pkg/payload"
	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/sessions"
	"diabetes-risk/pkg/telemetry"
)

func TestFlagName(t *testing.T) {
	tests := map[string]string{
		payload.FieldHighBP:               "high-bp",
		payload.FieldHvyAlcoholConsump:    "hvy-alcohol-consump",
		payload.FieldHeartDiseaseorAttack: "heart-diseaseor-attack",
		payload.FieldFruits:               "fruits",
	}
	for field, want := range tests {
		assert.Equal(t, want, flagName(field))
	}
}

func resetPredictFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for _, set := range predictFlags {
			*set = false
		}
		predictBMI, predictSex, predictAge = "", "1", "1"
	})
}

func runPredictAgainst(t *testing.T, status int, body string) (string, map[string]interface{}, error) {
	t.Helper()
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sent map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &sent))
		received <- sent
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	cfg = config.Default()
	cfg.PredictionAPIURL = srv.URL

	var out bytes.Buffer
	predictCmd.SetOut(&out)
	predictCmd.SetContext(context.Background())
	err := runPredict(predictCmd, nil)
	return out.String(), <-received, err
}

func TestRunPredictPrintsResult(t *testing.T) {
	resetPredictFlags(t)
	*predictFlags[payload.FieldHighBP] = true
	*predictFlags[payload.FieldSmoker] = true
	predictBMI, predictSex, predictAge = "31.5", "0", "9"

	out, sent, err := runPredictAgainst(t, http.StatusOK, `{"prediction":"High risk","probability":0.8732}`)
	require.NoError(t, err)
	assert.Contains(t, out, "High risk")
	assert.Contains(t, out, "87.32%")

	assert.Equal(t, 1.0, sent["HighBP"])
	assert.Equal(t, 1.0, sent["Smoker"])
	assert.Equal(t, 0.0, sent["Stroke"])
	assert.Equal(t, 31.5, sent["BMI"])
	assert.Equal(t, 0.0, sent["Sex"])
	assert.Equal(t, 9.0, sent["Age"])
}

func TestRunPredictPrintsError(t *testing.T) {
	resetPredictFlags(t)

	out, _, err := runPredictAgainst(t, http.StatusBadRequest, `{"message":"Invalid BMI"}`)
	assert.ErrorIs(t, err, errPredictionFailed)
	assert.Contains(t, out, "Invalid BMI")
}

func TestServedSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prediction":"Low risk","probability":0.1}`))
	}))
	defer srv.Close()

	tel := telemetry.NewTelemetry()
	client := prediction.NewClient(srv.URL, 0)
	store := sessions.NewStore(time.Minute, func() services.FormController {
		return services.NewFormController(client, tel)
	}, tel)

	_, controller := store.GetOrCreate("")
	store.GetOrCreate("")
	_, err := controller.Submit(context.Background(), url.Values{})
	require.NoError(t, err)

	summary := map[string]int64{}
	for _, f := range servedSummary(tel, store) {
		summary[f.Key] = f.Integer
	}
	assert.Equal(t, map[string]int64{
		"submissions":      1,
		"ignored":          0,
		"succeeded":        1,
		"failed_transport": 0,
		"failed_unknown":   0,
		"sessions":         2,
	}, summary)
}
