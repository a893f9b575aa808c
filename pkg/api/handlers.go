package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/presentation"
	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/sessions"
	"diabetes-risk/pkg/telemetry"
	"diabetes-risk/pkg/utils"
)

const (
	sessionCookie = "session_id"
	controllerKey = "controller"
)

// Handlers contains all HTTP handlers for the survey UI and API
type Handlers struct {
	sessions  *sessions.Store
	telemetry *telemetry.Telemetry
}

// NewHandlers creates a new Handlers instance
func NewHandlers(sessions *sessions.Store, telemetry *telemetry.Telemetry) *Handlers {
	return &Handlers{
		sessions:  sessions,
		telemetry: telemetry,
	}
}

// StateResponse is the JSON view of a session
type StateResponse struct {
	State models.SubmissionState `json:"state"`
	Modal presentation.Modal     `json:"modal"`
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Metrics dumps the telemetry registry as JSON
func (h *Handlers) Metrics(c *gin.Context) {
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	h.telemetry.WriteJSON(c.Writer)
}

// WithSession attaches the caller's form controller to the context, starting
// a session when the cookie is missing or expired
func (h *Handlers) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		id, controller := h.sessions.GetOrCreate(id)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		c.Set(controllerKey, controller)
		c.Set(sessionCookie, id)
		c.Next()
	}
}

func controllerFrom(c *gin.Context) services.FormController {
	return c.MustGet(controllerKey).(services.FormController)
}

// Index renders the survey form and, when a submission has settled, the modal
func (h *Handlers) Index(c *gin.Context) {
	state := controllerFrom(c).State()
	c.HTML(http.StatusOK, "index.html", newPage(state))
}

// Submit handles the survey form post and redirects back to the page
func (h *Handlers) Submit(c *gin.Context) {
	if err := h.submit(c); err != nil && !errors.Is(err, services.ErrSubmissionInFlight) {
		c.String(http.StatusBadRequest, "Error reading form")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Dismiss closes the modal and redirects back to the page
func (h *Handlers) Dismiss(c *gin.Context) {
	controllerFrom(c).Dismiss()
	c.Redirect(http.StatusSeeOther, "/")
}

// State returns the session's submission state and modal as JSON
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, stateResponse(controllerFrom(c).State()))
}

// SubmitJSON takes the same form post as Submit and answers with the settled state
func (h *Handlers) SubmitJSON(c *gin.Context) {
	err := h.submit(c)
	switch {
	case errors.Is(err, services.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading form"})
	default:
		c.JSON(http.StatusOK, stateResponse(controllerFrom(c).State()))
	}
}

// DismissJSON is Dismiss for API callers
func (h *Handlers) DismissJSON(c *gin.Context) {
	controller := controllerFrom(c)
	controller.Dismiss()
	c.JSON(http.StatusOK, stateResponse(controller.State()))
}

func (h *Handlers) submit(c *gin.Context) error {
	if err := c.Request.ParseForm(); err != nil {
		zap.L().Warn("error parsing form", zap.Error(err))
		return err
	}

	session := utils.ShortHash(c.GetString(sessionCookie))
	zap.L().Info("survey submitted", zap.String("session", session))

	_, err := controllerFrom(c).Submit(c.Request.Context(), c.Request.PostForm)
	if errors.Is(err, services.ErrSubmissionInFlight) {
		zap.L().Info("submission ignored, one is already in flight", zap.String("session", session))
	}
	return err
}

func stateResponse(state models.SubmissionState) StateResponse {
	return StateResponse{State: state, Modal: presentation.Render(state)}
}
