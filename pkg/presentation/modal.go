// Package presentation projects a submission state onto the result/error
// modal. At most one panel is ever populated.
package presentation

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"diabetes-risk/pkg/models"
)

// View is the visible state of the modal
type View string

const (
	ViewHidden View = "hidden"
	ViewResult View = "result"
	ViewError  View = "error"
)

// ResultPanel is the content of the success modal
type ResultPanel struct {
	Label       string `json:"label"`
	Probability string `json:"probability"`
}

// ErrorPanel is the content of the failure modal
type ErrorPanel struct {
	Message string `json:"message"`
}

// Modal holds the panel to mount. Result is non-nil only for ViewResult and
// Error only for ViewError.
type Modal struct {
	View   View         `json:"view"`
	Result *ResultPanel `json:"result,omitempty"`
	Error  *ErrorPanel  `json:"error,omitempty"`
}

// Render maps a submission state to the modal. Idle and Submitting keep the
// modal hidden.
func Render(state models.SubmissionState) Modal {
	switch state.Status {
	case models.StatusSucceeded:
		if state.Result == nil {
			return Modal{View: ViewHidden}
		}
		return Modal{
			View: ViewResult,
			Result: &ResultPanel{
				Label:       state.Result.Prediction,
				Probability: FormatProbability(state.Result.Probability),
			},
		}
	case models.StatusFailed:
		message := models.UnknownErrorMessage
		if state.Error != nil {
			message = state.Error.Message
		}
		return Modal{View: ViewError, Error: &ErrorPanel{Message: message}}
	default:
		return Modal{View: ViewHidden}
	}
}

// Visible reports whether anything should be mounted
func (m Modal) Visible() bool {
	return m.View != ViewHidden
}

// FormatProbability renders p as a percentage with two decimals. A missing,
// zero or NaN probability shows as 0.00%. Values outside [0,1] are not clamped.
// Exact ties round away from zero, so 0.625 shows as 0.63%.
func FormatProbability(p *float64) string {
	if p == nil || *p == 0 || math.IsNaN(*p) {
		return "0.00%"
	}
	v := *p * 100
	switch {
	case math.IsInf(v, 1):
		return "Infinity%"
	case math.IsInf(v, -1):
		return "-Infinity%"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64) + "%"
	}
	return fixed2(v) + "%"
}

// fixed2 formats v with two decimals, rounding the exact binary value of v
// half away from zero.
func fixed2(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	// v*100 needs at most 60 significant bits, so 128 keeps every step exact
	scaled := new(big.Float).SetPrec(128).SetFloat64(v)
	scaled.Mul(scaled, big.NewFloat(100))
	cents, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetInt(cents))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		cents.Add(cents, big.NewInt(1))
	}

	digits := cents.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
