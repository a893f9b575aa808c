// Package payload turns raw survey form values into the numeric record the
// prediction service expects.
package payload

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"diabetes-risk/pkg/models"
)

// Form field names as posted by the survey page
const (
	FieldHighBP               = "highBP"
	FieldHighChol             = "highChol"
	FieldBMI                  = "bmi"
	FieldSmoker               = "smoker"
	FieldStroke               = "stroke"
	FieldHeartDiseaseorAttack = "heartDiseaseorAttack"
	FieldPhysActivity         = "physActivity"
	FieldFruits               = "fruits"
	FieldVeggies              = "veggies"
	FieldHvyAlcoholConsump    = "hvyAlcoholConsump"
	FieldSex                  = "sex"
	FieldAge                  = "age"
)

// CheckboxFields lists every field that is a presence flag, in payload order
var CheckboxFields = []string{
	FieldHighBP,
	FieldHighChol,
	FieldSmoker,
	FieldStroke,
	FieldHeartDiseaseorAttack,
	FieldPhysActivity,
	FieldFruits,
	FieldVeggies,
	FieldHvyAlcoholConsump,
}

// RawFields is the read side of submitted form data. url.Values satisfies it.
type RawFields interface {
	Has(key string) bool
	Get(key string) string
}

// Build maps raw form values to a SurveyInput. It never fails: a checkbox is 1
// when present and 0 otherwise, and the remaining fields are parsed as numbers
// without any range checks. Unparsable numbers come through as NaN.
func Build(fields RawFields) models.SurveyInput {
	return models.SurveyInput{
		HighBP:               flag(fields, FieldHighBP),
		HighChol:             flag(fields, FieldHighChol),
		BMI:                  number(fields, FieldBMI),
		Smoker:               flag(fields, FieldSmoker),
		Stroke:               flag(fields, FieldStroke),
		HeartDiseaseorAttack: flag(fields, FieldHeartDiseaseorAttack),
		PhysActivity:         flag(fields, FieldPhysActivity),
		Fruits:               flag(fields, FieldFruits),
		Veggies:              flag(fields, FieldVeggies),
		HvyAlcoholConsump:    flag(fields, FieldHvyAlcoholConsump),
		Sex:                  number(fields, FieldSex),
		Age:                  number(fields, FieldAge),
	}
}

func flag(fields RawFields, name string) float64 {
	if fields.Has(name) {
		return 1
	}
	return 0
}

func number(fields RawFields, name string) float64 {
	return ParseNumber(fields.Get(name))
}

// ParseNumber converts a form string the way a browser's Number() does for the
// inputs this form produces: blank is 0, garbage is NaN.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return math.NaN()
	}
	return v
}
