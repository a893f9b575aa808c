package models

import (
	"encoding/json"
	"math"
)

// SurveyInput is the payload sent to the prediction service.
// Every field is numeric; flags are 0 or 1 and Age is a bracket code (see AgeBrackets).
type SurveyInput struct {
	HighBP               float64 `json:"HighBP"`
	HighChol             float64 `json:"HighChol"`
	BMI                  float64 `json:"BMI"`
	Smoker               float64 `json:"Smoker"`
	Stroke               float64 `json:"Stroke"`
	HeartDiseaseorAttack float64 `json:"HeartDiseaseorAttack"`
	PhysActivity         float64 `json:"PhysActivity"`
	Fruits               float64 `json:"Fruits"`
	Veggies              float64 `json:"Veggies"`
	HvyAlcoholConsump    float64 `json:"HvyAlcoholConsump"`
	Sex                  float64 `json:"Sex"`
	Age                  float64 `json:"Age"`
}

// wireNumber encodes NaN and infinities as null instead of failing the whole payload.
type wireNumber float64

func (n wireNumber) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// MarshalJSON keeps field order stable and tolerates non-finite values, which
// the payload builder passes through unchecked.
func (s SurveyInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HighBP               wireNumber `json:"HighBP"`
		HighChol             wireNumber `json:"HighChol"`
		BMI                  wireNumber `json:"BMI"`
		Smoker               wireNumber `json:"Smoker"`
		Stroke               wireNumber `json:"Stroke"`
		HeartDiseaseorAttack wireNumber `json:"HeartDiseaseorAttack"`
		PhysActivity         wireNumber `json:"PhysActivity"`
		Fruits               wireNumber `json:"Fruits"`
		Veggies              wireNumber `json:"Veggies"`
		HvyAlcoholConsump    wireNumber `json:"HvyAlcoholConsump"`
		Sex                  wireNumber `json:"Sex"`
		Age                  wireNumber `json:"Age"`
	}{
		HighBP:               wireNumber(s.HighBP),
		HighChol:             wireNumber(s.HighChol),
		BMI:                  wireNumber(s.BMI),
		Smoker:               wireNumber(s.Smoker),
		Stroke:               wireNumber(s.Stroke),
		HeartDiseaseorAttack: wireNumber(s.HeartDiseaseorAttack),
		PhysActivity:         wireNumber(s.PhysActivity),
		Fruits:               wireNumber(s.Fruits),
		Veggies:              wireNumber(s.Veggies),
		HvyAlcoholConsump:    wireNumber(s.HvyAlcoholConsump),
		Sex:                  wireNumber(s.Sex),
		Age:                  wireNumber(s.Age),
	})
}

// AgeBracket maps a survey age code to its five-year range
type AgeBracket struct {
	Code  int
	Label string
}

// AgeBrackets is the fixed code table used by the survey, youngest first
var AgeBrackets = []AgeBracket{
	{Code: 1, Label: "18-24"},
	{Code: 2, Label: "25-29"},
	{Code: 3, Label: "30-34"},
	{Code: 4, Label: "35-39"},
	{Code: 5, Label: "40-44"},
	{Code: 6, Label: "45-49"},
	{Code: 7, Label: "50-54"},
	{Code: 8, Label: "55-59"},
	{Code: 9, Label: "60-64"},
	{Code: 10, Label: "65-69"},
	{Code: 11, Label: "70-74"},
	{Code: 12, Label: "75-79"},
	{Code: 13, Label: "80+"},
}

// AgeBracketLabel returns the range for an age code, or "" if the code is not in the table
func AgeBracketLabel(code int) string {
	if code < 1 || code > len(AgeBrackets) {
		return ""
	}
	return AgeBrackets[code-1].Label
}
