package api

import (
	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/payload"
	"diabetes-risk/pkg/presentation"
)

type checkbox struct {
	Name  string
	Label string
}

var healthConditions = []checkbox{
	{Name: payload.FieldHighBP, Label: "High blood pressure"},
	{Name: payload.FieldHighChol, Label: "High cholesterol"},
	{Name: payload.FieldHeartDiseaseorAttack, Label: "History of heart attack or heart disease"},
	{Name: payload.FieldStroke, Label: "Has had a stroke"},
}

var habits = []checkbox{
	{Name: payload.FieldSmoker, Label: "Smoker"},
	{Name: payload.FieldHvyAlcoholConsump, Label: "Heavy alcohol consumption"},
	{Name: payload.FieldPhysActivity, Label: "Regular physical activity"},
	{Name: payload.FieldFruits, Label: "Eats fruit daily"},
	{Name: payload.FieldVeggies, Label: "Eats vegetables daily"},
}

// page is the data behind templates/index.html
type page struct {
	Submitting       bool
	AgeBrackets      []models.AgeBracket
	HealthConditions []checkbox
	Habits           []checkbox
	Modal            presentation.Modal
}

func newPage(state models.SubmissionState) page {
	return page{
		Submitting:       state.Status == models.StatusSubmitting,
		AgeBrackets:      models.AgeBrackets,
		HealthConditions: healthConditions,
		Habits:           habits,
		Modal:            presentation.Render(state),
	}
}
