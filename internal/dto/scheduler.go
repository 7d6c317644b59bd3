package dto

import "github.com/noah-isme/course-scheduler-api/internal/models"

// GenerateResponse pairs a solve result with its validation report.
type GenerateResponse struct {
	Result     *models.ScheduleResult   `json:"result"`
	Validation *models.ValidationReport `json:"validation"`
}

// ValidationRequest asks for a standalone correctness check of an
// assignment list against input data.
type ValidationRequest struct {
	Data        models.SchedulingInput `json:"data" validate:"required"`
	Assignments []models.Assignment    `json:"assignments"`
}

// ScenarioConfig names one what-if configuration for comparison.
type ScenarioConfig struct {
	Name       string               `json:"name" validate:"required"`
	Options    models.SolverOptions `json:"options"`
	SolverMode string               `json:"solver_mode" validate:"omitempty,oneof=auto cp_sat heuristic"`
}

// CompareRequest solves the same input under several scenarios.
type CompareRequest struct {
	Data      models.SchedulingInput `json:"data" validate:"required"`
	Scenarios []ScenarioConfig       `json:"scenarios" validate:"required,min=1,dive"`
}

// ScenarioResult is one scenario's outcome.
type ScenarioResult struct {
	Name       string                   `json:"name"`
	Result     *models.ScheduleResult   `json:"result"`
	Validation *models.ValidationReport `json:"validation"`
}

// CompareResponse ranks scenarios; BestScenario is empty when no scenarios
// were provided.
type CompareResponse struct {
	Scenarios    []ScenarioResult `json:"scenarios"`
	BestScenario string           `json:"best_scenario,omitempty"`
}

// ExportRequest renders a solve result as a downloadable table. Data is
// optional; when present slot ids are expanded into day and time columns.
type ExportRequest struct {
	Title  string                  `json:"title"`
	Result *models.ScheduleResult  `json:"result" validate:"required"`
	Data   *models.SchedulingInput `json:"data"`
}
