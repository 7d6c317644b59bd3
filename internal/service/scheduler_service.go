package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-scheduler-api/internal/dto"
	"github.com/noah-isme/course-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/course-scheduler-api/pkg/errors"
)

// SchedulerService orchestrates strategy selection, runs the shared
// post-processing stage, and fans out scenario comparisons. It is the only
// component aware of both solving paths.
type SchedulerService struct {
	validator        *validator.Validate
	logger           *zap.Logger
	metrics          *MetricsService
	scenarioWorkers  int
	timeLimitSeconds int
	numWorkers       int
}

// SchedulerConfig governs orchestrator behaviour. TimeLimitSeconds and
// NumWorkers act as server-wide solver defaults; a request that sets its own
// options always wins.
type SchedulerConfig struct {
	TimeLimitSeconds int
	NumWorkers       int
	ScenarioWorkers  int
}

// NewSchedulerService wires the orchestrator.
func NewSchedulerService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SchedulerConfig) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ScenarioWorkers <= 0 {
		cfg.ScenarioWorkers = 4
	}
	if cfg.TimeLimitSeconds <= 0 {
		cfg.TimeLimitSeconds = 15
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 8
	}
	return &SchedulerService{
		validator:        validate,
		logger:           logger,
		metrics:          metrics,
		scenarioWorkers:  cfg.ScenarioWorkers,
		timeLimitSeconds: cfg.TimeLimitSeconds,
		numWorkers:       cfg.NumWorkers,
	}
}

// normalize fills the solver budget from service configuration when the
// request leaves it unset, then applies the remaining documented defaults.
func (s *SchedulerService) normalize(input *models.SchedulingInput) {
	if input.Options.TimeLimitSeconds <= 0 {
		input.Options.TimeLimitSeconds = s.timeLimitSeconds
	}
	if input.Options.NumWorkers <= 0 {
		input.Options.NumWorkers = s.numWorkers
	}
	input.Normalize()
}

// Generate solves one scheduling input under the requested strategy and
// returns the result plus its validation report.
func (s *SchedulerService) Generate(ctx context.Context, input models.SchedulingInput, mode string) (*models.ScheduleResult, *models.ValidationReport, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scheduling payload")
	}
	if mode == "" {
		mode = models.ModeAuto
	}
	if mode != models.ModeAuto && mode != models.ModeCPSAT && mode != models.ModeHeuristic {
		return nil, nil, appErrors.Clone(appErrors.ErrUnsupportedMode, "solver_mode must be one of auto, cp_sat, heuristic")
	}

	input = input.Clone()
	s.normalize(&input)

	runID := uuid.NewString()
	result, validation := s.solve(ctx, input, mode)
	s.logger.Info("schedule_generated",
		zap.String("run_id", runID),
		zap.String("solver_mode", mode),
		zap.String("status", result.Status),
		zap.String("solver", result.Solver),
		zap.Int("assignments", len(result.Assignments)),
		zap.Float64("runtime_seconds", result.RuntimeSeconds),
	)
	if !validation.Valid {
		s.logger.Warn("schedule_validation_issues",
			zap.String("run_id", runID),
			zap.Int("issues", len(validation.Issues)),
		)
	}
	if s.metrics != nil {
		s.metrics.ObserveSolve(result.Solver, result.Status, result.RuntimeSeconds)
	}
	return result, validation, nil
}

// Validate runs the correctness-check API over an arbitrary assignment list.
func (s *SchedulerService) Validate(input models.SchedulingInput, assignments []models.Assignment) (*models.ValidationReport, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scheduling payload")
	}
	input = input.Clone()
	s.normalize(&input)
	report := ValidateSchedule(input, assignments)
	s.logger.Info("schedule_validated",
		zap.Bool("valid", report.Valid),
		zap.Int("issues", len(report.Issues)),
	)
	return &report, nil
}

// Compare solves independent what-if scenarios, each on a deep copy of the
// base input with only options and solver mode substituted, and ranks them
// by fewest hard violations, then highest objective, then highest coverage.
func (s *SchedulerService) Compare(ctx context.Context, base models.SchedulingInput, scenarios []dto.ScenarioConfig) (*dto.CompareResponse, error) {
	if err := s.validator.Struct(base); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scheduling payload")
	}
	for _, scenario := range scenarios {
		if err := s.validator.Struct(scenario); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scenario configuration")
		}
	}

	results := make([]dto.ScenarioResult, len(scenarios))

	workers := s.scenarioWorkers
	if workers > len(scenarios) {
		workers = len(scenarios)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for idx, scenario := range scenarios {
		wg.Add(1)
		go func(idx int, scenario dto.ScenarioConfig) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scenarioInput := base.Clone()
			scenarioInput.Options = scenario.Options
			s.normalize(&scenarioInput)
			mode := scenario.SolverMode
			if mode == "" {
				mode = models.ModeAuto
			}
			result, validation := s.solve(ctx, scenarioInput, mode)
			results[idx] = dto.ScenarioResult{Name: scenario.Name, Result: result, Validation: validation}
		}(idx, scenario)
	}
	wg.Wait()

	best := ""
	if len(results) > 0 {
		ranked := append([]dto.ScenarioResult(nil), results...)
		sort.SliceStable(ranked, func(i, j int) bool {
			left, right := ranked[i].Result, ranked[j].Result
			if left.Metrics.HardViolations != right.Metrics.HardViolations {
				return left.Metrics.HardViolations < right.Metrics.HardViolations
			}
			if left.ObjectiveValue != right.ObjectiveValue {
				return left.ObjectiveValue > right.ObjectiveValue
			}
			return left.Metrics.CoveragePct > right.Metrics.CoveragePct
		})
		best = ranked[0].Name
	}

	s.logger.Info("scenario_comparison_complete",
		zap.Int("scenarios", len(results)),
		zap.String("best", best),
	)
	return &dto.CompareResponse{Scenarios: results, BestScenario: best}, nil
}

// solve runs the strategy rules over a normalized input and funnels every
// path through the same validation/objective/metrics stage.
func (s *SchedulerService) solve(ctx context.Context, input models.SchedulingInput, mode string) (*models.ScheduleResult, *models.ValidationReport) {
	if mode == models.ModeHeuristic {
		out := solveWithHeuristic(input)
		return s.buildResult(input, out.status, models.SolverHeuristic, out.runtime, out.assignments, out.notes)
	}

	exact := solveWithCPSAT(ctx, input)
	if exact.status == models.StatusOptimal || exact.status == models.StatusFeasible {
		return s.buildResult(input, exact.status, models.SolverCPSAT, exact.runtime, exact.assignments, exact.notes)
	}

	if mode == models.ModeAuto && input.Options.FallbackEnabled() {
		fallback := solveWithHeuristic(input)
		notes := []string{"CP-SAT status: " + exact.status + ". Triggering fallback heuristic."}
		notes = append(notes, exact.notes...)
		notes = append(notes, fallback.notes...)
		return s.buildResult(input, fallback.status, models.SolverHeuristic, exact.runtime+fallback.runtime, fallback.assignments, notes)
	}

	return s.buildResult(input, exact.status, models.SolverCPSAT, exact.runtime, exact.assignments, exact.notes)
}

// buildResult is the single chokepoint guaranteeing result-shape
// consistency regardless of which solver ran.
func (s *SchedulerService) buildResult(
	input models.SchedulingInput,
	status string,
	solverName string,
	runtime time.Duration,
	assignments []models.Assignment,
	notes []string,
) (*models.ScheduleResult, *models.ValidationReport) {
	validation := ValidateSchedule(input, assignments)
	breakdown := computeObjectiveBreakdown(input, assignments, input.Options.ObjectiveWeights)
	metrics := buildMetrics(input, assignments, validation, breakdown)

	sorted := append([]models.Assignment(nil), assignments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SessionID < sorted[j].SessionID })
	if notes == nil {
		notes = []string{}
	}

	result := &models.ScheduleResult{
		Status:         status,
		Solver:         solverName,
		RuntimeSeconds: round4(runtime.Seconds()),
		ObjectiveValue: breakdown[models.ObjectiveTotal],
		Assignments:    sorted,
		Metrics:        metrics,
		Notes:          notes,
	}
	return result, &validation
}
