package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-scheduler-api/internal/dto"
	"github.com/noah-isme/course-scheduler-api/internal/ingest"
	"github.com/noah-isme/course-scheduler-api/internal/models"
	"github.com/noah-isme/course-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/course-scheduler-api/pkg/errors"
	"github.com/noah-isme/course-scheduler-api/pkg/export"
	"github.com/noah-isme/course-scheduler-api/pkg/response"
)

// SchedulerHandler exposes the solving, validation, comparison and export
// endpoints.
type SchedulerHandler struct {
	service        *service.SchedulerService
	csvExporter    *export.CSVExporter
	pdfExporter    *export.PDFExporter
	maxUploadBytes int64
}

// NewSchedulerHandler constructs handler.
func NewSchedulerHandler(svc *service.SchedulerService, maxUploadBytes int64) *SchedulerHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 * 1024 * 1024
	}
	return &SchedulerHandler{
		service:        svc,
		csvExporter:    export.NewCSVExporter(),
		pdfExporter:    export.NewPDFExporter(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate godoc
// @Summary Solve a scheduling input
// @Tags Schedules
// @Accept json
// @Produce json
// @Param solver_mode query string false "auto | cp_sat | heuristic"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *SchedulerHandler) Generate(c *gin.Context) {
	var input models.SchedulingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed scheduling payload"))
		return
	}

	mode := strings.ToLower(c.DefaultQuery("solver_mode", models.ModeAuto))
	result, validation, err := h.service.Generate(c.Request.Context(), input, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.GenerateResponse{Result: result, Validation: validation})
}

// GenerateCSV godoc
// @Summary Solve a scheduling input uploaded as CSV files
// @Tags Schedules
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/generate/csv [post]
func (h *SchedulerHandler) GenerateCSV(c *gin.Context) {
	input, err := h.readCSVInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mode := strings.ToLower(c.DefaultQuery("solver_mode", models.ModeAuto))
	result, validation, err := h.service.Generate(c.Request.Context(), input, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.GenerateResponse{Result: result, Validation: validation})
}

// Validate godoc
// @Summary Validate an assignment list against a scheduling input
// @Tags Schedules
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/validate [post]
func (h *SchedulerHandler) Validate(c *gin.Context) {
	var req dto.ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed validation payload"))
		return
	}

	report, err := h.service.Validate(req.Data, req.Assignments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Compare godoc
// @Summary Solve independent scenarios and rank them
// @Tags Schedules
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/compare [post]
func (h *SchedulerHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed comparison payload"))
		return
	}

	comparison, err := h.service.Compare(c.Request.Context(), req.Data, req.Scenarios)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comparison)
}

// CompareCSV godoc
// @Summary Compare scenarios over a CSV-uploaded dataset
// @Tags Schedules
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/compare/csv [post]
func (h *SchedulerHandler) CompareCSV(c *gin.Context) {
	input, err := h.readCSVInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw := strings.TrimSpace(c.PostForm("scenarios_json"))
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "scenarios_json form field is required"))
		return
	}
	var scenarios []dto.ScenarioConfig
	if err := json.Unmarshal([]byte(raw), &scenarios); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, "scenarios_json is not valid JSON"))
		return
	}

	comparison, err := h.service.Compare(c.Request.Context(), input, scenarios)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comparison)
}

// Export godoc
// @Summary Render a solve result as CSV or PDF
// @Tags Export
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv | pdf"
// @Router /schedules/export [post]
func (h *SchedulerHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed export payload"))
		return
	}
	if req.Result == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "result is required"))
		return
	}

	dataset := export.ScheduleDataset(req.Result, req.Data)
	title := export.ScheduleTitle(req.Title, req.Result)

	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		payload, err := h.csvExporter.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrExport.Code, appErrors.ErrExport.Status, "could not render CSV export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="schedule.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdfExporter.Render(dataset, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrExport.Code, appErrors.ErrExport.Status, "could not render PDF export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="schedule.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

// readCSVInput assembles a SchedulingInput from the four uploaded CSV
// documents plus the optional options_json field.
func (h *SchedulerHandler) readCSVInput(c *gin.Context) (models.SchedulingInput, error) {
	var input models.SchedulingInput

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	courses, err := h.formFile(c, "courses_file")
	if err != nil {
		return input, err
	}
	defer courses.Close()
	instructors, err := h.formFile(c, "instructors_file")
	if err != nil {
		return input, err
	}
	defer instructors.Close()
	rooms, err := h.formFile(c, "rooms_file")
	if err != nil {
		return input, err
	}
	defer rooms.Close()
	timeSlots, err := h.formFile(c, "time_slots_file")
	if err != nil {
		return input, err
	}
	defer timeSlots.Close()

	return ingest.AssembleInput(courses, instructors, rooms, timeSlots, c.PostForm("options_json"))
}

func (h *SchedulerHandler) formFile(c *gin.Context, field string) (multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, field+" is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, "could not open "+field)
	}
	return file, nil
}
