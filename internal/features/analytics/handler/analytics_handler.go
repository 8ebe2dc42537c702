package handler

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"shipping-analytics/internal/features/analytics/service"
	datasetsvc "shipping-analytics/internal/features/datasets/service"
	enrichsvc "shipping-analytics/internal/features/enrich/service"
)

// AnalyticsHandler handles HTTP requests for uploads and reports.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RegisterRoutes mounts the analytics endpoints on the given router.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/companies", h.ListCompanies)

	company := router.Group("/companies/:company")
	company.Post("/upload", h.UploadShipments)
	company.Post("/sla", h.UploadSLA)
	company.Post("/branches", h.UploadBranches)
	company.Post("/sample", h.LoadSample)
	company.Delete("/", h.ClearCompany)

	company.Get("/summary", h.Summary)
	company.Get("/reports/cities", h.Cities)
	company.Get("/reports/weekly", h.Weekly)
	company.Get("/reports/branches", h.Branches)
	company.Get("/reports/delays", h.Delays)
	company.Get("/reports/delay-summary", h.DelaySummary)
	company.Get("/reports/other-statuses", h.OtherStatuses)
	company.Get("/reports/unmatched-sla", h.UnmatchedSLA)
	company.Get("/reports/attempts", h.Attempts)

	company.Get("/export/cities", h.ExportCities)
	company.Get("/export/weekly", h.ExportWeekly)
	company.Get("/export/branches", h.ExportBranches)
	company.Get("/export/delays", h.ExportDelays)
	company.Get("/export/delay-summary", h.ExportDelaySummary)
	company.Get("/export/other-statuses", h.ExportOtherStatuses)
	company.Get("/export/unmatched-sla", h.ExportUnmatchedSLA)
}

func sessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals("session_id").(string); ok {
		return id
	}
	return ""
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, enrichsvc.ErrCompanyNotSupported):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrNoData):
		status = fiber.StatusNotFound
	case errors.Is(err, datasetsvc.ErrUnsupportedFile),
		errors.Is(err, datasetsvc.ErrEmptySLATable),
		errors.Is(err, enrichsvc.ErrNoRawData):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

func sendCSV(c *fiber.Ctx, name string, payload []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(payload)
}

// ListCompanies godoc
// @Summary List supported couriers
// @Description Lists every supported courier with the session's data state
// @Tags companies
// @Produce json
// @Success 200 {array} domain.CompanyStatus
// @Failure 500 {object} ErrorResponse
// @Router /companies [get]
func (h *AnalyticsHandler) ListCompanies(c *fiber.Ctx) error {
	statuses, err := h.analyticsService.Companies(c.UserContext(), sessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(statuses)
}

// UploadShipments godoc
// @Summary Upload a shipment file
// @Description Parses and enriches a courier shipment export (xlsx or csv)
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param company path string true "Courier name (aramex, smsa, niceone)"
// @Param file formData file true "Shipment file"
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/upload [post]
func (h *AnalyticsHandler) UploadShipments(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "file is required",
			RayID:   rayID(c),
		})
	}

	content, err := file.Open()
	if err != nil {
		return fail(c, err)
	}
	defer content.Close()

	result, err := h.analyticsService.UploadShipments(
		c.UserContext(), sessionID(c), c.Params("company"), file.Filename, content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// UploadSLA godoc
// @Summary Upload a city SLA target file
// @Description Parses city first-attempt targets and re-derives verdicts
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param company path string true "Courier name"
// @Param file formData file true "SLA file"
// @Success 200 {object} service.SLAUploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/sla [post]
func (h *AnalyticsHandler) UploadSLA(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "file is required",
			RayID:   rayID(c),
		})
	}

	content, err := file.Open()
	if err != nil {
		return fail(c, err)
	}
	defer content.Close()

	result, err := h.analyticsService.UploadSLA(
		c.UserContext(), sessionID(c), c.Params("company"), file.Filename, content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// UploadBranches godoc
// @Summary Upload branch assignment files
// @Description Joins (reference, branch, date) sub-files onto stored shipments
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param company path string true "Courier name"
// @Param files formData file true "Branch files"
// @Success 200 {object} service.BranchUploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/branches [post]
func (h *AnalyticsHandler) UploadBranches(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "at least one branch file is required",
			RayID:   rayID(c),
		})
	}

	files := make([]datasetsvc.NamedFile, 0, len(form.File["files"]))
	opened := make([]multipart.File, 0, len(form.File["files"]))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, header := range form.File["files"] {
		content, err := header.Open()
		if err != nil {
			return fail(c, err)
		}
		opened = append(opened, content)
		files = append(files, datasetsvc.NamedFile{Name: header.Filename, Content: content})
	}

	result, err := h.analyticsService.UploadBranches(
		c.UserContext(), sessionID(c), c.Params("company"), files)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// LoadSample godoc
// @Summary Load sample data
// @Description Loads a generated demo dataset for the courier
// @Tags uploads
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {object} service.UploadResult
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/sample [post]
func (h *AnalyticsHandler) LoadSample(c *fiber.Ctx) error {
	result, err := h.analyticsService.LoadSample(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// ClearCompany godoc
// @Summary Clear company data
// @Description Drops everything the session holds for the courier
// @Tags companies
// @Produce json
// @Param company path string true "Courier name"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company} [delete]
func (h *AnalyticsHandler) ClearCompany(c *fiber.Ctx) error {
	if err := h.analyticsService.Clear(c.UserContext(), sessionID(c), c.Params("company")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary Headline KPIs
// @Description Returns the KPI block for the courier's stored dataset
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {object} domain.Summary
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analyticsService.Summary(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// Cities godoc
// @Summary City performance report
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.CityPerformanceRow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/cities [get]
func (h *AnalyticsHandler) Cities(c *fiber.Ctx) error {
	rows, err := h.analyticsService.Cities(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// Weekly godoc
// @Summary Weekly performance report
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.WeeklyPerformanceRow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/weekly [get]
func (h *AnalyticsHandler) Weekly(c *fiber.Ctx) error {
	rows, err := h.analyticsService.Weekly(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// Branches godoc
// @Summary Branch performance report
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.BranchPerformanceRow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/branches [get]
func (h *AnalyticsHandler) Branches(c *fiber.Ctx) error {
	rows, err := h.analyticsService.Branches(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// Delays godoc
// @Summary Delayed shipments report
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.DelayedShipment
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/delays [get]
func (h *AnalyticsHandler) Delays(c *fiber.Ctx) error {
	rows, err := h.analyticsService.Delays(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// DelaySummary godoc
// @Summary Delay severity aggregate
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {object} domain.DelaySummary
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/delay-summary [get]
func (h *AnalyticsHandler) DelaySummary(c *fiber.Ctx) error {
	summary, err := h.analyticsService.DelaySummary(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// OtherStatuses godoc
// @Summary Unclassified status report
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.OtherStatusRow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/other-statuses [get]
func (h *AnalyticsHandler) OtherStatuses(c *fiber.Ctx) error {
	rows, err := h.analyticsService.OtherStatuses(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// UnmatchedSLA godoc
// @Summary Cities without SLA coverage
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.UnmatchedSLARow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/unmatched-sla [get]
func (h *AnalyticsHandler) UnmatchedSLA(c *fiber.Ctx) error {
	rows, err := h.analyticsService.UnmatchedSLA(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// Attempts godoc
// @Summary Delivery attempts breakdown
// @Tags reports
// @Produce json
// @Param company path string true "Courier name"
// @Success 200 {array} domain.AttemptsRow
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/reports/attempts [get]
func (h *AnalyticsHandler) Attempts(c *fiber.Ctx) error {
	rows, err := h.analyticsService.Attempts(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// ExportCities godoc
// @Summary Export the city report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/cities [get]
func (h *AnalyticsHandler) ExportCities(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportCities(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_cities.csv", payload)
}

// ExportWeekly godoc
// @Summary Export the weekly report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/weekly [get]
func (h *AnalyticsHandler) ExportWeekly(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportWeekly(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_weekly.csv", payload)
}

// ExportBranches godoc
// @Summary Export the branch report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/branches [get]
func (h *AnalyticsHandler) ExportBranches(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportBranches(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_branches.csv", payload)
}

// ExportDelays godoc
// @Summary Export the delayed shipments report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/delays [get]
func (h *AnalyticsHandler) ExportDelays(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportDelays(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_delays.csv", payload)
}

// ExportDelaySummary godoc
// @Summary Export the delay backlog summary as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/delay-summary [get]
func (h *AnalyticsHandler) ExportDelaySummary(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportDelaySummary(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_delay_summary.csv", payload)
}

// ExportOtherStatuses godoc
// @Summary Export the unclassified status report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/other-statuses [get]
func (h *AnalyticsHandler) ExportOtherStatuses(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportOtherStatuses(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_other_statuses.csv", payload)
}

// ExportUnmatchedSLA godoc
// @Summary Export the uncovered-cities report as CSV
// @Tags exports
// @Produce text/csv
// @Param company path string true "Courier name"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company}/export/unmatched-sla [get]
func (h *AnalyticsHandler) ExportUnmatchedSLA(c *fiber.Ctx) error {
	payload, err := h.analyticsService.ExportUnmatchedSLA(c.UserContext(), sessionID(c), c.Params("company"))
	if err != nil {
		return fail(c, err)
	}
	return sendCSV(c, c.Params("company")+"_unmatched_sla.csv", payload)
}
