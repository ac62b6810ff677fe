package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/service"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	logger   Logger

	// one document is generated at a time
	generate sync.Mutex
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// FilterRequest carries the kintone query filter
type FilterRequest struct {
	Filter string `form:"filter"`
}

// InvoiceRequest selects the invoice to print
type InvoiceRequest struct {
	Filter    string `json:"filter"`
	InvoiceNo string `json:"invoice_no" binding:"required"`
}

// InvoiceResponse represents the invoice generation result
type InvoiceResponse struct {
	GenerationID string `json:"generation_id,omitempty"`
	InvoiceNo    string `json:"invoice_no"`
	FilePath     string `json:"file_path"`
	LineItems    int    `json:"line_items"`
}

// ReportRequest selects the columns and layout of a report
type ReportRequest struct {
	Filter       string                   `json:"filter"`
	Display      []string                 `json:"display"`
	Encode       []string                 `json:"encode"`
	SuppressZero []string                 `json:"suppress_zero"`
	Format       string                   `json:"format"`
	Preferences  *preferences.Preferences `json:"preferences,omitempty"`
}

// ReportResponse represents the report generation result
type ReportResponse struct {
	GenerationID     string `json:"generation_id,omitempty"`
	FilePath         string `json:"file_path"`
	Format           string `json:"format"`
	Rows             int    `json:"rows"`
	Skipped          int    `json:"skipped"`
	PreferencesSaved bool   `json:"preferences_saved"`
}

// ListHistoryRequest represents query parameters for listing generations
type ListHistoryRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ListRecords handles GET /api/records
func (h *Handlers) ListRecords(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	records, err := h.services.Records.ListRecords(c.Request.Context(), req.Filter)
	if err != nil {
		h.logger.Error("Failed to list records", "error", err)
		h.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// ListColumns handles GET /api/columns
func (h *Handlers) ListColumns(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	columns, err := h.services.Records.ListColumns(c.Request.Context(), req.Filter)
	if err != nil {
		h.logger.Error("Failed to list columns", "error", err)
		h.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: columns})
}

// GenerateInvoice handles POST /api/invoices
func (h *Handlers) GenerateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invoice_no is required")
		return
	}

	h.generate.Lock()
	defer h.generate.Unlock()

	result, err := h.services.Invoice.GenerateInvoice(c.Request.Context(), req.Filter, req.InvoiceNo)
	if err != nil {
		h.logger.Error("Failed to generate invoice", "invoice_no", req.InvoiceNo, "error", err)
		h.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: InvoiceResponse{
			GenerationID: result.GenerationID,
			InvoiceNo:    result.Number,
			FilePath:     result.FilePath,
			LineItems:    result.LineItems,
		},
	})
}

// GenerateReport handles POST /api/reports
func (h *Handlers) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	h.generate.Lock()
	defer h.generate.Unlock()

	result, err := h.services.Report.GenerateReport(c.Request.Context(), service.ReportRequest{
		Filter:      req.Filter,
		Display:     req.Display,
		Encode:      req.Encode,
		Suppress:    req.SuppressZero,
		Format:      req.Format,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.logger.Error("Failed to generate report", "error", err)
		h.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: ReportResponse{
			GenerationID:     result.GenerationID,
			FilePath:         result.FilePath,
			Format:           result.Format,
			Rows:             result.Rows,
			Skipped:          result.Skipped,
			PreferencesSaved: result.PreferencesSaved,
		},
	})
}

// GetPreferences handles GET /api/preferences
func (h *Handlers) GetPreferences(c *gin.Context) {
	prefs, err := h.services.Report.GetPreferences(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load preferences", "error", err)
		h.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: prefs})
}

// ListHistory handles GET /api/history
func (h *Handlers) ListHistory(c *gin.Context) {
	var req ListHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	gens, err := h.services.History.ListGenerations(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list history", "error", err)
		h.fail(c, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gens})
}

// GetHistory handles GET /api/history/:id
func (h *Handlers) GetHistory(c *gin.Context) {
	id := c.Param("id")

	gen, err := h.services.History.GetGeneration(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get generation", "id", id, "error", err)
		h.fail(c, http.StatusInternalServerError, "failed to retrieve generation")
		return
	}
	if gen == nil {
		h.fail(c, http.StatusNotFound, "generation not found")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gen})
}

func (h *Handlers) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}

// failWith maps the error taxonomy onto status codes
func (h *Handlers) failWith(c *gin.Context, err error) {
	h.fail(c, StatusFor(err), err.Error())
}

// StatusFor returns the HTTP status for err
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
