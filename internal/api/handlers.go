package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/generator"
	"github.com/abdulachik/descricoes/internal/health"
	"github.com/abdulachik/descricoes/internal/prompt"
	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API on top of an App.
type Handler struct {
	app *app.App
}

// NewHandler creates a handler for a.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Please provide your email and password", nil)
		return
	}

	res, err := h.app.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusCreated, res, "Account created")
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Please provide your email and password", nil)
		return
	}

	res, err := h.app.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, res, "Logged in")
}

// Catalog lists every choice the product form offers.
func (h *Handler) Catalog(c *gin.Context) {
	success(c, http.StatusOK, gin.H{
		"templates":  catalog.List(),
		"categories": prompt.Categories,
		"tones":      prompt.Tones,
		"sizes":      prompt.Sizes(),
		"formats":    prompt.Formats,
		"models":     generator.GeminiModels,
	}, "")
}

func (h *Handler) Preview(c *gin.Context) {
	var in prompt.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid product data", nil)
		return
	}

	text, err := h.app.Preview(in)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"prompt": text}, "")
}

type generateRequest struct {
	prompt.ProductInput
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
}

func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid product data", nil)
		return
	}

	mc := h.app.DefaultModelConfig()
	if req.Model != "" {
		mc.Model = req.Model
	}
	if req.Temperature != nil {
		mc.Temperature = *req.Temperature
	}

	res, err := h.app.Generate(c.Request.Context(), sessionFrom(c), req.ProductInput, mc)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusCreated, res, "Description generated")
}

func (h *Handler) ListDescriptions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"), "Invalid limit", nil)
			return
		}
		limit = n
	}

	items, err := h.app.History(c.Request.Context(), sessionFrom(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, items, "")
}

func (h *Handler) GetDescription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.app.Description(c.Request.Context(), sessionFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, d, "")
}

func (h *Handler) DescriptionPage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.app.ExportPage(c.Request.Context(), sessionFrom(c), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) ClearDescriptions(c *gin.Context) {
	removed, err := h.app.ClearHistory(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"removed": removed}, "History cleared")
}

func (h *Handler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.app.ExportCSV(c.Request.Context(), sessionFrom(c), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="historico.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) Quota(c *gin.Context) {
	report, err := h.app.Quota(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, report, "")
}

func (h *Handler) Analytics(c *gin.Context) {
	summary, err := h.app.Analytics(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, summary, "")
}

type planRequest struct {
	Plan string `json:"plan" binding:"required"`
}

func (h *Handler) ChangePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Please provide a plan", nil)
		return
	}

	acct, err := h.app.ChangePlan(c.Request.Context(), sessionFrom(c), req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, acct, "Plan updated")
}

// Health reports component status. A broken database is fatal; a generator
// or provider problem only degrades the service.
func (h *Handler) Health(c *gin.Context) {
	statuses := h.app.Health.Check(c.Request.Context())

	status, code := "ok", http.StatusOK
	if dbStatus, ok := statuses[health.Database]; ok && !dbStatus.Healthy {
		status, code = "unavailable", http.StatusServiceUnavailable
	} else if !h.app.Health.Healthy() {
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": statuses,
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, errors.New("id must be a positive integer"), "Invalid id", nil)
		return 0, false
	}
	return id, true
}
