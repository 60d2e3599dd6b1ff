package http

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/classifier"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/config"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/export"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/faultinfo"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/http/middleware"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/report"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/service"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/storage"
)

type Handler struct {
	inspections *service.InspectionService
	config      *config.Config
	log         zerolog.Logger
	r2          *storage.R2Client
}

func NewHandler(
	inspections *service.InspectionService,
	cfg *config.Config,
	log zerolog.Logger,
	r2 *storage.R2Client,
) *Handler {
	return &Handler{
		inspections: inspections,
		config:      cfg,
		log:         log,
		r2:          r2,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public endpoints
	public := r.Group("/api/v1")
	{
		public.POST("/inspections", h.createInspection)
		public.GET("/faults", h.listFaults)
		public.GET("/faults/:label", h.getFaultInfo)
		public.GET("/offices", h.findOffice)
		public.POST("/reports", h.createReport)
		public.GET("/reports/:id/download", h.downloadReport)
	}

	// Protected endpoints
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/inspections", h.listInspections)
		protected.DELETE("/inspections", h.cleanupInspections)
		protected.GET("/reports/export", h.exportReports)
	}
}

func (h *Handler) createInspection(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.config.Model.MaxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid multipart payload"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image file is required"))
		return
	}
	if fileHeader.Size > h.config.Model.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, errorResponse("image exceeds maximum upload size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("failed to read image"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("failed to read image"))
		return
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("unsupported image format, expected JPEG or PNG"))
		return
	}

	pincode := strings.TrimSpace(c.PostForm("pincode"))

	// Archive the image when object storage is configured; the
	// inspection proceeds without it otherwise.
	imageURL := ""
	if h.r2 != nil {
		contentType := "image/" + format
		url, err := h.r2.UploadELImage(c.Request.Context(), fileHeader.Filename, bytes.NewReader(raw), int64(len(raw)), contentType)
		if err != nil {
			h.log.Warn().
				Err(err).
				Str("filename", fileHeader.Filename).
				Msg("failed to archive EL image")
		} else {
			imageURL = url
		}
	}

	result, err := h.inspections.ProcessInspection(c.Request.Context(), img, fileHeader.Filename, imageURL, pincode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("inspection_id", result.Inspection.ID.String()).
		Str("fault_type", result.Inspection.Prediction.Label).
		Str("filename", fileHeader.Filename).
		Msg("processed EL image upload")

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) listFaults(c *gin.Context) {
	type faultEntry struct {
		Label string      `json:"label"`
		Info  interface{} `json:"info"`
	}
	entries := make([]faultEntry, 0, len(classifier.ClassNames))
	for _, label := range classifier.ClassNames {
		entries = append(entries, faultEntry{Label: label, Info: faultinfo.Get(label)})
	}
	c.JSON(http.StatusOK, successResponse(entries))
}

func (h *Handler) getFaultInfo(c *gin.Context) {
	label := c.Param("label")
	// Unknown labels return a default entry, not an error: the label
	// set is closed over the classifier's classes.
	c.JSON(http.StatusOK, successResponse(gin.H{
		"label": label,
		"info":  faultinfo.Get(label),
	}))
}

func (h *Handler) findOffice(c *gin.Context) {
	pincode := strings.TrimSpace(c.Query("pincode"))

	office, contact, err := h.inspections.FindOffice(pincode)
	if err != nil {
		if errors.Is(err, service.ErrNoOffice) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "No service office found for this pincode. Please contact our main office.",
			})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"office":  office,
		"contact": contact,
	}))
}

func (h *Handler) createReport(c *gin.Context) {
	var req service.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	rep, err := h.inspections.BuildReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, report.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
			return
		}
		if errors.Is(err, service.ErrNoOffice) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "No service office found for this pincode. Please contact our main office.",
			})
			return
		}
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("report_id", rep.ID.String()).
		Str("fault_type", rep.FaultType).
		Msg("fault report created")

	c.JSON(http.StatusCreated, successResponse(rep))
}

func (h *Handler) downloadReport(c *gin.Context) {
	text, createdAt, err := h.inspections.GetReportText(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("fault_report_%s.txt", createdAt.Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *Handler) listInspections(c *gin.Context) {
	var faultType *string
	if ft := strings.TrimSpace(c.Query("fault_type")); ft != "" {
		faultType = &ft
	}

	var from, to *string
	if f := strings.TrimSpace(c.Query("from")); f != "" {
		from = &f
	}
	if t := strings.TrimSpace(c.Query("to")); t != "" {
		to = &t
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	inspections, err := h.inspections.FindInspections(c.Request.Context(), faultType, from, to, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(inspections))
}

func (h *Handler) cleanupInspections(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, errorResponse("admin role required"))
		return
	}

	days := 90
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil {
			days = parsed
		}
	}

	deleted, err := h.inspections.Cleanup(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("user_id", principal.UserID.String()).
		Int64("deleted_count", deleted).
		Int("days", days).
		Msg("old inspections cleaned up")

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"deleted_count": deleted,
	})
}

func (h *Handler) exportReports(c *gin.Context) {
	var from, to *string
	if f := strings.TrimSpace(c.Query("from")); f != "" {
		from = &f
	}
	if t := strings.TrimSpace(c.Query("to")); t != "" {
		to = &t
	}

	reports, err := h.inspections.FindReports(c.Request.Context(), from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	workbook, err := export.ReportsWorkbook(reports)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build reports workbook")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", `attachment; filename="fault_reports.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("failed to stream reports workbook")
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
