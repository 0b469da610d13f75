package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"farmagent/internal/model"
	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

var errImageTooLarge = errors.New("image exceeds the upload size limit")

// DiagnosisHandler handles diagnosis and image analysis requests
type DiagnosisHandler struct {
	assistant      *service.AssistantService
	maxUploadBytes int64
}

// NewDiagnosisHandler creates a new diagnosis handler
func NewDiagnosisHandler(assistant *service.AssistantService, maxUploadBytes int64) *DiagnosisHandler {
	return &DiagnosisHandler{
		assistant:      assistant,
		maxUploadBytes: maxUploadBytes,
	}
}

// Diagnose handles POST /api/diagnose
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	var req model.DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	response, err := h.assistant.Diagnose(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to diagnose: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, response)
}

// AnalyzeImage handles POST /api/analyze-image
func (h *DiagnosisHandler) AnalyzeImage(c *gin.Context) {
	image, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	analysis, err := h.assistant.AnalyzeImage(c.Request.Context(), image, mimeType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to analyze image with AI")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// DiagnoseImage handles POST /api/diagnose/image.
// Optional form fields crop and symptoms are used if analysis is unavailable.
func (h *DiagnosisHandler) DiagnoseImage(c *gin.Context) {
	image, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	manual := &model.DiagnosisRequest{
		Crop:     c.PostForm("crop"),
		Symptoms: splitSymptoms(c.PostFormArray("symptoms")),
	}

	response, err := h.assistant.DiagnoseImage(c.Request.Context(), image, mimeType, manual)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to diagnose image: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, response)
}

// Symptoms handles GET /api/symptoms
func (h *DiagnosisHandler) Symptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "symptoms": model.SymptomVocabulary})
}

// readImage validates and reads the "image" form file, writing the error response itself
func (h *DiagnosisHandler) readImage(c *gin.Context) ([]byte, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, errImageTooLarge.Error())
			return nil, "", false
		}
		respondError(c, http.StatusBadRequest, "No image file provided")
		return nil, "", false
	}
	if fh.Size > h.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, errImageTooLarge.Error())
		return nil, "", false
	}

	data, err := readFormFile(fh)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read image: "+err.Error())
		return nil, "", false
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		respondError(c, http.StatusBadRequest, "Only image files are allowed")
		return nil, "", false
	}

	return data, mimeType, true
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// splitSymptoms accepts repeated fields and comma separated lists
func splitSymptoms(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
