package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"video2csv/internal/api/errors"
	"video2csv/internal/api/middleware"
	"video2csv/internal/api/v1/dto"
	"video2csv/internal/app/converter"
	"video2csv/internal/app/model"
)

// Converter runs one video through the pipeline
type Converter interface {
	Convert(ctx context.Context, input model.MediaInput) (*converter.Result, error)
}

// TranscriptionHandler handles upload and download endpoints
type TranscriptionHandler struct {
	converter      Converter
	outputDir      string
	maxUploadBytes int64
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(conv Converter, outputDir string, maxUploadBytes int64) *TranscriptionHandler {
	return &TranscriptionHandler{
		converter:      conv,
		outputDir:      outputDir,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles POST /api/v1/transcriptions
// Transcribes the multipart "file" field and returns the table rows
//
// @Summary Transcribe a video
// @Description Extracts the audio track of the uploaded video, transcribes it with the configured backend and writes a table
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Video file"
// @Success 201 {object} dto.TranscriptionResponse "Transcript rows and export name"
// @Failure 400 {object} errors.APIError "Missing file field"
// @Failure 422 {object} errors.APIError "Unreadable video or empty transcript"
// @Failure 502 {object} errors.APIError "Backend failure or unrecognized response"
// @Failure 504 {object} errors.APIError "Backend timeout"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Create(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("multipart field 'file' is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("cannot read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.converter.Convert(c.Request.Context(), model.MediaInput{
		Reader:   file,
		Filename: header.Filename,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	name := filepath.Base(result.OutputPath)
	c.JSON(http.StatusCreated, dto.TranscriptionResponse{
		RunID:         result.RunID,
		Backend:       result.Backend,
		OutputName:    name,
		DownloadURL:   "/api/v1/exports/" + name,
		AudioDuration: result.AudioDuration,
		FullText:      result.Transcript.FullText,
		Rows:          result.Rows,
	})
}

// Download handles GET /api/v1/exports/:name
//
// @Summary Download an export
// @Description Downloads a table previously written by a transcription
// @Tags exports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name path string true "Export file name, e.g. meeting.csv"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} errors.APIError "Invalid export name"
// @Failure 404 {object} errors.APIError "Export not found"
// @Router /exports/{name} [get]
func (h *TranscriptionHandler) Download(c *gin.Context) {
	name := c.Param("name")
	ext := strings.ToLower(filepath.Ext(name))
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") || (ext != ".csv" && ext != ".xlsx") {
		middleware.HandleError(c, errors.NewBadRequestError("invalid export name"))
		return
	}

	path := filepath.Join(h.outputDir, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		middleware.HandleError(c, errors.NewNotFoundError("export "+name))
		return
	}

	c.FileAttachment(path, name)
}
