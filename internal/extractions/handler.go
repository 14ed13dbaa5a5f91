package extractions

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resumeats-backend/internal/extract"
	"resumeats-backend/internal/llm"
	"resumeats-backend/internal/shared/server/middleware"
	"resumeats-backend/internal/shared/server/respond"
	"resumeats-backend/internal/shared/storage/object"
	"resumeats-backend/internal/shared/telemetry"
	"resumeats-backend/resume/model"
	"resumeats-backend/resume/render"
)

// Handler wires HTTP handlers to the service. Store is optional; when set,
// uploads and their extracted text are persisted for later inspection.
type Handler struct {
	Svc   *Service
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Store: store}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
	rg.POST("/extract", h.extract)
	rg.GET("/extractions", h.list)
	rg.GET("/extractions/:id", h.get)
	rg.POST("/generate", h.generate)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxUploadBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	text, err := h.extractUpload(c, data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrEmptyFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Arquivo vazio.", nil)
		case errors.Is(err, extract.ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Arquivo muito grande. Maximo: 5MB.", nil)
		case errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Formato nao suportado. Use PDF ou DOCX.", nil)
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Nao foi possivel extrair texto do arquivo.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Erro ao processar arquivo.", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ParseResponse{
		Success:      true,
		Filename:     fileHeader.Filename,
		DetectedType: shortTypeName(extract.DetectFileType(data)),
		Text:         text,
		Message:      "Texto extraido com sucesso. Agora envie para a IA.",
	})
}

// extractUpload extracts text from the upload. With a store configured the
// file is persisted first and the text derived from the stored copy.
func (h *Handler) extractUpload(c *gin.Context, data []byte, contentType string, filename string) (string, error) {
	ctx := c.Request.Context()
	if h.Store == nil {
		return extract.ExtractTextFromBytes(ctx, data, contentType, filename)
	}

	userID := middleware.UserIDFromContext(c)
	key, _, _, err := h.Store.Save(ctx, userID, filename, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("parse.store_failed", map[string]any{"error": err.Error()})
		return extract.ExtractTextFromBytes(ctx, data, contentType, filename)
	}
	return extract.ExtractText(ctx, h.Store, key, contentType, filename)
}

func shortTypeName(mimeType string) string {
	switch mimeType {
	case extract.MimePDF:
		return "pdf"
	case extract.MimeDOCX:
		return "docx"
	default:
		return ""
	}
}

func (h *Handler) extract(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ext, data, err := h.Svc.Extract(c.Request.Context(), userID, req.Text)
	if ext.ID != "" {
		c.Set("extractionId", ext.ID)
		c.Set("extractionStatus", ext.Status)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyText):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Texto muito curto ou vazio.", nil)
		case errors.Is(err, ErrDecodeFailure):
			respond.Error(c, http.StatusUnprocessableEntity, "decode_failure", "Tivemos dificuldade em interpretar seu currículo. Tente simplificar o layout do documento.", nil)
		case errors.Is(err, ErrSchemaFailure):
			respond.Error(c, http.StatusUnprocessableEntity, "schema_failure", err.Error(), nil)
		case errors.Is(err, llm.ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "Servico de IA temporariamente indisponivel por limite de uso. Tente novamente em alguns minutos.", nil)
		case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, llm.ErrInvalidKey), errors.Is(err, llm.ErrModelUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "ai_misconfigured", err.Error(), nil)
		case errors.Is(err, llm.ErrEmptyResponse):
			respond.Error(c, http.StatusBadGateway, "ai_empty_response", "Não conseguimos processar seu currículo no momento. Tente novamente em alguns instantes.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Erro inesperado ao extrair dados com IA.", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ExtractResponse{
		Success: true,
		ID:      ext.ID,
		Data:    data,
		Message: "Dados extraidos com sucesso. Revise antes de gerar o curriculo.",
	})
}

func (h *Handler) list(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list extractions", nil)
		return
	}

	resp := make([]ExtractionResponse, 0, len(items))
	for _, ext := range items {
		resp = append(resp, toResponse(ext, false))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	ext, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "extraction not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch extraction", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(ext, true))
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	payload := req.Payload()
	if len(payload) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeData is required", nil)
		return
	}

	var data model.ResumeData
	if err := json.Unmarshal(payload, &data); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume data", nil)
		return
	}

	now := time.Now()
	docx, err := render.RenderDocx(data, now)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	filename := render.BuildFilename(data.PersonalInfo.FullName, now)
	if h.Store != nil {
		userID := middleware.UserIDFromContext(c)
		if _, _, _, err := h.Store.Save(c.Request.Context(), userID, filename, bytes.NewReader(docx)); err != nil {
			telemetry.Error("generate.store_failed", map[string]any{"error": err.Error()})
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, extract.MimeDOCX, docx)
}
