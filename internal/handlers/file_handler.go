package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"docflow_backend/internal/middleware"
	"docflow_backend/internal/services"
	"docflow_backend/internal/services/dto"
	"docflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead - запас на поля формы сверх размера файла
const multipartOverhead = 1 << 20

type FileHandler struct {
	*BaseHandler
	documentService     services.DocumentService
	notificationService services.NotificationService
	gate                *middleware.Auth
	maxUploadSize       int64
}

func NewFileHandler(
	base *BaseHandler,
	documentService services.DocumentService,
	notificationService services.NotificationService,
	gate *middleware.Auth,
	maxUploadSize int64,
) *FileHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = services.DefaultMaxUploadSize
	}
	return &FileHandler{
		BaseHandler:         base,
		documentService:     documentService,
		notificationService: notificationService,
		gate:                gate,
		maxUploadSize:       maxUploadSize,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/file")
	{
		// Доступно без входа
		public := files.Group("", h.gate.OptionalUser())
		public.GET("/all", h.ListAll)
		public.GET("/info/:id", h.Info)
		public.GET("/download/:id", h.Download)
		public.GET("/doc-type", h.ListDocTypes)

		protected := files.Group("", h.gate.RequireUser())
		protected.POST("/upload", h.Upload)
		protected.GET("/my", h.My)
		protected.GET("/inwork", h.InWork)
		protected.PUT("/update/:id", h.Update)
		protected.POST("/replace/:id", h.Replace)
		protected.DELETE("/delete/:id", h.Delete)
	}
}

// Upload godoc
// @Summary Загрузить документ
// @Description Сохраняет файл и рассылает уведомления ответственным выбранного отдела
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param responsible formData int true "ID отдела-получателя"
// @Param doc_type formData int true "ID типа документа"
// @Param doc_number formData string false "Номер документа"
// @Param is_permanent formData bool false "Бессрочный"
// @Param valid_until formData string false "Срок действия YYYY-MM-DD"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /api/file/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)

	// форма разбирается вместе с файлом, поэтому превышение размера видно здесь
	file, cleanup, err := h.formFile(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer cleanup()

	var req dto.UploadDocumentRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	response, err := h.documentService.Upload(c.Request.Context(), h.GetDB(c), identity.UserID, &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// My godoc
// @Summary Мои документы со сводкой прочтения
// @Tags files
// @Produce json
// @Success 200 {array} dto.DocumentSummary
// @Router /api/file/my [get]
func (h *FileHandler) My(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	summary, err := h.notificationService.ReadSummary(h.GetDB(c), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// InWork godoc
// @Summary Документы в работе
// @Description Документы с непрочитанными уведомлениями текущего пользователя. all=true добавляет прочитанные.
// @Tags files
// @Produce json
// @Param all query bool false "Включить прочитанные"
// @Success 200 {array} dto.DocumentResponse
// @Router /api/file/inwork [get]
func (h *FileHandler) InWork(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	documents, err := h.notificationService.InWork(h.GetDB(c), identity.UserID, ParseQueryBool(c, "all", false))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

// ListAll godoc
// @Summary Все документы
// @Tags files
// @Produce json
// @Success 200 {array} dto.DocumentResponse
// @Router /api/file/all [get]
func (h *FileHandler) ListAll(c *gin.Context) {
	documents, err := h.documentService.ListAll(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

// Info godoc
// @Summary Карточка документа
// @Tags files
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {object} dto.DocumentInfoResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/file/info/{id} [get]
func (h *FileHandler) Info(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	info, err := h.documentService.GetInfo(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Download godoc
// @Summary Скачать документ
// @Tags files
// @Produce octet-stream
// @Param id path int true "ID документа"
// @Success 200 {file} file
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/file/download/{id} [get]
func (h *FileHandler) Download(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, err := h.documentService.Open(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Content.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, file.Size, contentType, file.Content, map[string]string{
		"Content-Disposition": ContentDisposition(file.Filename),
	})
}

// Update godoc
// @Summary Изменить метаданные документа
// @Description Только загрузивший. Для остальных документ не найден.
// @Tags files
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param request body dto.UpdateDocumentRequest true "Изменяемые поля"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/file/update/{id} [put]
func (h *FileHandler) Update(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateDocumentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.documentService.Update(c.Request.Context(), h.GetDB(c), identity.UserID, id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Replace godoc
// @Summary Заменить файл документа
// @Description Загрузивший или администратор
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID документа"
// @Param file formData file true "Новый файл"
// @Success 200 {object} dto.ReplaceResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/file/replace/{id} [post]
func (h *FileHandler) Replace(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)

	file, cleanup, err := h.formFile(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer cleanup()

	response, err := h.documentService.Replace(c.Request.Context(), h.GetDB(c), identity, id, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Delete godoc
// @Summary Удалить документ
// @Description Загрузивший или администратор. Уведомления удаляются вместе с документом.
// @Tags files
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/file/delete/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), h.GetDB(c), identity, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// ListDocTypes godoc
// @Summary Типы документов
// @Tags files
// @Produce json
// @Success 200 {array} dto.Ref
// @Router /api/file/doc-type [get]
func (h *FileHandler) ListDocTypes(c *gin.Context) {
	docTypes, err := h.documentService.ListDocTypes(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docTypes)
}

// formFile открывает поле "file" multipart-формы
func (h *FileHandler) formFile(c *gin.Context) (*dto.FilePayload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, apperrors.ErrFileTooLarge
		}
		return nil, nil, apperrors.ErrFileRequired
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, apperrors.InternalError(fmt.Errorf("open multipart file: %w", err))
	}

	return &dto.FilePayload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

// ContentDisposition - заголовок вложения с именем в UTF-8
func ContentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > 0x7e || r < 0x20 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return "attachment; filename=" + strconv.Quote(fallback) + "; filename*=UTF-8''" + url.PathEscape(filename)
}
