package handlers

import (
	"net/http"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/middleware"
	"docflow_backend/internal/services"
	"docflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler - справочники, ответственные и журналы
type AdminHandler struct {
	*BaseHandler
	departmentService  services.DepartmentService
	docTypeService     services.DocTypeService
	responsibleService services.ResponsibleService
	logService         services.LogService
	gate               *middleware.Auth
}

func NewAdminHandler(
	base *BaseHandler,
	departmentService services.DepartmentService,
	docTypeService services.DocTypeService,
	responsibleService services.ResponsibleService,
	logService services.LogService,
	gate *middleware.Auth,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		departmentService:  departmentService,
		docTypeService:     docTypeService,
		responsibleService: responsibleService,
		logService:         logService,
		gate:               gate,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")

	// список отделов нужен форме загрузки
	admin.GET("/department", h.gate.RequireUser(), h.ListDepartments)

	protected := admin.Group("", h.gate.RequireUser(), h.gate.RequireAdmin())
	{
		protected.POST("/department", h.CreateDepartment)
		protected.PUT("/department/:id", h.RenameDepartment)
		protected.DELETE("/department/:id", h.DeleteDepartment)

		protected.POST("/doc-type", h.CreateDocType)
		protected.PUT("/doc-type/:id", h.RenameDocType)
		protected.DELETE("/doc-type/:id", h.DeleteDocType)

		protected.GET("/assign", h.ListResponsibles)
		protected.POST("/assign/:id", h.AssignResponsible)
		protected.DELETE("/assign/:id", h.RemoveResponsible)

		protected.GET("/actions", h.ActionsLog)
		protected.GET("/errors", h.ErrorsLog)
	}
}

// ============================================================================
// Отделы
// ============================================================================

// ListDepartments godoc
// @Summary Отделы
// @Tags admin
// @Produce json
// @Success 200 {array} dto.Ref
// @Router /api/admin/department [get]
func (h *AdminHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateDepartment godoc
// @Summary Создать отдел
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.NameRequest true "Название"
// @Success 201 {object} dto.Ref
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/department [post]
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	var req dto.NameRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	department, err := h.departmentService.Create(c.Request.Context(), h.GetDB(c), identity.UserID, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

// RenameDepartment godoc
// @Summary Переименовать отдел
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID отдела"
// @Param request body dto.NameRequest true "Название"
// @Success 200 {object} dto.Ref
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/department/{id} [put]
func (h *AdminHandler) RenameDepartment(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.NameRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	department, err := h.departmentService.Rename(c.Request.Context(), h.GetDB(c), identity.UserID, id, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

// DeleteDepartment godoc
// @Summary Удалить отдел
// @Description Отдел с пользователями удалить нельзя
// @Tags admin
// @Produce json
// @Param id path int true "ID отдела"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/department/{id} [delete]
func (h *AdminHandler) DeleteDepartment(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), h.GetDB(c), identity.UserID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// ============================================================================
// Типы документов
// ============================================================================

// CreateDocType godoc
// @Summary Создать тип документа
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.NameRequest true "Название"
// @Success 201 {object} dto.Ref
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/doc-type [post]
func (h *AdminHandler) CreateDocType(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	var req dto.NameRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	docType, err := h.docTypeService.Create(c.Request.Context(), h.GetDB(c), identity.UserID, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, docType)
}

// RenameDocType godoc
// @Summary Переименовать тип документа
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID типа"
// @Param request body dto.NameRequest true "Название"
// @Success 200 {object} dto.Ref
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/doc-type/{id} [put]
func (h *AdminHandler) RenameDocType(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.NameRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	docType, err := h.docTypeService.Rename(c.Request.Context(), h.GetDB(c), identity.UserID, id, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docType)
}

// DeleteDocType godoc
// @Summary Удалить тип документа
// @Description Удаляет также все документы этого типа
// @Tags admin
// @Produce json
// @Param id path int true "ID типа"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/doc-type/{id} [delete]
func (h *AdminHandler) DeleteDocType(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.docTypeService.Delete(c.Request.Context(), h.GetDB(c), identity.UserID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// ============================================================================
// Ответственные
// ============================================================================

// ListResponsibles godoc
// @Summary Назначения ответственных
// @Tags admin
// @Produce json
// @Success 200 {array} dto.ResponsibleResponse
// @Router /api/admin/assign [get]
func (h *AdminHandler) ListResponsibles(c *gin.Context) {
	responsibles, err := h.responsibleService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responsibles)
}

// AssignResponsible godoc
// @Summary Назначить ответственного за отдел
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID отдела"
// @Param request body dto.AssignResponsibleRequest true "Пользователь"
// @Success 201 {object} dto.ResponsibleResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/assign/{id} [post]
func (h *AdminHandler) AssignResponsible(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	departmentID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.AssignResponsibleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	responsible, err := h.responsibleService.Assign(c.Request.Context(), h.GetDB(c), identity.UserID, departmentID, req.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responsible)
}

// RemoveResponsible godoc
// @Summary Снять назначение
// @Tags admin
// @Produce json
// @Param id path int true "ID назначения"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/assign/{id} [delete]
func (h *AdminHandler) RemoveResponsible(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.responsibleService.Remove(c.Request.Context(), h.GetDB(c), identity.UserID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Ответственный удалён"})
}

// ============================================================================
// Журналы
// ============================================================================

// ActionsLog godoc
// @Summary Журнал действий
// @Tags admin
// @Produce plain
// @Success 200 {string} string
// @Router /api/admin/actions [get]
func (h *AdminHandler) ActionsLog(c *gin.Context) {
	h.writeLog(c, logger.ActionsChannel)
}

// ErrorsLog godoc
// @Summary Журнал ошибок
// @Tags admin
// @Produce plain
// @Success 200 {string} string
// @Router /api/admin/errors [get]
func (h *AdminHandler) ErrorsLog(c *gin.Context) {
	h.writeLog(c, logger.ErrorsChannel)
}

func (h *AdminHandler) writeLog(c *gin.Context, channel logger.Channel) {
	text, err := h.logService.Tail(channel)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
