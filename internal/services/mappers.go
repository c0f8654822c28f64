package services

import (
	"time"

	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/validator"

	"gorm.io/datatypes"
)

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(validator.DateLayout)
	return &s
}

func parseDate(s *string) (*datatypes.Date, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(validator.DateLayout, *s)
	if err != nil {
		return nil, false
	}
	d := datatypes.Date(t)
	return &d, true
}

func toNotificationResponse(n models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		FileID:    n.FileID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		IsRead:    n.IsRead,
	}
}

func toDocumentResponse(row repositories.DocumentRow) dto.DocumentResponse {
	docTypeID := row.DocTypeID
	uploaderID := row.UploadedBy
	var docTypeName *string
	if row.DocTypeName != "" {
		docTypeName = &row.DocTypeName
	}
	return dto.DocumentResponse{
		ID:               row.ID,
		Filename:         row.Filename,
		OriginalFilename: row.OriginalFilename,
		FileNumber:       row.FileNumber,
		Permanent:        row.Permanent,
		DocType:          dto.NewRef(&docTypeID, docTypeName),
		Responsible:      dto.NewRef(row.ResponsibleID, row.DepartmentName),
		ValidUntil:       formatDate(row.ValidUntil),
		UploadedAt:       row.UploadedAt,
		UploadedBy:       dto.NewRef(&uploaderID, row.UploaderName),
	}
}

func toDocumentResponses(rows []repositories.DocumentRow) []dto.DocumentResponse {
	result := make([]dto.DocumentResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDocumentResponse(row))
	}
	return result
}

func toUserResponse(u repositories.UserWithDepartment) dto.UserResponse {
	departmentID := u.DepartmentID
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Department: dto.NewRef(&departmentID, u.DepartmentName),
		Admin:      u.Admin,
		CreatedAt:  u.CreatedAt,
	}
}
