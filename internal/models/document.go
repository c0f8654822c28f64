package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document - метаданные загруженного файла. Сам файл лежит в storage по FilePath.
// ResponsibleID - отдел, в который направлен документ.
type Document struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename         string          `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string          `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string          `gorm:"size:512;not null" json:"file_path"`
	FileNumber       *string         `gorm:"size:100" json:"file_number"`
	DocTypeID        uint            `gorm:"not null;index" json:"doc_type_id"`
	ResponsibleID    *uint           `gorm:"index" json:"responsible_id"`
	Permanent        bool            `gorm:"not null;default:false" json:"permanent"`
	ValidUntil       *datatypes.Date `json:"valid_until"`
	UploadedAt       time.Time       `gorm:"not null;index" json:"uploaded_at"`
	UploadedBy       uint            `gorm:"not null;index" json:"uploaded_by"`
}

func (Document) TableName() string {
	return "documents"
}
