package dto

import (
	"io"
	"time"
)

// UploadDocumentRequest - поля multipart-формы загрузки (кроме файла)
type UploadDocumentRequest struct {
	ResponsibleID uint    `form:"responsible" validate:"required,gt=0"`
	DocTypeID     uint    `form:"doc_type" validate:"required,gt=0"`
	DocNumber     *string `form:"doc_number" validate:"omitempty,max=100"`
	IsPermanent   bool    `form:"is_permanent"`
	ValidUntil    *string `form:"valid_until" validate:"omitempty,date"`
}

// FilePayload - содержимое загружаемого файла
type FilePayload struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// UploadResponse - результат загрузки
type UploadResponse struct {
	Message    string `json:"message"`
	ID         uint   `json:"id"`
	Recipients int    `json:"recipients"`
}

// UpdateDocumentRequest - частичное обновление метаданных
type UpdateDocumentRequest struct {
	DocTypeID        *uint   `json:"doc_type_id" validate:"omitempty,gt=0"`
	ResponsibleID    *uint   `json:"responsible_id" validate:"omitempty,gt=0"`
	Permanent        *bool   `json:"permanent"`
	DocNumber        *string `json:"doc_number" validate:"omitempty,max=100"`
	OriginalFilename *string `json:"original_filename" validate:"omitempty,notblank,max=255"`
	ValidUntil       *string `json:"valid_until" validate:"omitempty,date"`
}

// DocumentResponse - документ в списках /all и /inwork
type DocumentResponse struct {
	ID               uint      `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileNumber       *string   `json:"file_number"`
	Permanent        bool      `json:"permanent"`
	DocType          *Ref      `json:"doc_type"`
	Responsible      *Ref      `json:"responsible"`
	ValidUntil       *string   `json:"valid_until"`
	UploadedAt       time.Time `json:"uploaded_at"`
	UploadedBy       *Ref      `json:"uploaded_by"`
}

// DocumentInfoResponse - карточка документа
type DocumentInfoResponse struct {
	ID               uint    `json:"id"`
	OriginalFilename string  `json:"original_filename"`
	DocNumber        *string `json:"doc_number"`
	DocType          *Ref    `json:"doc_type"`
	Responsible      *Ref    `json:"responsible"`
	ValidUntil       *string `json:"valid_until"`
	Permanent        bool    `json:"permanent"`
}

// ReplaceResponse - результат замены файла
type ReplaceResponse struct {
	Status           string    `json:"status"`
	ID               uint      `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	Filename         string    `json:"filename"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// DownloadFile - поток файла для отдачи клиенту
type DownloadFile struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}
