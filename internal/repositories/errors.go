package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserAlreadyExists        = errors.New("user already exists")
	ErrDepartmentNotFound       = errors.New("department not found")
	ErrDepartmentAlreadyExists  = errors.New("department already exists")
	ErrResponsibleNotFound      = errors.New("responsible not found")
	ErrResponsibleAlreadyExists = errors.New("responsible already exists")
	ErrDocTypeNotFound          = errors.New("doc type not found")
	ErrDocTypeAlreadyExists     = errors.New("doc type already exists")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrNotificationNotFound     = errors.New("notification not found")
)

// translate заменяет ошибки gorm на доменные sentinel-ошибки
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return err
	}
}
