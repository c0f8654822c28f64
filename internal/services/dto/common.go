package dto

// Ref - краткая ссылка на сущность справочника
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// MessageResponse - ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse - ответ со статусом операции
type StatusResponse struct {
	Status string `json:"status"`
}

// NewRef возвращает nil для отсутствующей связи
func NewRef(id *uint, name *string) *Ref {
	if id == nil || name == nil {
		return nil
	}
	return &Ref{ID: *id, Name: *name}
}
