package services

import (
	"strings"

	"docflow_backend/internal/logger"
	"docflow_backend/pkg/apperrors"
)

// DefaultTailLines - сколько последних строк журнала отдавать
const DefaultTailLines = 300

type LogService interface {
	// Tail возвращает последние строки журнала одним текстом
	Tail(channel logger.Channel) (string, error)
}

type logService struct {
	lines int
}

func NewLogService(lines int) LogService {
	if lines <= 0 {
		lines = DefaultTailLines
	}
	return &logService{lines: lines}
}

func (s *logService) Tail(channel logger.Channel) (string, error) {
	lines, err := logger.Tail(channel, s.lines)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}
