package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

// WithRequestID кладет идентификатор запроса в context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID кладет id аутентифицированного пользователя в context
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestID возвращает идентификатор запроса или пустую строку
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// UserID возвращает id пользователя, если запрос аутентифицирован
func UserID(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok && id != 0
}

// contextFields всегда возвращает новый срез: вызывающие дописывают в него свои поля
func contextFields(ctx context.Context) []any {
	fields := make([]any, 0, 4)
	if id := RequestID(ctx); id != "" {
		fields = append(fields, "request_id", id)
	}
	if id, ok := UserID(ctx); ok {
		fields = append(fields, "user_id", id)
	}
	return fields
}

// FromContext - глобальный логгер с request_id и user_id запроса
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	if fields := contextFields(ctx); len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError логирует ошибку вместе с полями запроса
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}
