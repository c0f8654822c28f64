package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/models"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/session"
	"docflow_backend/internal/storage"
	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-that-is-long-enough-32b"

type recordingPublisher struct {
	mu     sync.Mutex
	events map[uint][]dto.NotificationEvent
}

func (p *recordingPublisher) PublishToUser(userID uint, event interface{}) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[uint][]dto.NotificationEvent)
	}
	if e, ok := event.(dto.NotificationEvent); ok {
		p.events[userID] = append(p.events[userID], e)
	}
	return true
}

func (p *recordingPublisher) count(userID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events[userID])
}

type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	blobDir   string
	store     storage.Storage
	publisher *recordingPublisher
	svc       *ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStorage(t, nil)
}

// newTestEnvWithStorage позволяет обернуть локальное хранилище (например, чтобы сломать Save)
func newTestEnvWithStorage(t *testing.T, wrap func(storage.Storage) storage.Storage) *testEnv {
	t.Helper()

	db := helpers.NewTestDB(t)
	blobDir := t.TempDir()
	local, err := storage.NewLocalStorage(storage.Config{BasePath: blobDir})
	require.NoError(t, err)

	var store storage.Storage = local
	if wrap != nil {
		store = wrap(local)
	}

	publisher := &recordingPublisher{}
	svc := NewServiceContainer(Dependencies{
		Storage:       store,
		Tokens:        auth.NewTokenManager(testSecret, time.Hour),
		Revocations:   session.NewMemoryStore(),
		Publisher:     publisher,
		MaxUploadSize: 1 << 20,
	})

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		blobDir:   blobDir,
		store:     store,
		publisher: publisher,
		svc:       svc,
	}
}

func filePayload(name, content string) *dto.FilePayload {
	return &dto.FilePayload{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Reader:      strings.NewReader(content),
	}
}

func (e *testEnv) upload(t *testing.T, uploaderID, departmentID, docTypeID uint, name string) *dto.UploadResponse {
	t.Helper()
	resp, err := e.svc.DocumentService.Upload(e.ctx, e.db, uploaderID,
		&dto.UploadDocumentRequest{ResponsibleID: departmentID, DocTypeID: docTypeID},
		filePayload(name, "%PDF-1.4 test"))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) notificationsOf(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("id ASC").Find(&notifications).Error)
	return notifications
}

func (e *testEnv) document(t *testing.T, id uint) models.Document {
	t.Helper()
	var document models.Document
	require.NoError(t, e.db.First(&document, id).Error)
	return document
}
