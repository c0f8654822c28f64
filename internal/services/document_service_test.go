package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/models"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/storage"
	"docflow_backend/pkg/apperrors"
	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	env      *testEnv
	dept     *models.Department
	docType  *models.DocType
	uploader *models.User
	reader   *models.User
	admin    *models.User
	stranger *models.User
}

func newDocumentFixture(t *testing.T) *documentFixture {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Канцелярия")
	f := &documentFixture{
		env:      env,
		dept:     dept,
		docType:  helpers.CreateDocType(t, env.db, "Письмо"),
		uploader: helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false),
		reader:   helpers.CreateUser(t, env.db, "reader", "Читатель", dept.ID, false),
		admin:    helpers.CreateUser(t, env.db, "admin", "Админ", dept.ID, true),
		stranger: helpers.CreateUser(t, env.db, "stranger", "Посторонний", dept.ID, false),
	}
	helpers.AssignResponsible(t, env.db, f.reader.ID, dept.ID)
	return f
}

func identityOf(u *models.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Username: u.Username, Admin: u.Admin}
}

func TestUpload_StoresMetadataAndBlob(t *testing.T) {
	f := newDocumentFixture(t)
	number := "  42-A "
	validUntil := "2030-01-31"

	resp, err := f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID,
		&dto.UploadDocumentRequest{
			ResponsibleID: f.dept.ID,
			DocTypeID:     f.docType.ID,
			DocNumber:     &number,
			IsPermanent:   true,
			ValidUntil:    &validUntil,
		},
		filePayload(`C:\Users\me\Отчет.PDF`, "hello"))
	require.NoError(t, err)

	doc := f.env.document(t, resp.ID)
	assert.Equal(t, "Отчет.PDF", doc.OriginalFilename)
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.pdf$`, doc.FilePath)
	assert.True(t, strings.HasSuffix(doc.FilePath, doc.Filename))
	require.NotNil(t, doc.FileNumber)
	assert.Equal(t, "42-A", *doc.FileNumber)
	assert.True(t, doc.Permanent)
	assert.Equal(t, f.uploader.ID, doc.UploadedBy)

	info, err := f.env.svc.DocumentService.GetInfo(f.env.db, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, info.ValidUntil)
	assert.Equal(t, "2030-01-31", *info.ValidUntil)
	require.NotNil(t, info.DocType)
	assert.Equal(t, "Письмо", info.DocType.Name)
	require.NotNil(t, info.Responsible)
	assert.Equal(t, "Канцелярия", info.Responsible.Name)

	file, err := f.env.svc.DocumentService.Open(f.env.ctx, f.env.db, resp.ID)
	require.NoError(t, err)
	defer file.Content.Close()
	data, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, int64(5), file.Size)
	assert.Equal(t, "Отчет.PDF", file.Filename)
}

func TestUpload_UnknownReferencesRollBack(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID,
		&dto.UploadDocumentRequest{ResponsibleID: f.dept.ID, DocTypeID: 9999},
		filePayload("a.pdf", "x"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID,
		&dto.UploadDocumentRequest{ResponsibleID: 9999, DocTypeID: f.docType.ID},
		filePayload("a.pdf", "x"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Document{}, ""))
	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Notification{}, ""))
}

// brokenSaveStorage отказывает в записи blob-а, остальные операции идут в обернутое хранилище
type brokenSaveStorage struct {
	storage.Storage
	saves int
}

func (s *brokenSaveStorage) Save(context.Context, string, io.Reader, string) error {
	s.saves++
	return errors.New("disk full")
}

func TestUpload_BlobFailureRollsBackDocumentAndNotifications(t *testing.T) {
	broken := &brokenSaveStorage{}
	env := newTestEnvWithStorage(t, func(inner storage.Storage) storage.Storage {
		broken.Storage = inner
		return broken
	})
	dept := helpers.CreateDepartment(t, env.db, "Бухгалтерия")
	docType := helpers.CreateDocType(t, env.db, "Счет")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)
	first := helpers.CreateUser(t, env.db, "first", "Первый", dept.ID, false)
	second := helpers.CreateUser(t, env.db, "second", "Второй", dept.ID, false)
	helpers.AssignResponsible(t, env.db, first.ID, dept.ID)
	helpers.AssignResponsible(t, env.db, second.ID, dept.ID)

	_, err := env.svc.DocumentService.Upload(env.ctx, env.db, uploader.ID,
		&dto.UploadDocumentRequest{ResponsibleID: dept.ID, DocTypeID: docType.ID},
		filePayload("invoice.pdf", "%PDF-1.4"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageError))

	// Save вызывается после вставки документа и уведомлений
	assert.Equal(t, 1, broken.saves)
	assert.Equal(t, int64(0), helpers.CountRows(t, env.db, &models.Document{}, ""))
	assert.Equal(t, int64(0), helpers.CountRows(t, env.db, &models.Notification{}, ""))
	assert.Zero(t, env.publisher.count(first.ID))
	assert.Zero(t, env.publisher.count(second.ID))

	var files []string
	require.NoError(t, filepath.WalkDir(env.blobDir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, path)
		}
		return err
	}))
	assert.Empty(t, files)
}

func TestUpload_CancelledContextLeavesNothing(t *testing.T) {
	f := newDocumentFixture(t)
	ctx, cancel := context.WithCancel(f.env.ctx)
	cancel()

	_, err := f.env.svc.DocumentService.Upload(ctx, f.env.db, f.uploader.ID,
		&dto.UploadDocumentRequest{ResponsibleID: f.dept.ID, DocTypeID: f.docType.ID},
		filePayload("a.pdf", "x"))
	require.Error(t, err)

	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Document{}, ""))
	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Notification{}, ""))
	assert.Zero(t, f.env.publisher.count(f.reader.ID))
}

func TestUpload_RejectsBadInput(t *testing.T) {
	f := newDocumentFixture(t)
	req := &dto.UploadDocumentRequest{ResponsibleID: f.dept.ID, DocTypeID: f.docType.ID}

	badDate := "2025-13-45"
	_, err := f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID,
		&dto.UploadDocumentRequest{ResponsibleID: f.dept.ID, DocTypeID: f.docType.ID, ValidUntil: &badDate},
		filePayload("a.pdf", "x"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)

	_, err = f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID, req, nil)
	assert.ErrorIs(t, err, apperrors.ErrFileRequired)

	big := filePayload("big.bin", "x")
	big.Size = 2 << 20
	_, err = f.env.svc.DocumentService.Upload(f.env.ctx, f.env.db, f.uploader.ID, req, big)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 413, appErr.HTTPCode)

	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Document{}, ""))
}

func TestOpen_MissingBlobIsNotFound(t *testing.T) {
	f := newDocumentFixture(t)
	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	doc := f.env.document(t, resp.ID)
	require.NoError(t, f.env.store.Delete(f.env.ctx, doc.FilePath))

	_, err := f.env.svc.DocumentService.Open(f.env.ctx, f.env.db, resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.env.svc.DocumentService.Open(f.env.ctx, f.env.db, resp.ID+100)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "report.pdf", DownloadName("report.pdf", "2025/04/17/x.pdf"))
	assert.Equal(t, "report.pdf", DownloadName("report", "2025/04/17/x.pdf"))
	assert.Equal(t, "report", DownloadName("report", "2025/04/17/x"))
}

func TestUpdate_OnlyUploaderSeesDocument(t *testing.T) {
	f := newDocumentFixture(t)
	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	name := "renamed.pdf"

	err := f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.stranger.ID, resp.ID,
		&dto.UpdateDocumentRequest{OriginalFilename: &name})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	// администратор тоже не может менять метаданные чужого документа
	err = f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.admin.ID, resp.ID,
		&dto.UpdateDocumentRequest{OriginalFilename: &name})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	assert.Equal(t, "a.pdf", f.env.document(t, resp.ID).OriginalFilename)
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	f := newDocumentFixture(t)
	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	otherType := helpers.CreateDocType(t, f.env.db, "Акт")
	otherDept := helpers.CreateDepartment(t, f.env.db, "Склад")

	permanent := true
	validUntil := "2031-12-31"
	number := "N-1"
	err := f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.uploader.ID, resp.ID,
		&dto.UpdateDocumentRequest{
			DocTypeID:     &otherType.ID,
			ResponsibleID: &otherDept.ID,
			Permanent:     &permanent,
			DocNumber:     &number,
			ValidUntil:    &validUntil,
		})
	require.NoError(t, err)

	doc := f.env.document(t, resp.ID)
	assert.Equal(t, otherType.ID, doc.DocTypeID)
	require.NotNil(t, doc.ResponsibleID)
	assert.Equal(t, otherDept.ID, *doc.ResponsibleID)
	assert.True(t, doc.Permanent)
	assert.Equal(t, "a.pdf", doc.OriginalFilename)

	// смена отдела не рассылает уведомления заново
	assert.Equal(t, int64(1), helpers.CountRows(t, f.env.db, &models.Notification{}, "file_id = ?", resp.ID))

	missing := uint(9999)
	err = f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.uploader.ID, resp.ID,
		&dto.UpdateDocumentRequest{DocTypeID: &missing})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	bad := "31.12.2031"
	err = f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.uploader.ID, resp.ID,
		&dto.UpdateDocumentRequest{ValidUntil: &bad})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
}

func TestReplace_AccessAndBlobSwap(t *testing.T) {
	f := newDocumentFixture(t)
	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	oldPath := f.env.document(t, resp.ID).FilePath

	_, err := f.env.svc.DocumentService.Replace(f.env.ctx, f.env.db, identityOf(f.stranger), resp.ID,
		filePayload("b.pdf", "new"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	_, err = f.env.svc.DocumentService.Replace(f.env.ctx, f.env.db, identityOf(f.admin), resp.ID+100,
		filePayload("b.pdf", "new"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	out, err := f.env.svc.DocumentService.Replace(f.env.ctx, f.env.db, identityOf(f.admin), resp.ID,
		filePayload("b.docx", "new content"))
	require.NoError(t, err)
	assert.Equal(t, "file replaced", out.Status)
	assert.Equal(t, "b.docx", out.OriginalFilename)

	doc := f.env.document(t, resp.ID)
	assert.NotEqual(t, oldPath, doc.FilePath)
	assert.True(t, strings.HasSuffix(doc.FilePath, ".docx"))

	exists, err := f.env.store.Exists(f.env.ctx, oldPath)
	require.NoError(t, err)
	assert.False(t, exists, "old blob must be removed after commit")

	exists, err = f.env.store.Exists(f.env.ctx, doc.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDelete_RemovesRowNotificationsAndBlob(t *testing.T) {
	f := newDocumentFixture(t)
	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	path := f.env.document(t, resp.ID).FilePath

	err := f.env.svc.DocumentService.Delete(f.env.ctx, f.env.db, identityOf(f.stranger), resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	require.NoError(t, f.env.svc.DocumentService.Delete(f.env.ctx, f.env.db, identityOf(f.uploader), resp.ID))

	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Document{}, ""))
	assert.Equal(t, int64(0), helpers.CountRows(t, f.env.db, &models.Notification{}, ""))
	exists, err := f.env.store.Exists(f.env.ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	err = f.env.svc.DocumentService.Delete(f.env.ctx, f.env.db, identityOf(f.uploader), resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListAll_NewestFirst(t *testing.T) {
	f := newDocumentFixture(t)
	first := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "first.pdf")
	second := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "second.pdf")

	docs, err := f.env.svc.DocumentService.ListAll(f.env.db)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.ID, docs[0].ID)
	assert.Equal(t, first.ID, docs[1].ID)
	require.NotNil(t, docs[0].UploadedBy)
	assert.Equal(t, "Загрузчик", docs[0].UploadedBy.Name)

	types, err := f.env.svc.DocumentService.ListDocTypes(f.env.db)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Письмо", types[0].Name)
}
