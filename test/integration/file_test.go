package integration_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"docflow_backend/internal/models"
	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docFixture struct {
	ts          *TestServer
	department  *models.Department
	docType     *models.DocType
	uploader    string
	responsible *models.User
}

func newDocFixture(t *testing.T) *docFixture {
	ts := NewTestServer(t)
	office := helpers.CreateDepartment(t, ts.DB, "Канцелярия")
	legal := helpers.CreateDepartment(t, ts.DB, "Юридический отдел")
	docType := helpers.CreateDocType(t, ts.DB, "Договор")

	helpers.CreateUser(t, ts.DB, "clerk", "Клерк", office.ID, false)
	lawyer := helpers.CreateUser(t, ts.DB, "lawyer", "Юрист", legal.ID, false)
	helpers.AssignResponsible(t, ts.DB, lawyer.ID, legal.ID)

	return &docFixture{ts: ts, department: legal, docType: docType, uploader: "clerk", responsible: lawyer}
}

func (f *docFixture) upload(t *testing.T, token, filename, content string) uint {
	res, body := f.ts.SendMultipart(t, "/api/file/upload", token, map[string]string{
		"responsible": fmt.Sprint(f.department.ID),
		"doc_type":    fmt.Sprint(f.docType.ID),
		"doc_number":  "Д-17",
		"valid_until": "2030-12-31",
	}, filename, content)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var uploaded struct {
		ID         uint `json:"id"`
		Recipients int  `json:"recipients"`
	}
	decodeJSON(t, body, &uploaded)
	assert.Equal(t, 1, uploaded.Recipients)
	return uploaded.ID
}

func TestFile_UploadNotifyReadFlow(t *testing.T) {
	f := newDocFixture(t)
	clerkToken := f.ts.Login(t, f.uploader)
	lawyerToken := f.ts.Login(t, "lawyer")

	docID := f.upload(t, clerkToken, "договор.pdf", "%PDF-1.4 test")

	// ответственный получил уведомление
	res, body := f.ts.SendRequest(t, http.MethodGet, "/api/notification/unread-count", lawyerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"count":1}`, body)

	var notifications []struct {
		ID     uint `json:"id"`
		FileID uint `json:"file_id"`
	}
	res, body = f.ts.SendRequest(t, http.MethodGet, "/api/notification", lawyerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decodeJSON(t, body, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, docID, notifications[0].FileID)

	// у загрузившего документ пока не прочитан
	var summaries []struct {
		ID          uint `json:"id"`
		ReadCount   int  `json:"read_count"`
		UnreadCount int  `json:"unread_count"`
	}
	res, body = f.ts.SendRequest(t, http.MethodGet, "/api/file/my", clerkToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	decodeJSON(t, body, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].ReadCount)
	assert.Equal(t, 1, summaries[0].UnreadCount)

	// чужое уведомление отметить нельзя
	res, _ = f.ts.SendRequest(t, http.MethodPatch, idPath("/api/notification/%d/read", notifications[0].ID), clerkToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = f.ts.SendRequest(t, http.MethodPatch, idPath("/api/notification/%d/read", notifications[0].ID), lawyerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = f.ts.SendRequest(t, http.MethodGet, "/api/file/my", clerkToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decodeJSON(t, body, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ReadCount)
	assert.Equal(t, 0, summaries[0].UnreadCount)

	res, body = f.ts.SendRequest(t, http.MethodGet, "/api/notification/unread-count", lawyerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"count":0}`, body)
}

func TestFile_DownloadAndInfoArePublic(t *testing.T) {
	f := newDocFixture(t)
	clerkToken := f.ts.Login(t, f.uploader)
	docID := f.upload(t, clerkToken, "акт сверки.txt", "hello, world")

	res, body := f.ts.SendRequest(t, http.MethodGet, idPath("/api/file/download/%d", docID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "hello, world", body)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, res.Header.Get("Content-Disposition"), "filename*=UTF-8''")

	res, body = f.ts.SendRequest(t, http.MethodGet, idPath("/api/file/info/%d", docID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"Д-17"`)

	res, _ = f.ts.SendRequest(t, http.MethodGet, "/api/file/download/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFile_UploadValidation(t *testing.T) {
	f := newDocFixture(t)
	clerkToken := f.ts.Login(t, f.uploader)

	// без файла
	res, _ := f.ts.SendMultipart(t, "/api/file/upload", clerkToken, map[string]string{
		"responsible": fmt.Sprint(f.department.ID),
		"doc_type":    fmt.Sprint(f.docType.ID),
	}, "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// файл больше лимита
	res, _ = f.ts.SendMultipart(t, "/api/file/upload", clerkToken, map[string]string{
		"responsible": fmt.Sprint(f.department.ID),
		"doc_type":    fmt.Sprint(f.docType.ID),
	}, "big.bin", strings.Repeat("x", int(f.ts.Config.Upload.MaxSize)+1024))
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)

	assert.Equal(t, int64(0), helpers.CountRows(t, f.ts.DB, &models.Document{}, "1 = 1"))
}

func TestFile_DeleteByStrangerIsForbidden(t *testing.T) {
	f := newDocFixture(t)
	clerkToken := f.ts.Login(t, f.uploader)
	lawyerToken := f.ts.Login(t, "lawyer")
	docID := f.upload(t, clerkToken, "приказ.docx", "content")

	res, _ := f.ts.SendRequest(t, http.MethodDelete, idPath("/api/file/delete/%d", docID), lawyerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := f.ts.SendRequest(t, http.MethodDelete, idPath("/api/file/delete/%d", docID), clerkToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"deleted"}`, body)

	// уведомления удалены вместе с документом
	res, body = f.ts.SendRequest(t, http.MethodGet, "/api/notification/unread-count", lawyerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"count":0}`, body)
}
