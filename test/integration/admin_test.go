package integration_test

import (
	"net/http"
	"strings"
	"testing"

	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_NonAdminIsForbidden(t *testing.T) {
	ts := NewTestServer(t)
	dep := helpers.CreateDepartment(t, ts.DB, "Склад")
	helpers.CreateUser(t, ts.DB, "storekeeper", "Кладовщик", dep.ID, false)
	token := ts.Login(t, "storekeeper")

	// список отделов доступен всем авторизованным
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/admin/department", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	forbidden := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/admin/department", map[string]string{"name": "Новый"}},
		{http.MethodPost, "/api/admin/doc-type", map[string]string{"name": "Акт"}},
		{http.MethodGet, "/api/admin/assign", nil},
		{http.MethodGet, "/api/admin/users", nil},
		{http.MethodGet, "/api/admin/actions", nil},
		{http.MethodGet, "/api/admin/errors", nil},
	}
	for _, tc := range forbidden {
		res, _ := ts.SendRequest(t, tc.method, tc.path, token, tc.body)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, tc.method+" "+tc.path)
	}
}

func TestAdmin_DepartmentLifecycle(t *testing.T) {
	ts := NewTestServer(t)
	home := helpers.CreateDepartment(t, ts.DB, "Администрация")
	helpers.CreateUser(t, ts.DB, "admin", "Администратор", home.ID, true)
	token := ts.Login(t, "admin")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/admin/department", token, map[string]string{"name": "Отдел кадров"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var created struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	decodeJSON(t, body, &created)
	assert.Equal(t, "Отдел кадров", created.Name)

	// дубликат
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/admin/department", token, map[string]string{"name": "Отдел кадров"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// пустое имя
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/admin/department", token, map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, idPath("/api/admin/department/%d", created.ID), token, map[string]string{"name": "HR"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"HR"`)

	// отдел с пользователями удалить нельзя
	res, _ = ts.SendRequest(t, http.MethodDelete, idPath("/api/admin/department/%d", home.ID), token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete, idPath("/api/admin/department/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"deleted"}`, body)

	res, _ = ts.SendRequest(t, http.MethodDelete, idPath("/api/admin/department/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdmin_CannotDeleteSelf(t *testing.T) {
	ts := NewTestServer(t)
	dep := helpers.CreateDepartment(t, ts.DB, "Администрация")
	admin := helpers.CreateUser(t, ts.DB, "admin", "Администратор", dep.ID, true)
	token := ts.Login(t, "admin")

	res, _ := ts.SendRequest(t, http.MethodDelete, idPath("/api/admin/users/%d", admin.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdmin_LogsArePlainText(t *testing.T) {
	ts := NewTestServer(t)
	dep := helpers.CreateDepartment(t, ts.DB, "Администрация")
	helpers.CreateUser(t, ts.DB, "admin", "Администратор", dep.ID, true)
	token := ts.Login(t, "admin")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/admin/doc-type", token, map[string]string{"name": "Счёт"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// неудачная попытка попадает в журнал ошибок
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/file/my", "broken-token", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/admin/actions", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
	assert.Contains(t, body, "Doc type created")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/errors", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
	assert.Contains(t, body, "Authentication failed")
}
