package services

import (
	"testing"
	"time"

	"docflow_backend/internal/models"
	"docflow_backend/pkg/apperrors"
	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_FanOutCreatesOneUnreadPerResponsible(t *testing.T) {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Бухгалтерия")
	docType := helpers.CreateDocType(t, env.db, "Договор")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)

	var responsibles []*models.User
	for _, username := range []string{"u1", "u2", "u3"} {
		u := helpers.CreateUser(t, env.db, username, username, dept.ID, false)
		helpers.AssignResponsible(t, env.db, u.ID, dept.ID)
		responsibles = append(responsibles, u)
	}

	resp := env.upload(t, uploader.ID, dept.ID, docType.ID, "report.pdf")
	assert.Equal(t, 3, resp.Recipients)

	total := helpers.CountRows(t, env.db, &models.Notification{}, "file_id = ?", resp.ID)
	assert.Equal(t, int64(3), total)

	for _, u := range responsibles {
		notifications := env.notificationsOf(t, u.ID)
		require.Len(t, notifications, 1)
		assert.False(t, notifications[0].IsRead)
		assert.Nil(t, notifications[0].ReadAt)
		assert.Equal(t, "Вам назначен новый файл: report.pdf", notifications[0].Message)
		assert.Equal(t, 1, env.publisher.count(u.ID), "push event for %s", u.Username)
	}
	assert.Empty(t, env.notificationsOf(t, uploader.ID))
}

func TestUpload_NoResponsiblesCreatesNoNotifications(t *testing.T) {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Пустой отдел")
	docType := helpers.CreateDocType(t, env.db, "Приказ")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)

	resp := env.upload(t, uploader.ID, dept.ID, docType.ID, "order.docx")

	assert.NotZero(t, resp.ID)
	assert.Equal(t, 0, resp.Recipients)
	assert.Equal(t, int64(0), helpers.CountRows(t, env.db, &models.Notification{}, ""))
	assert.Equal(t, int64(1), helpers.CountRows(t, env.db, &models.Document{}, ""))
}

func TestMarkRead_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Отдел")
	docType := helpers.CreateDocType(t, env.db, "Тип")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", dept.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, dept.ID)
	env.upload(t, uploader.ID, dept.ID, docType.ID, "a.pdf")

	n := env.notificationsOf(t, u1.ID)[0]

	require.NoError(t, env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID, u1.ID))
	first := env.notificationsOf(t, u1.ID)[0]
	require.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)

	require.NoError(t, env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID, u1.ID))
	second := env.notificationsOf(t, u1.ID)[0]
	assert.True(t, second.IsRead)
	assert.True(t, first.ReadAt.Equal(*second.ReadAt), "read_at must not change on repeated mark")
}

func TestMarkRead_ForeignOrMissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Отдел")
	docType := helpers.CreateDocType(t, env.db, "Тип")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", dept.ID, false)
	stranger := helpers.CreateUser(t, env.db, "stranger", "Чужой", dept.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, dept.ID)
	env.upload(t, uploader.ID, dept.ID, docType.ID, "a.pdf")

	n := env.notificationsOf(t, u1.ID)[0]

	err := env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID, stranger.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.False(t, env.notificationsOf(t, u1.ID)[0].IsRead, "foreign mark must not change the row")

	err = env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID+100, u1.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListUnread_NewestFirstAndMarkAll(t *testing.T) {
	env := newTestEnv(t)
	dept := helpers.CreateDepartment(t, env.db, "Отдел")
	docType := helpers.CreateDocType(t, env.db, "Тип")
	uploader := helpers.CreateUser(t, env.db, "uploader", "Загрузчик", dept.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", dept.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, dept.ID)

	first := env.upload(t, uploader.ID, dept.ID, docType.ID, "first.pdf")
	second := env.upload(t, uploader.ID, dept.ID, docType.ID, "second.pdf")

	unread, err := env.svc.NotificationService.ListUnread(env.db, u1.ID)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, second.ID, unread[0].FileID)
	assert.Equal(t, first.ID, unread[1].FileID)

	count, err := env.svc.NotificationService.UnreadCount(env.db, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := env.svc.NotificationService.MarkAllRead(env.ctx, env.db, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	unread, err = env.svc.NotificationService.ListUnread(env.db, u1.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
	assert.NotNil(t, unread)
}

// Сценарий: отдел D с ответственными U1 и U2, U0 загружает report.pdf
func TestReadSummary_Scenario(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	other := helpers.CreateDepartment(t, env.db, "Other")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", other.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", d.ID, false)
	u2 := helpers.CreateUser(t, env.db, "u2", "U2", d.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, d.ID)
	helpers.AssignResponsible(t, env.db, u2.ID, d.ID)

	resp := env.upload(t, u0.ID, d.ID, docType.ID, "report.pdf")

	summary, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, resp.ID, summary[0].ID)
	assert.Equal(t, "report.pdf", summary[0].OriginalFilename)
	assert.Equal(t, 2, summary[0].TotalResponsibles)
	assert.Equal(t, 0, summary[0].ReadCount)
	assert.Equal(t, 2, summary[0].UnreadCount)
	require.NotNil(t, summary[0].DocType)
	assert.Equal(t, "Отчет", summary[0].DocType.Name)

	n1 := env.notificationsOf(t, u1.ID)[0]
	require.NoError(t, env.svc.NotificationService.MarkRead(env.ctx, env.db, n1.ID, u1.ID))

	summary, err = env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	s := summary[0]
	assert.Equal(t, 2, s.TotalResponsibles)
	assert.Equal(t, 1, s.ReadCount)
	assert.Equal(t, 1, s.UnreadCount)
	require.Len(t, s.ReadBy, 1)
	require.Len(t, s.UnreadBy, 1)
	assert.Equal(t, u1.ID, s.ReadBy[0].UserID)
	assert.Equal(t, "U1", s.ReadBy[0].Name)
	require.NotNil(t, s.ReadBy[0].Department)
	assert.Equal(t, "D", *s.ReadBy[0].Department)
	assert.Equal(t, u2.ID, s.UnreadBy[0].UserID)
}

func TestReadSummary_LateResponsibleGetsNothing(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", d.ID, false)
	u3 := helpers.CreateUser(t, env.db, "u3", "U3", d.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, d.ID)

	env.upload(t, u0.ID, d.ID, docType.ID, "report.pdf")

	_, err := env.svc.ResponsibleService.Assign(env.ctx, env.db, u0.ID, d.ID, u3.ID)
	require.NoError(t, err)

	unread, err := env.svc.NotificationService.ListUnread(env.db, u3.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	summary, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].TotalResponsibles)
}

func TestReadSummary_CountsAlwaysAddUp(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)
	var users []*models.User
	for _, username := range []string{"a", "b", "c", "d"} {
		u := helpers.CreateUser(t, env.db, username, username, d.ID, false)
		helpers.AssignResponsible(t, env.db, u.ID, d.ID)
		users = append(users, u)
	}

	for i := 0; i < 3; i++ {
		env.upload(t, u0.ID, d.ID, docType.ID, "doc.pdf")
	}
	// часть уведомлений прочитана
	for _, u := range users[:2] {
		n := env.notificationsOf(t, u.ID)[0]
		require.NoError(t, env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID, u.ID))
	}

	summary, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	for _, s := range summary {
		assert.Equal(t, s.TotalResponsibles, s.ReadCount+s.UnreadCount)
		assert.Equal(t, 4, s.TotalResponsibles)
	}
}

func TestReadSummary_LaterNotificationWins(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", d.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, d.ID)

	resp := env.upload(t, u0.ID, d.ID, docType.ID, "report.pdf")
	n := env.notificationsOf(t, u1.ID)[0]
	require.NoError(t, env.svc.NotificationService.MarkRead(env.ctx, env.db, n.ID, u1.ID))

	// повторное уведомление того же получателя по тому же документу
	require.NoError(t, env.db.Create(&models.Notification{
		FileID:  resp.ID,
		UserID:  u1.ID,
		Message: "repeat",
	}).Error)

	summary, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].TotalResponsibles)
	assert.Equal(t, 0, summary[0].ReadCount)
	assert.Equal(t, 1, summary[0].UnreadCount)
}

func TestReadSummary_NoNotificationsGivesEmptyLists(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)

	env.upload(t, u0.ID, d.ID, docType.ID, "lonely.pdf")

	summary, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 0, summary[0].TotalResponsibles)
	assert.NotNil(t, summary[0].ReadBy)
	assert.NotNil(t, summary[0].UnreadBy)
	assert.Empty(t, summary[0].ReadBy)
	assert.Empty(t, summary[0].UnreadBy)

	empty, err := env.svc.NotificationService.ReadSummary(env.db, u0.ID+100)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestInWork_UnreadByDefault(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", d.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, d.ID)

	resp := env.upload(t, u0.ID, d.ID, docType.ID, "report.pdf")

	docs, err := env.svc.NotificationService.InWork(env.db, u1.ID, false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, resp.ID, docs[0].ID)
	require.NotNil(t, docs[0].Responsible)
	assert.Equal(t, "D", docs[0].Responsible.Name)

	_, err = env.svc.NotificationService.MarkAllRead(env.ctx, env.db, u1.ID)
	require.NoError(t, err)

	docs, err = env.svc.NotificationService.InWork(env.db, u1.ID, false)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = env.svc.NotificationService.InWork(env.db, u1.ID, true)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMarkRead_SetsReadAtNow(t *testing.T) {
	env := newTestEnv(t)
	d := helpers.CreateDepartment(t, env.db, "D")
	docType := helpers.CreateDocType(t, env.db, "Отчет")
	u0 := helpers.CreateUser(t, env.db, "u0", "U0", d.ID, false)
	u1 := helpers.CreateUser(t, env.db, "u1", "U1", d.ID, false)
	helpers.AssignResponsible(t, env.db, u1.ID, d.ID)
	env.upload(t, u0.ID, d.ID, docType.ID, "report.pdf")

	fixed := time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)
	svc := env.svc.NotificationService.(*notificationService)
	svc.now = func() time.Time { return fixed }

	n := env.notificationsOf(t, u1.ID)[0]
	require.NoError(t, svc.MarkRead(env.ctx, env.db, n.ID, u1.ID))

	got := env.notificationsOf(t, u1.ID)[0]
	require.NotNil(t, got.ReadAt)
	assert.True(t, fixed.Equal(*got.ReadAt))
}
