package services

import (
	"testing"

	"docflow_backend/internal/services/dto"
	"docflow_backend/pkg/apperrors"
	"docflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// countDepartmentLocks считает SELECT ... FOR UPDATE по таблице departments.
// sqlite не печатает блокировку в SQL, но клауза остается в Statement.
func countDepartmentLocks(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	locks := new(int)
	err := db.Callback().Query().Before("gorm:query").Register("test:department_lock", func(tx *gorm.DB) {
		if tx.Statement.Table != "departments" {
			return
		}
		c, ok := tx.Statement.Clauses["FOR"]
		if !ok {
			return
		}
		if l, ok := c.Expression.(clause.Locking); ok && l.Strength == clause.LockingStrengthUpdate {
			*locks++
		}
	})
	require.NoError(t, err)
	return locks
}

func TestDepartmentReferences_TakeRowLock(t *testing.T) {
	f := newDocumentFixture(t)
	empty := helpers.CreateDepartment(t, f.env.db, "Пустой отдел")
	locks := countDepartmentLocks(t, f.env.db)

	resp := f.env.upload(t, f.uploader.ID, f.dept.ID, f.docType.ID, "a.pdf")
	assert.Equal(t, 1, *locks, "upload")

	_, err := f.env.svc.AuthService.SignUp(f.env.ctx, f.env.db, f.admin.ID, &dto.SignUpRequest{
		Username:     "newbie",
		Password:     "secret123",
		Name:         "Новичок",
		DepartmentID: f.dept.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, *locks, "signup")

	_, err = f.env.svc.ResponsibleService.Assign(f.env.ctx, f.env.db, f.admin.ID, empty.ID, f.stranger.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, *locks, "assign")

	moved := empty.ID
	_, err = f.env.svc.UserService.Update(f.env.ctx, f.env.db, f.admin.ID, f.stranger.ID, &dto.UpdateUserRequest{DepartmentID: &moved})
	require.NoError(t, err)
	assert.Equal(t, 4, *locks, "user move")

	err = f.env.svc.DocumentService.Update(f.env.ctx, f.env.db, f.uploader.ID, resp.ID,
		&dto.UpdateDocumentRequest{ResponsibleID: &moved})
	require.NoError(t, err)
	assert.Equal(t, 5, *locks, "document move")

	// отдел с пользователем: удаление блокирует строку и получает конфликт
	err = f.env.svc.DepartmentService.Delete(f.env.ctx, f.env.db, f.admin.ID, empty.ID)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentInUse)
	assert.Equal(t, 6, *locks, "delete")

	// чтение списка отделов не блокирует
	_, err = f.env.svc.DepartmentService.List(f.env.db)
	require.NoError(t, err)
	assert.Equal(t, 6, *locks)
}
