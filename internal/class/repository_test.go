package class

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupClassMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

var classCols = []string{"id", "title", "description", "class_type", "trainer_id", "hall", "start_time", "end_time", "max_participants", "created_at"}
var registrationCols = []string{"id", "class_id", "client_id", "attended", "registered_at", "attendance_marked_at"}

func classRow(id int, maxParticipants interface{}) *sqlmock.Rows {
	start := time.Now().Add(24 * time.Hour)
	return sqlmock.NewRows(classCols).
		AddRow(id, "Morning Yoga", nil, "group", 2, "Hall A", start, start.Add(time.Hour), maxParticipants, time.Now())
}

func TestRegister_Success_Repository(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	ctx := context.Background()

	mock.ExpectBegin()

	// Блокируем строку занятия на время проверок
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, class_type, trainer_id, hall, start_time, end_time, max_participants, created_at FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(15).
		WillReturnRows(classRow(15, 10))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM memberships WHERE client_id = $1 AND is_active = true )")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM class_registrations WHERE class_id = $1")).
		WithArgs(15).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_registrations (class_id, client_id, attended) VALUES ($1, $2, false) RETURNING id, class_id, client_id, attended, registered_at, attendance_marked_at")).
		WithArgs(15, 10).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, false, time.Now(), nil))

	mock.ExpectCommit()

	reg, err := repo.Register(ctx, 15, 10)
	require.NoError(t, err)
	require.Equal(t, 88, reg.ID)
	require.False(t, reg.Attended)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_ClassNotFound(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(classCols))

	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 99, 10)
	require.ErrorIs(t, err, ErrClassNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_NoActiveMembership(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(15).
		WillReturnRows(classRow(15, 10))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 15, 10)
	require.ErrorIs(t, err, ErrNoActiveMembership)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_ClassFull(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(15).
		WillReturnRows(classRow(15, 10))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM class_registrations WHERE class_id = $1")).
		WithArgs(15).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 15, 10)
	require.ErrorIs(t, err, ErrClassFull)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_UnlimitedClassSkipsCapacityCheck(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	// max_participants = NULL, вместимость не проверяется
	mock.ExpectQuery(regexp.QuoteMeta("FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(15).
		WillReturnRows(classRow(15, nil))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_registrations")).
		WithArgs(15, 10).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(89, 15, 10, false, time.Now(), nil))

	mock.ExpectCommit()

	_, err := repo.Register(context.Background(), 15, 10)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Duplicate(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fitness_classes WHERE id = $1 FOR UPDATE")).
		WithArgs(15).
		WillReturnRows(classRow(15, 10))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM class_registrations WHERE class_id = $1")).
		WithArgs(15).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_registrations")).
		WithArgs(15, 10).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "class_registrations_class_id_client_id_key"})

	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 15, 10)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAttendance_DeductsVisit(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, client_id, attended, registered_at, attendance_marked_at FROM class_registrations WHERE id = $1 FOR UPDATE")).
		WithArgs(88).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, false, time.Now(), nil))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT m.id, m.remaining_visits FROM memberships m JOIN membership_types mt ON m.membership_type_id = mt.id WHERE m.client_id = $1 AND m.is_active = true AND mt.category = 'visit_based' ORDER BY m.created_at DESC LIMIT 1 FOR UPDATE OF m")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "remaining_visits"}).AddRow(42, 5))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE memberships SET remaining_visits = remaining_visits - 1 WHERE id = $1")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE class_registrations SET attended = $2, attendance_marked_at = CASE WHEN $2 THEN NOW() ELSE NULL END WHERE id = $1 RETURNING id, class_id, client_id, attended, registered_at, attendance_marked_at")).
		WithArgs(88, true).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, true, time.Now(), time.Now()))

	mock.ExpectCommit()

	reg, err := repo.SetAttendance(context.Background(), 88, true)
	require.NoError(t, err)
	require.True(t, reg.Attended)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAttendance_NoVisitsLeft_RollsBack(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1 FOR UPDATE")).
		WithArgs(88).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, false, time.Now(), nil))

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF m")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "remaining_visits"}).AddRow(42, 0))

	mock.ExpectRollback()

	_, err := repo.SetAttendance(context.Background(), 88, true)
	require.ErrorIs(t, err, ErrNoVisitsLeft)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAttendance_AlreadyAttended_NoSecondDeduction(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	// attended уже true, повторная отметка не трогает абонемент
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1 FOR UPDATE")).
		WithArgs(88).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, true, time.Now(), time.Now()))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE class_registrations SET attended = $2")).
		WithArgs(88, true).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, true, time.Now(), time.Now()))

	mock.ExpectCommit()

	_, err := repo.SetAttendance(context.Background(), 88, true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAttendance_ClearFlag_NoDeduction(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1 FOR UPDATE")).
		WithArgs(88).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, true, time.Now(), time.Now()))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE class_registrations SET attended = $2")).
		WithArgs(88, false).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, false, time.Now(), nil))

	mock.ExpectCommit()

	reg, err := repo.SetAttendance(context.Background(), 88, false)
	require.NoError(t, err)
	require.False(t, reg.Attended)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAttendance_TimeBasedMembership_NoDeduction(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1 FOR UPDATE")).
		WithArgs(88).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, false, time.Now(), nil))

	// Нет активного визитного абонемента, списывать нечего
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF m")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "remaining_visits"}))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE class_registrations SET attended = $2")).
		WithArgs(88, true).
		WillReturnRows(sqlmock.NewRows(registrationCols).AddRow(88, 15, 10, true, time.Now(), time.Now()))

	mock.ExpectCommit()

	_, err := repo.SetAttendance(context.Background(), 88, true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, close := setupClassMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fitness_classes WHERE id = $1")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	require.ErrorIs(t, err, ErrClassNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
