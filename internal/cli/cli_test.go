package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockOpener(t *testing.T) (OpenDB, sqlmock.Sqlmock, *bool) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	opened := false
	return func(context.Context) (*gorm.DB, func(), error) {
		opened = true
		return db, func() {}, nil
	}, mock, &opened
}

func run(t *testing.T, open OpenDB, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd(nil)

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "access-code")
}

func TestAccessCodeCreate(t *testing.T) {
	open, mock, _ := mockOpener(t)
	mock.ExpectExec("INSERT INTO `codigos_acceso`").
		WithArgs("MED-2026", "médico").
		WillReturnResult(sqlmock.NewResult(0, 1))

	out, err := run(t, open, "access-code", "create", "--code", "MED-2026", "--role", "médico")

	require.NoError(t, err)
	assert.Contains(t, out, "MED-2026")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessCodeCreate_RejectsUnknownRole(t *testing.T) {
	open, mock, opened := mockOpener(t)

	_, err := run(t, open, "access-code", "create", "--code", "X", "--role", "pacientes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --role")
	assert.False(t, *opened)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessCodeCreate_RequiresCode(t *testing.T) {
	open, _, opened := mockOpener(t)

	_, err := run(t, open, "access-code", "create", "--role", "admin")

	require.Error(t, err)
	assert.False(t, *opened)
}

func TestAccessCodeCreate_Duplicate(t *testing.T) {
	open, mock, _ := mockOpener(t)
	mock.ExpectExec("INSERT INTO `codigos_acceso`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := run(t, open, "access-code", "create", "--code", "ADM-1", "--role", "admin")

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestAccessCodeList(t *testing.T) {
	open, mock, _ := mockOpener(t)
	mock.ExpectQuery("SELECT \\* FROM `codigos_acceso` ORDER BY tipo_usuario, codigo").
		WillReturnRows(sqlmock.NewRows([]string{"codigo", "tipo_usuario"}).
			AddRow("ADM-1", "admin").
			AddRow("ING-1", "ingeniero"))

	out, err := run(t, open, "access-code", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "ADM-1")
	assert.Contains(t, out, "ingeniero")
	assert.NoError(t, mock.ExpectationsWereMet())
}
