package connection_test

import (
	"testing"

	"go-hradmin/internal/shared/connection"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Two separate mock connections stand in for the pool and the
// transaction. A statement issued through the bound session must hit
// the transaction's connection; the pool stays untouched.
func TestBindTx_RoutesStatementsToTransaction(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	require.NoError(t, err)
	defer poolDB.Close()

	base, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 poolDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	require.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	require.NoError(t, err)

	txMock.ExpectQuery(`SELECT count\(\*\) FROM "payrolls" WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	bound := connection.BindTx(base, tx)

	var n int64
	err = bound.Table("payrolls").Where("user_id = ?", "u-1").Count(&n).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
