package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecomm/internal/model"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestMigrateAndReset(t *testing.T) {
	gormDB, err := Open("sqlite", SQLiteFileDSN(filepath.Join(t.TempDir(), "ecomm.db")))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, Migrate(gormDB))
	for _, table := range []string{"customers", "customer_accounts", "products", "orders", "order_product"} {
		assert.True(t, gormDB.Migrator().HasTable(table), table)
	}

	// Migrating twice is harmless.
	require.NoError(t, Migrate(gormDB))

	require.NoError(t, Reset(gormDB))
	for _, m := range model.AllModels() {
		assert.False(t, gormDB.Migrator().HasTable(m))
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	gormDB, err := Open("sqlite", SQLiteFileDSN(filepath.Join(t.TempDir(), "ecomm.db")))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, Migrate(gormDB))

	require.NoError(t, gormDB.Create(&model.Customer{Name: "Ada", Email: "ada@example.com", Phone: "555"}).Error)

	err = gormDB.Create(&model.Order{CustomerID: 42, Date: model.NewDate(2024, 1, 1)}).Error
	assert.Error(t, err)
	err = gormDB.Create(&model.Account{CustomerID: 42, Username: "ghost", Email: "ghost@example.com", PasswordHash: "x"}).Error
	assert.Error(t, err)
}

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, gormDB *gorm.DB, table string) []foreignKey {
	t.Helper()
	var fks []foreignKey
	require.NoError(t, gormDB.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&fks).Error)
	return fks
}

func TestForeignKeysPointAtParents(t *testing.T) {
	gormDB, err := Open("sqlite", SQLiteFileDSN(filepath.Join(t.TempDir(), "ecomm.db")))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, Migrate(gormDB))

	assert.Empty(t, foreignKeys(t, gormDB, "customers"))
	assert.Empty(t, foreignKeys(t, gormDB, "products"))

	toCustomer := foreignKey{Table: "customers", From: "customer_id", To: "customer_id", OnDelete: "RESTRICT"}
	assert.Equal(t, []foreignKey{toCustomer}, foreignKeys(t, gormDB, "orders"))
	assert.Equal(t, []foreignKey{toCustomer}, foreignKeys(t, gormDB, "customer_accounts"))

	assert.ElementsMatch(t, []foreignKey{
		{Table: "orders", From: "order_id", To: "order_id", OnDelete: "RESTRICT"},
		{Table: "products", From: "product_id", To: "product_id", OnDelete: "RESTRICT"},
	}, foreignKeys(t, gormDB, "order_product"))
}
