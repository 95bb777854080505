package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-list-api/internal/domain"
)

// OpenDB 内存 sqlite，表结构与线上一致。
// 限制单连接：sqlite 的 :memory: 每个新连接都是一张空库。
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.TodoTask{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
