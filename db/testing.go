package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// ConnectTestDB подключает свежую in-memory sqlite базу для тестов.
// Каждый вызов создает отдельную базу, чтобы тесты не влияли друг на друга.
func ConnectTestDB() error {
	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", seq)

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}

	if err := Migrate(database); err != nil {
		return fmt.Errorf("failed to migrate test database: %w", err)
	}

	ORM = database
	return nil
}
