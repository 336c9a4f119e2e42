package db

import (
	"github.com/glebarez/sqlite"
	"github.com/wearewright/zmail-proxy/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the SQLite database and runs migrations.
func Init(dbPath string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&models.Account{}); err != nil {
		return nil, err
	}

	return gdb, nil
}
