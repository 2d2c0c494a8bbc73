package initializers

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// OpenDatabase opens a gorm handle for one of the supported drivers.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "", "mysql":
		dialector = mysql.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func ConnectToDB() {
	if Cfg.DBURL == "" {
		zap.S().Fatal("DB_URL is not set")
	}
	db, err := OpenDatabase(Cfg.DBDriver, Cfg.DBURL)
	if err != nil {
		zap.S().Fatalf("Failed to connect to database: %v", err)
	}
	DB = db
	zap.S().Infof("Database connection successful, driver: %s", Cfg.DBDriver)
}
