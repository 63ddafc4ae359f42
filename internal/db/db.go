package db

import (
	"fmt"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/leads"
	"github.com/nexvstar/site/internal/models"
	"github.com/nexvstar/site/internal/newsletter"
	"github.com/nexvstar/site/internal/notify"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database for driver "mysql" (default) or "sqlite".
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = gormsqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	if driver != "sqlite" {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("db: pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return gdb, nil
}

// Models lists every persisted table.
func Models() []any {
	return []any{
		&models.User{},
		&leads.Lead{},
		&leads.DemoRequest{},
		&newsletter.Subscriber{},
		&content.BlogPost{},
		&content.Testimonial{},
		&notify.Job{},
	}
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("db: automigrate: %w", err)
	}
	return nil
}
