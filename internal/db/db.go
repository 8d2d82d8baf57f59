package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/model"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Open connects to the database selected by DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return NewMySQL(cfg.MySQLDSN)
	case "postgres":
		return NewPostgres(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// openWith opens a connection with duplicate-key translation and the shared pool limits.
func openWith(dialector gorm.Dialector, driver string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("%s pool: %w", driver, err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	return gormDB, nil
}

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.OtpVerification{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Notification{},
		&model.EmailLog{},
	}
}

// Migrate runs auto-migrations, dropping every table first when reset is set.
func Migrate(gormDB *gorm.DB, reset bool) error {
	models := Models()

	if reset {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for i := len(models) - 1; i >= 0; i-- {
			if err := gormDB.Migrator().DropTable(models[i]); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
