package db

import (
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance.
// Timestamps are only scanned into time.Time when parseTime is on, so it is forced.
func NewMySQL(dsn string) (*gorm.DB, error) {
	return openWith(mysql.Open(withParseTime(dsn)), "mysql")
}

func withParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=True"
	}
	return dsn + "?parseTime=True"
}
