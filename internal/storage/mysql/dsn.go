package mysql

import (
	"time"

	"github.com/cockroachdb/errors"
	driver "github.com/go-sql-driver/mysql"
)

// NormalizeDSN turns on parseTime and UTC locations, which RecentSearches
// needs to scan DATETIME columns into time.Time.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "parse MYSQL_DSN")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
