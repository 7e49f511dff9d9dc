package storage

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Open returns the store selected by driver. path is the data file or the SQLite database file.
func Open(driver, path string, logger *zap.Logger) (Store, error) {
	switch driver {
	case DriverJSON, "":
		s, err := NewJSONStore(path, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("using JSON file store", zap.String("path", path))
		return s, nil
	case DriverSQLite:
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		logger.Info("using SQLite store, migrations applied", zap.String("path", path))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
