package db

import (
	"database/sql"
	"time"
)

// Entry is one row of the key-value table
type Entry struct {
	Key       string
	Value     string
	UpdatedAt sql.NullTime // NULL for rows written before the column existed
}

// Age reports how long ago the entry was last written
func (e Entry) Age() time.Duration {
	if !e.UpdatedAt.Valid {
		return 0
	}
	return time.Since(e.UpdatedAt.Time)
}
