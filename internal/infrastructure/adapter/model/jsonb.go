package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores a raw JSON document in a PostgreSQL jsonb column
type JSONB json.RawMessage

// Value implements driver.Valuer
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner
func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = JSONB("{}")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(append([]byte(nil), v...))
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// GormDataType tells GORM which column type to use
func (JSONB) GormDataType() string {
	return "jsonb"
}
