package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a string array stored as a JSON document column.
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}

	if len(bytes) == 0 {
		*a = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// GormDataType lets gorm pick a JSON column type per dialect.
func (StringList) GormDataType() string {
	return "json"
}
