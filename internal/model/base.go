package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BaseModel carries the common primary key and timestamps.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VersionedModel adds an optimistic-lock version counter.
type VersionedModel struct {
	BaseModel
	Version int64 `gorm:"default:1" json:"version"`
}

// IntArray maps a PostgreSQL integer[] column.
type IntArray []int

// Scan implements sql.Scanner for integer[] values like {1,3,5}.
func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into IntArray", value)
	}

	s = strings.Trim(s, "{}")
	if s == "" {
		*a = IntArray{}
		return nil
	}

	parts := strings.Split(s, ",")
	result := make(IntArray, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid integer array element %q: %w", p, err)
		}
		result = append(result, n)
	}
	*a = result
	return nil
}

// Value implements driver.Valuer.
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Contains reports whether n is in the array.
func (a IntArray) Contains(n int) bool {
	for _, v := range a {
		if v == n {
			return true
		}
	}
	return false
}
