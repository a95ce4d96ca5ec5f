package store

import (
	"database/sql"
	"fmt"

	"github.com/sonphnt/mathjs/internal/value"
)

// marshalValue converts a Value to canonical JSON TEXT for storage.
func marshalValue(v value.Value) (string, error) {
	data, err := value.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalOptional stores nil as SQL NULL.
func marshalOptional(v value.Value) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	s, err := marshalValue(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

func unmarshalValue(data string) (value.Value, error) {
	v, err := value.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return v, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
