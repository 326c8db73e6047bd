package repositories

import (
	"database/sql"
	"deconfliction-service/internal/domain"
	"fmt"
	"strconv"
)

const (
	kindNumeric = "numeric"
	kindText    = "text"
)

// encodeWindowBound maps a window bound to its (value, kind) columns.
// Instants are stored in their RFC 3339 text form.
func encodeWindowBound(v *domain.TimeValue) (any, any) {
	if v == nil || v.IsZero() {
		return nil, nil
	}
	if v.Kind() == domain.TimeNumeric {
		return v.String(), kindNumeric
	}
	return v.String(), kindText
}

func decodeWindowBound(value, kind sql.NullString) (*domain.TimeValue, error) {
	if !value.Valid {
		return nil, nil
	}

	var tv domain.TimeValue
	switch kind.String {
	case kindNumeric:
		s, err := strconv.ParseFloat(value.String, 64)
		if err != nil {
			return nil, fmt.Errorf("decode window bound %q: %w", value.String, err)
		}
		tv = domain.Numeric(s)
	default:
		tv = domain.Text(value.String)
	}
	return &tv, nil
}
