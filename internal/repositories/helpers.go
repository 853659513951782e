package repository

import (
	"database/sql"
	"fmt"
)

func expectAffected(result sql.Result, entity string, id any) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}

	return nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	return &s.String
}
