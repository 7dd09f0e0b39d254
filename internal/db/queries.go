package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
)

const selectColumns = `
	SELECT id, value, length, is_palindrome, unique_characters,
		word_count, char_freq_json, created_at
	FROM strings`

// Insert stores a new record.
func (s *Store) Insert(ctx context.Context, rec *record.Record) error {
	freqJSON, err := json.Marshal(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO strings (
			id, value, length, is_palindrome, unique_characters,
			word_count, char_freq_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	p := rec.Properties
	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Value, p.Length, p.IsPalindrome, p.UniqueCharacters,
		p.WordCount, string(freqJSON), rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewDuplicateValue(rec.ID)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByKey retrieves a record by its id.
func (s *Store) GetByKey(ctx context.Context, key string) (*record.Record, error) {
	return s.getOne(ctx, selectColumns+" WHERE id = ?", key)
}

// GetByValue retrieves a record by its exact value.
func (s *Store) GetByValue(ctx context.Context, value string) (*record.Record, error) {
	return s.getOne(ctx, selectColumns+" WHERE value = ?", value)
}

func (s *Store) getOne(ctx context.Context, query, arg string) (*record.Record, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(arg)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rec, nil
}

// ExistsByValue reports whether a record with the given value is stored.
func (s *Store) ExistsByValue(ctx context.Context, value string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM strings WHERE value = ?)", value).Scan(&exists)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return exists, nil
}

// DeleteByValue removes the record with the given value.
func (s *Store) DeleteByValue(ctx context.Context, value string) (bool, error) {
	return s.deleteWhere(ctx, "value", value)
}

// DeleteByKey removes the record with the given id.
func (s *Store) DeleteByKey(ctx context.Context, key string) (bool, error) {
	return s.deleteWhere(ctx, "id", key)
}

func (s *Store) deleteWhere(ctx context.Context, column, arg string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM strings WHERE "+column+" = ?", arg)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return n > 0, nil
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]*record.Record, error) {
	return s.Filter(ctx, record.Filters{})
}

// Filter returns the records matching every present field of f, in insertion order.
func (s *Store) Filter(ctx context.Context, f record.Filters) ([]*record.Record, error) {
	query, args := buildFilterQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	result := make([]*record.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return result, nil
}

// buildFilterQuery translates f into a WHERE clause over the stored property columns.
func buildFilterQuery(f record.Filters) (string, []any) {
	var where []string
	var args []any

	if f.IsPalindrome != nil {
		where = append(where, "is_palindrome = ?")
		args = append(args, *f.IsPalindrome)
	}
	if f.MinLength != nil {
		where = append(where, "length >= ?")
		args = append(args, *f.MinLength)
	}
	if f.MaxLength != nil {
		where = append(where, "length <= ?")
		args = append(args, *f.MaxLength)
	}
	if f.WordCount != nil {
		where = append(where, "word_count = ?")
		args = append(args, *f.WordCount)
	}
	if f.ContainsCharacter != nil {
		// instr is case-sensitive and counts characters, not bytes
		where = append(where, "instr(value, ?) > 0")
		args = append(args, *f.ContainsCharacter)
	}

	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq ASC"

	return query, args
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strings").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*record.Record, error) {
	var (
		rec       record.Record
		freqJSON  string
		createdAt int64
	)

	err := row.Scan(
		&rec.ID, &rec.Value, &rec.Properties.Length, &rec.Properties.IsPalindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount, &freqJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(freqJSON), &rec.Properties.CharacterFrequencyMap); err != nil {
		return nil, err
	}
	rec.Properties.SHA256Hash = rec.ID
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	return &rec, nil
}
