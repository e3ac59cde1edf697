// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/database/schema"
	"github.com/taibuivan/vodstrm/internal/platform/dberr"
	"github.com/taibuivan/vodstrm/internal/platform/postgres"
)

const resourceName = "Record"

// PostgresRepository stores records in strm.record.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wraps an open pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	return strings.Join(schema.StrmRecord.Columns(), ", ")
}

func (repository *PostgresRepository) Create(context context.Context, record *Record) error {
	files, err := json.Marshal(record.Files)
	if err != nil {
		return apperr.Internal(err)
	}

	placeholders := make([]string, len(schema.StrmRecord.Columns()))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.StrmRecord.Table, selectColumns(), strings.Join(placeholders, ", "))

	_, err = repository.db.Exec(context, query,
		record.ID, record.Title, record.Year, string(record.MediaType), record.SourceName, files,
		record.SuccessCount, record.SkippedCount, record.CreatedAt, record.UpdatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_record")
}

func (repository *PostgresRepository) List(context context.Context) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectColumns(), schema.StrmRecord.Table, schema.StrmRecord.CreatedAt, schema.StrmRecord.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_records")
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_record")
		}
		records = append(records, record)
	}

	return records, dberr.Wrap(rows.Err(), resourceName, "list_records")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.StrmRecord.Table, schema.StrmRecord.ID)

	record, err := scanRecord(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_record")
	}
	return record, nil
}

func (repository *PostgresRepository) Replace(context context.Context, record *Record) error {
	files, err := json.Marshal(record.Files)
	if err != nil {
		return apperr.Internal(err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1
	`,
		schema.StrmRecord.Table,
		schema.StrmRecord.Title, schema.StrmRecord.Year, schema.StrmRecord.MediaType, schema.StrmRecord.SourceName,
		schema.StrmRecord.Files, schema.StrmRecord.SuccessCount, schema.StrmRecord.SkippedCount, schema.StrmRecord.UpdatedAt,
		schema.StrmRecord.ID,
	)

	tag, err := repository.db.Exec(context, query,
		record.ID, record.Title, record.Year, string(record.MediaType), record.SourceName, files,
		record.SuccessCount, record.SkippedCount, record.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resourceName, "replace_record")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.StrmRecord.Table, schema.StrmRecord.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_record")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

func (repository *PostgresRepository) Ping(context context.Context) error {
	return postgres.Ping(context, repository.db)
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		record    Record
		mediaType string
		files     []byte
	)

	err := row.Scan(
		&record.ID, &record.Title, &record.Year, &mediaType, &record.SourceName, &files,
		&record.SuccessCount, &record.SkippedCount, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.MediaType = library.MediaType(mediaType)
	if err := json.Unmarshal(files, &record.Files); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}

	return &record, nil
}
