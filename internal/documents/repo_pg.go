package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo is a Postgres implementation of DocumentsRepo.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = "id, user_id, file_name, mime_type, size_bytes, storage_key, created_at"

// Create inserts a document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const q = `
		INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, q,
		doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID returns a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1 AND user_id = $2`, documentColumns)
	row := r.DB.QueryRowContext(ctx, q, documentID, userId)
	return scanDocument(row)
}

// GetByStorageKey returns a user's document by its storage key.
func (r *PGRepo) GetByStorageKey(ctx context.Context, userId, storageKey string) (Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents WHERE storage_key = $1 AND user_id = $2`, documentColumns)
	row := r.DB.QueryRowContext(ctx, q, storageKey, userId)
	return scanDocument(row)
}

// ListByUser returns documents for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, documentColumns)
	rows, err := r.DB.QueryContext(ctx, q, userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.MimeType, &doc.SizeBytes, &doc.StorageKey, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.MimeType, &doc.SizeBytes, &doc.StorageKey, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}
