package documents

import "context"

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	GetByStorageKey(ctx context.Context, userId, storageKey string) (Document, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Document, error)
}
