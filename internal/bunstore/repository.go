package bunstore

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NotFoundError reports a lookup miss for a document or translation record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bunstore: %s %q not found", e.Resource, e.Key)
}

func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord: func() *Document { return &Document{} },
		GetID: func(d *Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(d *Document) string {
			return d.Slug
		},
	})
}

func NewDocumentTranslationRepository(db *bun.DB) repository.Repository[*DocumentTranslation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DocumentTranslation]{
		NewRecord: func() *DocumentTranslation { return &DocumentTranslation{} },
		GetID: func(t *DocumentTranslation) uuid.UUID {
			return t.ID
		},
		SetID: func(t *DocumentTranslation, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "locale"
		},
		GetIdentifierValue: func(t *DocumentTranslation) string {
			return t.LocaleCode
		},
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
