package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/neatous/go-translatable/internal/logging"
	"github.com/neatous/go-translatable/internal/metadata"
	"github.com/neatous/go-translatable/internal/translated"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// RegisterTypes adds the shipped document pair to a schema builder. Hosts
// registering their own entity pairs can use it as a template.
func RegisterTypes(builder *metadata.SchemaBuilder) error {
	docMeta, err := metadata.NewTypeMetadata(DocumentTypeName, "documents")
	if err != nil {
		return err
	}
	if err := docMeta.SetPrimaryKey(metadata.Column{Name: "id", Type: "uuid"}); err != nil {
		return err
	}
	if err := builder.Register(docMeta, (*Document)(nil)); err != nil {
		return err
	}

	translationMeta, err := metadata.NewTypeMetadata(DocumentTranslationTypeName, "document_translations")
	if err != nil {
		return err
	}
	if err := translationMeta.SetPrimaryKey(metadata.Column{Name: "id", Type: "uuid"}); err != nil {
		return err
	}
	return builder.Register(translationMeta, (*DocumentTranslation)(nil))
}

// Models maps the registered type names onto the bun models CreateTables
// expects.
func Models() map[string]any {
	return map[string]any{
		DocumentTypeName:            (*Document)(nil),
		DocumentTranslationTypeName: (*DocumentTranslation)(nil),
	}
}

// Store persists documents and their translations, firing lifecycle
// notifications through the configured listener on load and insert paths.
type Store struct {
	db           *bun.DB
	documents    repository.Repository[*Document]
	translations repository.Repository[*DocumentTranslation]
	listener     *translated.Listener
	logger       interfaces.Logger
}

func NewStore(db *bun.DB, listener *translated.Listener, logs interfaces.LoggerProvider) *Store {
	return &Store{
		db:           db,
		documents:    NewDocumentRepository(db),
		translations: NewDocumentTranslationRepository(db),
		listener:     listener,
		logger:       logging.StoreLogger(logs),
	}
}

// CreateDocument inserts the document together with its authoritative
// translations. The caller is responsible for merging staged translations
// first; anything still pending at this point never persists.
func (s *Store) CreateDocument(ctx context.Context, doc *Document) (*Document, error) {
	ctx = WithListener(ctx, s.listener)

	if doc.HasPendingTranslations() {
		s.logger.Warn("bunstore.document.pending_translations",
			"slug", doc.Slug,
			"pending", len(doc.PendingTranslations()),
		)
	}

	doc.SyncTranslationRows()
	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, mapRepositoryError(err, "document", doc.Slug)
	}

	if len(doc.TranslationRows) > 0 {
		if _, err := s.db.NewInsert().Model(&doc.TranslationRows).Exec(ctx); err != nil {
			return nil, mapRepositoryError(err, "document translation", doc.Slug)
		}
	}

	s.logger.Info("bunstore.document.created",
		"slug", doc.Slug,
		"translations", len(doc.TranslationRows),
	)
	return created, nil
}

// GetBySlug loads a document with its translation rows, adopts them into the
// authoritative collection, and fires the post-load notification. Adoption
// cannot live in a scan hook: the relation rows only exist once the full
// select has run.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Document, error) {
	doc := new(Document)
	err := s.db.NewSelect().
		Model(doc).
		Relation("TranslationRows").
		Where("doc.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "document", Key: slug}
		}
		return nil, err
	}
	if err := doc.AdoptTranslations(); err != nil {
		return nil, err
	}
	s.listener.InstanceLoaded(doc)

	logging.WithEntityContext(s.logger, DocumentTypeName, doc.CurrentLocale()).Debug(
		"bunstore.document.loaded",
		"slug", doc.Slug,
		"translations", len(doc.TranslationRows),
	)
	return doc, nil
}

// AddTranslations persists freshly merged translations of an existing
// document.
func (s *Store) AddTranslations(ctx context.Context, doc *Document, locales ...string) error {
	ctx = WithListener(ctx, s.listener)

	for _, locale := range locales {
		translation, ok := doc.Translation(locale)
		if !ok {
			return &NotFoundError{Resource: "document translation", Key: locale}
		}
		row, ok := translation.(*DocumentTranslation)
		if !ok {
			continue
		}
		if _, err := s.translations.Create(ctx, row); err != nil {
			return mapRepositoryError(err, "document translation", locale)
		}
	}
	return nil
}

// DeleteDocument removes the document; the derived foreign key cascades the
// delete to its translation rows.
func (s *Store) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.NewDelete().
		Model((*Document)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// CountTranslations reports the number of persisted translation rows for a
// document, bypassing the holder. Useful for asserting cascade behaviour.
func (s *Store) CountTranslations(ctx context.Context, id uuid.UUID) (int, error) {
	return s.db.NewSelect().
		Model((*DocumentTranslation)(nil)).
		Where("translatable_id = ?", id).
		Count(ctx)
}
