package bunstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/neatous/go-translatable/internal/translated"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// Registered type identities for the shipped entity pair.
const (
	DocumentTypeName            = "Document"
	DocumentTranslationTypeName = "DocumentTranslation"
)

// Document is the reference translatable entity shipped with the store: a
// parent record whose translated fields live on DocumentTranslation rows. It
// doubles as the integration fixture for the derived mapping.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:doc"`

	translated.Holder `bun:"-"`

	ID                uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug              string     `bun:"slug,notnull,unique" json:"slug"`
	DefaultLocaleCode string     `bun:"default_locale,notnull" json:"default_locale"`
	CreatedAt         time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	DeletedAt         *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`

	TranslationRows []*DocumentTranslation `bun:"rel:has-many,join:id=translatable_id" json:"translations,omitempty"`
}

// NewDocument constructs a bound document. Binding the holder here honours
// the contract that translation collections are initialized before first use.
func NewDocument(slug, defaultLocale string) *Document {
	doc := &Document{
		ID:                uuid.New(),
		Slug:              slug,
		DefaultLocaleCode: defaultLocale,
	}
	doc.Bind(doc)
	doc.SetDefaultLocale(defaultLocale)
	return doc
}

func (*Document) TranslationTypeName() string { return DocumentTranslationTypeName }

func (d *Document) NewTranslation() interfaces.Translation {
	return &DocumentTranslation{ID: uuid.New(), TranslatableID: d.ID}
}

// SyncTranslationRows projects the authoritative collection back onto the
// relation slice so an insert persists merged translations. Locale order is
// deterministic.
func (d *Document) SyncTranslationRows() {
	locales := d.Locales()
	rows := make([]*DocumentTranslation, 0, len(locales))
	for _, locale := range locales {
		if translation, ok := d.Translation(locale); ok {
			if row, ok := translation.(*DocumentTranslation); ok {
				rows = append(rows, row)
			}
		}
	}
	d.TranslationRows = rows
}

var _ bun.AfterScanRowHook = (*Document)(nil)

// AfterScanRow rebinds the holder and seeds the default locale. The hook runs
// while the parent row is scanned, before bun executes the relation
// sub-query, so TranslationRows is still empty here; adoption happens in
// AdoptTranslations once the full select has completed.
func (d *Document) AfterScanRow(context.Context) error {
	if !d.Bound() {
		d.Bind(d)
	}
	d.SetDefaultLocale(d.DefaultLocaleCode)
	return nil
}

// AdoptTranslations moves the fetched relation rows into the authoritative
// collection. The store calls it after the select, when the relation rows
// are populated.
func (d *Document) AdoptTranslations() error {
	if !d.Bound() {
		d.Bind(d)
	}
	for _, row := range d.TranslationRows {
		if err := d.Attach(row); err != nil {
			return err
		}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Document)(nil)

// BeforeAppendModel fires the pre-insert notification. Updates pass through
// untouched; locales only shift on load and first insert.
func (d *Document) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); !ok {
		return nil
	}
	if !d.Bound() {
		d.Bind(d)
	}
	if listener := ListenerFromContext(ctx); listener != nil {
		listener.BeforeInsert(d)
	}
	return nil
}

// DocumentTranslation carries the translated fields of one document in one
// locale. The translatable_id column plus locale are unique per the derived
// constraint.
type DocumentTranslation struct {
	bun.BaseModel `bun:"table:document_translations,alias:doctr"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TranslatableID uuid.UUID `bun:"translatable_id,notnull,type:uuid" json:"translatable_id"`
	LocaleCode     string    `bun:"locale,notnull" json:"locale"`
	Title          string    `bun:"title" json:"title"`
	Body           string    `bun:"body" json:"body"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Document *Document `bun:"rel:belongs-to,join:translatable_id=id" json:"document,omitempty"`

	owner interfaces.Translatable
}

func (*DocumentTranslation) TranslatableTypeName() string { return DocumentTypeName }

func (t *DocumentTranslation) Locale() string { return t.LocaleCode }

func (t *DocumentTranslation) SetLocale(locale string) { t.LocaleCode = locale }

func (t *DocumentTranslation) Translatable() interfaces.Translatable { return t.owner }

// SetTranslatable wires the in-memory back-reference and, when the owner is a
// document, stamps the foreign key column.
func (t *DocumentTranslation) SetTranslatable(owner interfaces.Translatable) {
	t.owner = owner
	if doc, ok := owner.(*Document); ok {
		t.TranslatableID = doc.ID
		t.Document = doc
	}
}

func (t *DocumentTranslation) IsEmpty() bool {
	return t.Title == "" && t.Body == ""
}

var (
	_ interfaces.Translatable = (*Document)(nil)
	_ interfaces.Translation  = (*DocumentTranslation)(nil)
)
