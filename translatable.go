// Package translatable derives the relational mapping between a parent
// entity and its locale-specific translation records, and provides the
// runtime protocol for resolving, lazily creating, and staging translations
// on an instance before it reaches the persistence layer.
package translatable

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/neatous/go-translatable/internal/bunstore"
	"github.com/neatous/go-translatable/internal/metadata"
	"github.com/neatous/go-translatable/internal/runtimeconfig"
	"github.com/neatous/go-translatable/internal/translated"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// Capability and collaborator contracts re-exported for hosts.
type (
	Translatable   = interfaces.Translatable
	Translation    = interfaces.Translation
	LocaleProvider = interfaces.LocaleProvider
	Logger         = interfaces.Logger
	LoggerProvider = interfaces.LoggerProvider
	FieldsLogger   = interfaces.FieldsLogger
)

// Configuration surface.
type (
	Config        = runtimeconfig.Config
	LoggingConfig = runtimeconfig.LoggingConfig
	FetchMode     = runtimeconfig.FetchMode
)

const (
	FetchLazy      = runtimeconfig.FetchLazy
	FetchEager     = runtimeconfig.FetchEager
	FetchExtraLazy = runtimeconfig.FetchExtraLazy
)

// Schema metadata surface.
type (
	TypeMetadata     = metadata.TypeMetadata
	Column           = metadata.Column
	Association      = metadata.Association
	JoinColumn       = metadata.JoinColumn
	UniqueConstraint = metadata.UniqueConstraint
	Schema           = metadata.Schema
	SchemaBuilder    = metadata.SchemaBuilder
)

// Runtime surface.
type (
	Holder      = translated.Holder
	Listener    = translated.Listener
	MergeOption = translated.MergeOption
)

// Bun-backed store surface.
type (
	Document            = bunstore.Document
	DocumentTranslation = bunstore.DocumentTranslation
	Store               = bunstore.Store
)

// DefaultConfig returns the configuration used when the host supplies
// nothing: lazy fetch, "en" default locale, five-character locale column.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// NewSchemaBuilder validates the configuration and prepares the one-time
// schema bootstrap pass.
func NewSchemaBuilder(cfg Config, logs LoggerProvider) (*SchemaBuilder, error) {
	return metadata.NewSchemaBuilder(cfg, logs)
}

// NewTypeMetadata starts a metadata builder for a registered entity type.
func NewTypeMetadata(name, table string) (*TypeMetadata, error) {
	return metadata.NewTypeMetadata(name, table)
}

// MustNewTypeMetadata is NewTypeMetadata for static registration blocks.
func MustNewTypeMetadata(name, table string) *TypeMetadata {
	return metadata.MustNewTypeMetadata(name, table)
}

// UniqueConstraintName derives the deterministic name of the per-hierarchy
// translation uniqueness constraint for migration tooling.
func UniqueConstraintName(table string) string {
	return metadata.UniqueConstraintName(table)
}

// NewListener wires a locale provider into the load and pre-insert lifecycle
// notifications.
func NewListener(locales LocaleProvider, logs LoggerProvider) *Listener {
	return translated.NewListener(locales, logs)
}

// WithSkipEmpty makes a merge drop staged placeholders that never received
// content.
func WithSkipEmpty() MergeOption {
	return translated.WithSkipEmpty()
}

// NewStore builds the bun-backed document store.
func NewStore(db *bun.DB, listener *Listener, logs LoggerProvider) *Store {
	return bunstore.NewStore(db, listener, logs)
}

// NewDocument constructs a bound document with its translation collections
// initialized.
func NewDocument(slug, defaultLocale string) *Document {
	return bunstore.NewDocument(slug, defaultLocale)
}

// RegisterDocumentTypes adds the shipped document pair to a schema builder.
func RegisterDocumentTypes(builder *SchemaBuilder) error {
	return bunstore.RegisterTypes(builder)
}

// DocumentModels maps the shipped type names onto bun models for
// CreateTables.
func DocumentModels() map[string]any {
	return bunstore.Models()
}

// CreateTables materializes a frozen schema as live tables and unique
// indexes.
func CreateTables(ctx context.Context, db bun.IDB, schema *Schema, models map[string]any, logs LoggerProvider) error {
	return bunstore.CreateTables(ctx, db, schema, models, logs)
}

// WithListener attaches a lifecycle listener to a query context so bun model
// hooks can fire notifications.
func WithListener(ctx context.Context, listener *Listener) context.Context {
	return bunstore.WithListener(ctx, listener)
}

// Dialect resolves a configuration identifier ("sqlite", "postgres") to a bun
// schema dialect.
func Dialect(name string) (schema.Dialect, error) {
	return bunstore.Dialect(name)
}
