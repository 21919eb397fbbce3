package bunstore

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/neatous/go-translatable/internal/logging"
	"github.com/neatous/go-translatable/internal/metadata"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

var (
	// ErrDialectUnknown indicates an unsupported dialect identifier.
	ErrDialectUnknown = errors.New("bunstore: unknown dialect")
	// ErrModelMissing indicates a schema type without a registered bun model.
	ErrModelMissing = errors.New("bunstore: no bun model registered for schema type")
	// ErrOwnerTableMissing indicates a derived join pointing at a type absent
	// from the schema.
	ErrOwnerTableMissing = errors.New("bunstore: owner type missing from schema")
)

const schemaCreateFailedCode = "SCHEMA_CREATE_FAILED"

// Dialect resolves a configuration identifier to a bun schema dialect.
func Dialect(name string) (schema.Dialect, error) {
	switch name {
	case "", "sqlite", "sqlite3":
		return sqlitedialect.New(), nil
	case "postgres", "pg", "postgresql":
		return pgdialect.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrDialectUnknown, name)
	}
}

// CreateTables materializes the frozen schema: one table per registered type
// with the derived cascade-delete foreign key, then the derived unique
// indexes. Models maps registered type names to bun model pointers; plain
// schema types without a model are skipped, capability types must have one.
func CreateTables(ctx context.Context, db bun.IDB, sch *metadata.Schema, models map[string]any, logs interfaces.LoggerProvider) error {
	logger := logging.StoreLogger(logs)

	for _, name := range sch.Names() {
		meta, _ := sch.Type(name)
		model, ok := models[name]
		if !ok {
			if _, derived := meta.Association(metadata.AssociationTranslatable); derived {
				return fmt.Errorf("%w: %s", ErrModelMissing, name)
			}
			if _, derived := meta.Association(metadata.AssociationTranslations); derived {
				return fmt.Errorf("%w: %s", ErrModelMissing, name)
			}
			continue
		}

		query := db.NewCreateTable().Model(model).IfNotExists()
		if assoc, ok := meta.Association(metadata.AssociationTranslatable); ok && assoc.JoinColumn != nil {
			ownerMeta, ok := sch.Type(assoc.Target)
			if !ok {
				return fmt.Errorf("%w: %s", ErrOwnerTableMissing, assoc.Target)
			}
			query = query.ForeignKey(foreignKeyClause(*assoc.JoinColumn, ownerMeta.Table()))
		}

		if _, err := query.Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryCommand, "create table failed").
				WithTextCode(schemaCreateFailedCode)
		}
		logger.Debug("bunstore.table.created", "type", name, "table", meta.Table())
	}

	for _, name := range sch.Names() {
		meta, _ := sch.Type(name)
		if _, ok := models[name]; !ok {
			continue
		}
		for _, unique := range meta.UniqueConstraints() {
			_, err := db.NewCreateIndex().
				Unique().
				IfNotExists().
				Index(unique.Name).
				Table(meta.Table()).
				Column(unique.Columns...).
				Exec(ctx)
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryCommand, "create unique index failed").
					WithTextCode(schemaCreateFailedCode)
			}
			logger.Debug("bunstore.index.created", "index", unique.Name, "table", meta.Table())
		}
	}

	return nil
}

// foreignKeyClause renders the derived join column as a CREATE TABLE foreign
// key clause. Identifiers are double-quoted for sqlite and postgres alike.
func foreignKeyClause(join metadata.JoinColumn, ownerTable string) string {
	return fmt.Sprintf(
		"(%q) REFERENCES %q (%q) ON DELETE %s",
		join.Name, ownerTable, join.ReferencedColumn, join.OnDelete,
	)
}
