package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	translatable "github.com/neatous/go-translatable"
	"github.com/neatous/go-translatable/internal/logging/gologger"

	_ "github.com/mattn/go-sqlite3"
)

type cliLocales struct {
	current  string
	fallback string
}

func (p cliLocales) CurrentLocale() string  { return p.current }
func (p cliLocales) FallbackLocale() string { return p.fallback }

func main() {
	locale := flag.String("locale", "es", "locale to read documents in")
	fallback := flag.String("fallback", "en", "fallback locale when a translation is missing")
	flag.Parse()

	if err := run(context.Background(), *locale, *fallback); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context, locale, fallback string) error {
	cfg := translatable.DefaultConfig()
	cfg.DefaultLocale = fallback
	cfg.Logging.Format = "console"

	logs, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	builder, err := translatable.NewSchemaBuilder(cfg, logs)
	if err != nil {
		return err
	}
	if err := translatable.RegisterDocumentTypes(builder); err != nil {
		return err
	}
	schema, err := builder.Build()
	if err != nil {
		return err
	}

	sqldb, err := sql.Open("sqlite3", "file:translatable_example?mode=memory&cache=shared&_fk=1")
	if err != nil {
		return err
	}
	defer sqldb.Close()
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := translatable.CreateTables(ctx, db, schema, translatable.DocumentModels(), logs); err != nil {
		return err
	}

	listener := translatable.NewListener(cliLocales{current: locale, fallback: fallback}, logs)
	store := translatable.NewStore(db, listener, logs)

	doc := translatable.NewDocument("getting-started", fallback)
	if err := translate(doc, "en", "Getting started", "Install the module and register your entity pair."); err != nil {
		return err
	}
	if err := translate(doc, "es", "Primeros pasos", "Instala el modulo y registra tu par de entidades."); err != nil {
		return err
	}
	if err := doc.MergeNewTranslations(); err != nil {
		return err
	}
	if _, err := store.CreateDocument(ctx, doc); err != nil {
		return err
	}

	loaded, err := store.GetBySlug(ctx, "getting-started")
	if err != nil {
		return err
	}

	translation, err := loaded.Resolve("", true)
	if err != nil {
		return err
	}
	row := translation.(*translatable.DocumentTranslation)
	fmt.Printf("document %q in %q:\n  %s\n  %s\n", loaded.Slug, row.Locale(), row.Title, row.Body)

	for _, name := range schema.Names() {
		meta, _ := schema.Type(name)
		fmt.Printf("type %s -> table %s (%d associations, %d unique constraints)\n",
			meta.Name(), meta.Table(), len(meta.Associations()), len(meta.UniqueConstraints()))
	}
	return nil
}

func translate(doc *translatable.Document, locale, title, body string) error {
	translation, err := doc.Resolve(locale, false)
	if err != nil {
		return err
	}
	row, ok := translation.(*translatable.DocumentTranslation)
	if !ok {
		return fmt.Errorf("unexpected translation type %T", translation)
	}
	row.Title = title
	row.Body = body
	return nil
}
