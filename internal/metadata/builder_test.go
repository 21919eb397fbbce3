package metadata

import (
	"errors"
	"testing"

	"github.com/neatous/go-translatable/internal/runtimeconfig"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

func newTestBuilder(t *testing.T) *SchemaBuilder {
	t.Helper()
	builder, err := NewSchemaBuilder(runtimeconfig.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new schema builder: %v", err)
	}
	return builder
}

func TestSchemaBuilderBuildsFrozenSchema(t *testing.T) {
	builder := newTestBuilder(t)

	articleMeta := newArticleMeta(t)
	translationMeta := newArticleTranslationMeta(t)
	if err := builder.Register(articleMeta, article{}); err != nil {
		t.Fatalf("register article: %v", err)
	}
	if err := builder.Register(translationMeta, &articleTranslation{}); err != nil {
		t.Fatalf("register translation: %v", err)
	}

	schema, err := builder.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	meta, ok := schema.Type("ArticleTranslation")
	if !ok {
		t.Fatal("expected translation metadata in schema")
	}
	if !meta.Frozen() {
		t.Fatal("expected frozen metadata after build")
	}
	if err := meta.AddColumn(Column{Name: "extra", Type: "text"}); !errors.Is(err, ErrMetadataFrozen) {
		t.Fatalf("expected ErrMetadataFrozen, got %v", err)
	}
	if _, ok := meta.Association(AssociationTranslatable); !ok {
		t.Fatal("expected derived translatable association")
	}

	names := schema.Names()
	if len(names) != 2 || names[0] != "Article" || names[1] != "ArticleTranslation" {
		t.Fatalf("unexpected schema names %v", names)
	}
}

func TestSchemaBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Fetch = runtimeconfig.FetchMode("prefetch")
	if _, err := NewSchemaBuilder(cfg, nil); !errors.Is(err, runtimeconfig.ErrFetchModeInvalid) {
		t.Fatalf("expected ErrFetchModeInvalid, got %v", err)
	}
}

func TestSchemaBuilderRejectsDuplicateRegistration(t *testing.T) {
	builder := newTestBuilder(t)
	if err := builder.Register(newArticleMeta(t), article{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := builder.Register(newArticleMeta(t), article{}); !errors.Is(err, ErrTypeAlreadyRegistered) {
		t.Fatalf("expected ErrTypeAlreadyRegistered, got %v", err)
	}
}

func TestSchemaBuilderFailsOnMissingTranslationType(t *testing.T) {
	builder := newTestBuilder(t)
	if err := builder.Register(newArticleMeta(t), article{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := builder.Build()
	if !errors.Is(err, ErrUnknownTranslation) {
		t.Fatalf("expected ErrUnknownTranslation, got %v", err)
	}
}

type strayTranslation struct {
	articleTranslation
}

func (*strayTranslation) TranslatableTypeName() string { return "Page" }

func TestSchemaBuilderFailsOnBindingMismatch(t *testing.T) {
	builder := newTestBuilder(t)
	if err := builder.Register(newArticleMeta(t), article{}); err != nil {
		t.Fatalf("register article: %v", err)
	}
	if err := builder.Register(newArticleTranslationMeta(t), &strayTranslation{}); err != nil {
		t.Fatalf("register stray translation: %v", err)
	}

	_, err := builder.Build()
	if !errors.Is(err, ErrBindingMismatch) {
		t.Fatalf("expected ErrBindingMismatch, got %v", err)
	}

	var mismatch *BindingMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected BindingMismatchError, got %T", err)
	}
	if mismatch.Declared != "Page" {
		t.Fatalf("expected declared owner Page, got %q", mismatch.Declared)
	}
}

func TestSchemaBuilderFailsWhenOwnerLacksCapability(t *testing.T) {
	builder := newTestBuilder(t)

	// Registered under the name the translation declares, but without the
	// translatable capability.
	plainOwner, err := NewTypeMetadata("Article", "articles")
	if err != nil {
		t.Fatalf("plain owner metadata: %v", err)
	}
	if err := plainOwner.SetPrimaryKey(Column{Name: "id", Type: "uuid"}); err != nil {
		t.Fatalf("set primary key: %v", err)
	}
	if err := builder.Register(plainOwner, struct{}{}); err != nil {
		t.Fatalf("register plain owner: %v", err)
	}
	if err := builder.Register(newArticleTranslationMeta(t), &articleTranslation{}); err != nil {
		t.Fatalf("register translation: %v", err)
	}

	_, err = builder.Build()
	if !errors.Is(err, ErrOwnerNotTranslatable) {
		t.Fatalf("expected ErrOwnerNotTranslatable, got %v", err)
	}
}

func TestSchemaBuilderIsSingleUse(t *testing.T) {
	builder := newTestBuilder(t)
	if err := builder.Register(newArticleMeta(t), article{}); err != nil {
		t.Fatalf("register article: %v", err)
	}
	if err := builder.Register(newArticleTranslationMeta(t), &articleTranslation{}); err != nil {
		t.Fatalf("register translation: %v", err)
	}
	if _, err := builder.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}

	if err := builder.Register(newArticleMeta(t), article{}); !errors.Is(err, ErrMetadataFrozen) {
		t.Fatalf("expected ErrMetadataFrozen on late registration, got %v", err)
	}
	if _, err := builder.Build(); !errors.Is(err, ErrMetadataFrozen) {
		t.Fatalf("expected ErrMetadataFrozen on second build, got %v", err)
	}
}

func TestSchemaBuilderAllowsPlainTypes(t *testing.T) {
	builder := newTestBuilder(t)

	plain, err := NewTypeMetadata("AuditLog", "audit_logs")
	if err != nil {
		t.Fatalf("plain metadata: %v", err)
	}
	if err := builder.Register(plain, struct{}{}); err != nil {
		t.Fatalf("register plain type: %v", err)
	}

	schema, err := builder.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	meta, ok := schema.Type("AuditLog")
	if !ok {
		t.Fatal("expected plain type in schema")
	}
	if len(meta.Associations()) != 0 {
		t.Fatal("expected no derived associations on plain type")
	}
}

var _ interfaces.Translation = (*strayTranslation)(nil)
