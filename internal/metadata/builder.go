package metadata

import (
	"github.com/neatous/go-translatable/internal/logging"
	"github.com/neatous/go-translatable/internal/runtimeconfig"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// SchemaBuilder orchestrates the one-time bootstrap pass: register every
// entity type, then Build derives the translatable/translation mappings and
// freezes the result. The builder is not safe for concurrent use; hosts are
// expected to run registration and Build from a single bootstrap goroutine,
// matching the usual schema-init sequencing of the surrounding persistence
// layer.
type SchemaBuilder struct {
	registry *Registry
	deriver  *Deriver
	logger   interfaces.Logger
	built    bool
}

// NewSchemaBuilder validates the configuration and prepares an empty builder.
func NewSchemaBuilder(cfg runtimeconfig.Config, provider interfaces.LoggerProvider) (*SchemaBuilder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SchemaBuilder{
		registry: NewRegistry(),
		deriver:  NewDeriver(cfg, provider),
		logger:   logging.MetadataLogger(provider),
	}, nil
}

// Register adds a type and its prototype to the pending schema.
func (b *SchemaBuilder) Register(meta *TypeMetadata, prototype any) error {
	if b.built {
		return ErrMetadataFrozen
	}
	return b.registry.Register(meta, prototype)
}

// Build verifies the registered bindings, derives mappings for every concrete
// type, and returns the frozen schema. Translatable owners derive before their
// translation types so the owning side can read an already-complete primary
// key. Any derivation failure aborts the build: a broken binding is a
// configuration error affecting the whole hierarchy, not a recoverable
// per-type condition.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.built {
		return nil, ErrMetadataFrozen
	}

	if err := b.registry.VerifyBindings(); err != nil {
		b.logger.Error("metadata.build.binding_failed", "error", err)
		return nil, err
	}

	// First pass covers owners and plain types, second pass the translation
	// types that need the owners' finalized primary keys.
	for _, name := range b.registry.Names() {
		e := b.registry.entries[name]
		if e.translation != nil {
			continue
		}
		if err := b.deriver.Derive(e.meta, e.prototype, b.registry); err != nil {
			return nil, err
		}
	}
	for _, name := range b.registry.Names() {
		e := b.registry.entries[name]
		if e.translation == nil {
			continue
		}
		if err := b.deriver.Derive(e.meta, e.prototype, b.registry); err != nil {
			return nil, err
		}
	}

	types := make(map[string]*TypeMetadata, len(b.registry.entries))
	for name, e := range b.registry.entries {
		e.meta.freeze()
		types[name] = e.meta
	}
	b.built = true

	b.logger.Info("metadata.build.complete", "types", len(types))
	return &Schema{types: types}, nil
}
