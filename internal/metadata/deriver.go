package metadata

import (
	"github.com/neatous/go-translatable/internal/logging"
	"github.com/neatous/go-translatable/internal/runtimeconfig"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// Canonical names of the derived schema elements.
const (
	AssociationTranslations = "translations"
	AssociationTranslatable = "translatable"
	ColumnLocale            = "locale"
	ColumnTranslatableID    = "translatable_id"
)

// MetadataLookup grants the deriver read access to already-registered type
// metadata when deriving the owning side of the relation.
type MetadataLookup interface {
	Metadata(name string) (*TypeMetadata, bool)
}

// Deriver injects the relational mapping a translatable/translation pair
// needs: the one-to-many translations association, the many-to-one inverse
// with its cascade-delete foreign key, the locale column, and the root-scoped
// uniqueness constraint. Every injection is additive: elements a concrete type
// already declared explicitly are left alone, so re-running the deriver across
// an inheritance chain is safe.
type Deriver struct {
	fetch        runtimeconfig.FetchMode
	localeLength int
	logger       interfaces.Logger
}

// NewDeriver builds a deriver using the externally supplied fetch strategy and
// locale column length.
func NewDeriver(cfg runtimeconfig.Config, provider interfaces.LoggerProvider) *Deriver {
	length := cfg.LocaleColumnLength
	if length <= 0 {
		length = 5
	}
	return &Deriver{
		fetch:        cfg.Fetch,
		localeLength: length,
		logger:       logging.MetadataLogger(provider),
	}
}

// Derive inspects the prototype's capabilities and injects the missing mapping
// elements into meta. Abstract base types are skipped; concrete leaf types get
// the full treatment. The lookup must already hold finalized metadata for a
// translation type's owner, otherwise derivation fails with a configuration
// error that should abort schema bootstrap.
func (d *Deriver) Derive(meta *TypeMetadata, prototype any, lookup MetadataLookup) error {
	if meta == nil {
		return ErrTypeNameRequired
	}
	if meta.Abstract() {
		d.logger.Debug("metadata.derive.skip_abstract", "type", meta.Name())
		return nil
	}

	if translatable, ok := prototype.(interfaces.Translatable); ok {
		if err := d.deriveTranslatable(meta, translatable); err != nil {
			return err
		}
	}

	if translation, ok := prototype.(interfaces.Translation); ok {
		if err := d.deriveTranslation(meta, translation, lookup); err != nil {
			return err
		}
	}

	return nil
}

func (d *Deriver) deriveTranslatable(meta *TypeMetadata, prototype interfaces.Translatable) error {
	if meta.HasAssociation(AssociationTranslations) {
		return nil
	}

	err := meta.AddAssociation(Association{
		Name:           AssociationTranslations,
		Kind:           OneToMany,
		Target:         prototype.TranslationTypeName(),
		MappedBy:       AssociationTranslatable,
		IndexBy:        ColumnLocale,
		CascadePersist: true,
		CascadeRemove:  true,
		OrphanRemoval:  true,
		Fetch:          d.fetch,
	})
	if err != nil {
		return err
	}

	d.logger.Debug("metadata.derive.translations",
		"type", meta.Name(),
		"target", prototype.TranslationTypeName(),
	)
	return nil
}

func (d *Deriver) deriveTranslation(meta *TypeMetadata, prototype interfaces.Translation, lookup MetadataLookup) error {
	if !meta.HasAssociation(AssociationTranslatable) {
		ownerName := prototype.TranslatableTypeName()
		ownerMeta, ok := lookupMetadata(lookup, ownerName)
		if !ok {
			return &UnknownOwnerError{Type: meta.Name(), Owner: ownerName}
		}
		pk := ownerMeta.PrimaryKey()
		if pk == "" {
			return ErrPrimaryKeyRequired
		}

		err := meta.AddAssociation(Association{
			Name:           AssociationTranslatable,
			Kind:           ManyToOne,
			Target:         ownerName,
			InversedBy:     AssociationTranslations,
			CascadePersist: true,
			Fetch:          d.fetch,
			JoinColumn: &JoinColumn{
				Name:             ColumnTranslatableID,
				ReferencedColumn: pk,
				OnDelete:         "CASCADE",
				NotNull:          true,
			},
		})
		if err != nil {
			return err
		}

		d.logger.Debug("metadata.derive.translatable",
			"type", meta.Name(),
			"owner", ownerName,
		)
	}

	if err := d.deriveUniqueConstraint(meta, lookup); err != nil {
		return err
	}

	if !meta.HasColumn(ColumnLocale) && !meta.HasAssociation(ColumnLocale) {
		err := meta.AddColumn(Column{
			Name:    ColumnLocale,
			Type:    "varchar",
			Length:  d.localeLength,
			NotNull: true,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// deriveUniqueConstraint lands the (translatable_id, locale) constraint on the
// hierarchy root exactly once. Subclasses route the injection to the root's
// metadata instead of duplicating it on their own tables.
func (d *Deriver) deriveUniqueConstraint(meta *TypeMetadata, lookup MetadataLookup) error {
	target := meta
	if !meta.IsHierarchyRoot() {
		rootMeta, ok := lookupMetadata(lookup, meta.RootName())
		if !ok {
			return ErrUnknownRootType
		}
		target = rootMeta
	}

	name := UniqueConstraintName(target.Table())
	if target.HasUniqueConstraint(name) {
		return nil
	}

	return target.AddUniqueConstraint(UniqueConstraint{
		Name:    name,
		Columns: []string{ColumnTranslatableID, ColumnLocale},
	})
}

func lookupMetadata(lookup MetadataLookup, name string) (*TypeMetadata, bool) {
	if lookup == nil {
		return nil, false
	}
	meta, ok := lookup.Metadata(name)
	if !ok || meta == nil {
		return nil, false
	}
	return meta, true
}
