package metadata

import (
	"fmt"

	"github.com/neatous/go-translatable/pkg/interfaces"
)

// entry pairs a type's raw metadata with the prototype instance used for
// capability checks. Capabilities are resolved once, at registration time.
type entry struct {
	meta         *TypeMetadata
	prototype    any
	translatable interfaces.Translatable
	translation  interfaces.Translation
}

// Registry is the explicit bidirectional lookup table binding translatable
// types to their translation types. It replaces the convention of class-level
// accessors resolved through runtime reflection: every type the schema build
// should see is registered here, together with a prototype instance whose
// interface set decides which capabilities the type carries.
type Registry struct {
	entries map[string]*entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]*entry{}}
}

// Register adds a type to the registry. The prototype decides capabilities:
// implementing interfaces.Translatable and/or interfaces.Translation marks the
// type accordingly; a prototype with neither is registered as a plain type the
// deriver leaves untouched.
func (r *Registry) Register(meta *TypeMetadata, prototype any) error {
	if meta == nil {
		return ErrTypeNameRequired
	}
	if prototype == nil {
		return ErrPrototypeRequired
	}
	if _, exists := r.entries[meta.Name()]; exists {
		return ErrTypeAlreadyRegistered
	}

	e := &entry{meta: meta, prototype: prototype}
	if t, ok := prototype.(interfaces.Translatable); ok {
		e.translatable = t
	}
	if t, ok := prototype.(interfaces.Translation); ok {
		e.translation = t
	}

	r.entries[meta.Name()] = e
	r.order = append(r.order, meta.Name())
	return nil
}

// Metadata satisfies MetadataLookup over the registered raw metadata.
func (r *Registry) Metadata(name string) (*TypeMetadata, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.meta, true
}

// Names returns registered type names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// VerifyBindings checks that every registered translatable/translation pair
// round-trips: the translatable's declared translation type must exist, carry
// the translation capability, and declare the translatable back as its owner.
// A translation whose registered owner lacks the translatable capability is
// rejected too; deriving it against a plain type's metadata would produce a
// one-sided mapping.
func (r *Registry) VerifyBindings() error {
	for _, name := range r.order {
		e := r.entries[name]
		if e.translatable == nil {
			continue
		}

		translationName := e.translatable.TranslationTypeName()
		other, ok := r.entries[translationName]
		if !ok || other.translation == nil {
			return &UnknownTranslationError{Type: name, Translation: translationName}
		}

		declared := other.translation.TranslatableTypeName()
		if declared != name {
			return &BindingMismatchError{
				Translatable: name,
				Translation:  translationName,
				Declared:     declared,
			}
		}
	}

	for _, name := range r.order {
		e := r.entries[name]
		if e.translation == nil {
			continue
		}
		ownerName := e.translation.TranslatableTypeName()
		owner, ok := r.entries[ownerName]
		if !ok {
			// Missing owners surface during derivation with full context.
			continue
		}
		if owner.translatable == nil {
			return fmt.Errorf("%w: translation %q declares owner %q", ErrOwnerNotTranslatable, name, ownerName)
		}
	}
	return nil
}
