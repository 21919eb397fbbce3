package interfaces

// Translatable is the capability contract implemented by parent entities that
// own a set of locale-specific translation records. Concrete entities embed
// translated.Holder for the runtime collection handling and implement the two
// type-level accessors below, the Go rendition of a class-level declaration
// binding a translatable type to its translation type.
type Translatable interface {
	// TranslationTypeName returns the registered identity of the translation
	// type owned by this entity. The value must match the name the
	// translation type was registered under.
	TranslationTypeName() string

	// NewTranslation constructs an empty translation record of the declared
	// translation type. The caller is responsible for assigning locale and
	// back-reference.
	NewTranslation() Translation
}

// Translation is the capability contract implemented by locale-specific child
// records. Each translation belongs to exactly one translatable owner and
// carries a short locale code that is unique within that owner.
type Translation interface {
	// TranslatableTypeName returns the registered identity of the owning
	// translatable type.
	TranslatableTypeName() string

	Locale() string
	SetLocale(locale string)

	// Translatable returns the owning entity, or nil when the record has not
	// been attached yet.
	Translatable() Translatable
	SetTranslatable(owner Translatable)

	// IsEmpty reports whether every translated field is unset. Callers can use
	// it to skip persisting placeholder records that never received content;
	// the runtime never enforces it on its own.
	IsEmpty() bool
}

// LocaleProvider supplies the ambient locale pair consumed on lifecycle
// notifications. An empty string means the provider has no value, in which
// case the corresponding entity field is left untouched.
type LocaleProvider interface {
	CurrentLocale() string
	FallbackLocale() string
}
