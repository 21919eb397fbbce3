package translated

import (
	"sort"
	"strings"

	"github.com/neatous/go-translatable/pkg/interfaces"
)

// Holder carries the per-instance translation state of a translatable entity:
// the authoritative collection keyed by locale, the staging collection of
// lazily created placeholders, and the two locale fields. Concrete entities
// embed it and bind it to themselves at construction time.
//
// A holder belongs to exactly one logical unit of work at a time and performs
// no synchronization of its own, matching the session semantics of the
// persistence layer it serves. None of its operations block or perform I/O.
type Holder struct {
	owner interfaces.Translatable

	translations map[string]interfaces.Translation
	pending      map[string]interfaces.Translation

	currentLocale string
	defaultLocale string
}

// MergeOption tunes MergeNewTranslations.
type MergeOption func(*mergeOptions)

type mergeOptions struct {
	skipEmpty bool
}

// WithSkipEmpty drops staged placeholders whose IsEmpty predicate reports
// true instead of merging them. Placeholders that never received content stay
// out of the authoritative collection and are discarded.
func WithSkipEmpty() MergeOption {
	return func(o *mergeOptions) { o.skipEmpty = true }
}

// Bind attaches the holder to its owning entity. Concrete entities call it
// from their constructor; every other operation requires it.
func (h *Holder) Bind(owner interfaces.Translatable) {
	h.owner = owner
	if h.translations == nil {
		h.translations = map[string]interfaces.Translation{}
	}
	if h.pending == nil {
		h.pending = map[string]interfaces.Translation{}
	}
}

// Bound reports whether Bind has run.
func (h *Holder) Bound() bool { return h.owner != nil }

// Resolve returns the translation for the requested locale. An empty locale
// falls back to the current locale, then the default locale. Lookup order:
// the authoritative collection for the requested locale; with allowFallback,
// the authoritative collection for the default locale (one hop, never a
// chain); the staging collection; finally a fresh placeholder for the
// originally requested locale, staged for a later merge. Repeated calls for
// the same unmet locale return the identical staged instance.
//
// Callers relying on fallback must inspect the returned translation's locale:
// a default-locale hit comes back under the default locale, never re-labelled
// as the requested one.
func (h *Holder) Resolve(locale string, allowFallback bool) (interfaces.Translation, error) {
	if h.owner == nil {
		return nil, ErrHolderNotBound
	}

	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = h.currentLocale
	}
	if locale == "" {
		locale = h.defaultLocale
	}
	if locale == "" {
		return nil, ErrLocaleRequired
	}

	if translation, ok := h.translations[locale]; ok {
		return translation, nil
	}

	if allowFallback && h.defaultLocale != "" && locale != h.defaultLocale {
		if translation, ok := h.translations[h.defaultLocale]; ok {
			return translation, nil
		}
	}

	if staged, ok := h.pending[locale]; ok {
		return staged, nil
	}

	translation := h.owner.NewTranslation()
	translation.SetLocale(locale)
	translation.SetTranslatable(h.owner)
	if h.pending == nil {
		h.pending = map[string]interfaces.Translation{}
	}
	h.pending[locale] = translation
	return translation, nil
}

// Translation returns the authoritative translation for the locale, if any.
// Staged, unmerged translations are not visible here.
func (h *Holder) Translation(locale string) (interfaces.Translation, bool) {
	translation, ok := h.translations[locale]
	return translation, ok
}

// Translations returns a copy of the authoritative collection keyed by
// locale. Staged translations are excluded until merged.
func (h *Holder) Translations() map[string]interfaces.Translation {
	out := make(map[string]interfaces.Translation, len(h.translations))
	for locale, translation := range h.translations {
		out[locale] = translation
	}
	return out
}

// Locales returns the locales present in the authoritative collection in
// lexical order.
func (h *Holder) Locales() []string {
	locales := make([]string, 0, len(h.translations))
	for locale := range h.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Attach inserts a translation into the authoritative collection under its
// locale key, wiring the back-reference. Load glue uses it to adopt records
// the persistence layer fetched; an existing entry for the same locale is
// replaced, the store being the source of truth on load.
func (h *Holder) Attach(translation interfaces.Translation) error {
	if h.owner == nil {
		return ErrHolderNotBound
	}
	locale := strings.TrimSpace(translation.Locale())
	if locale == "" {
		return ErrLocaleRequired
	}
	translation.SetTranslatable(h.owner)
	if h.translations == nil {
		h.translations = map[string]interfaces.Translation{}
	}
	h.translations[locale] = translation
	return nil
}

// PendingTranslations returns a copy of the staging collection keyed by
// locale: every placeholder created by Resolve that has not been merged yet.
func (h *Holder) PendingTranslations() map[string]interfaces.Translation {
	out := make(map[string]interfaces.Translation, len(h.pending))
	for locale, translation := range h.pending {
		out[locale] = translation
	}
	return out
}

// HasPendingTranslations reports whether staged placeholders are waiting for
// a merge. Discarding an instance while this is true silently loses the
// staged records; callers that care should check before letting go.
func (h *Holder) HasPendingTranslations() bool {
	return len(h.pending) > 0
}

// MergeNewTranslations moves every staged placeholder into the authoritative
// collection under its locale key and clears the staging collection. The
// application calls it exactly once before handing the instance to the
// persistence layer for insertion; the holder never merges on its own because
// insertion points vary by application flow. A locale key that is already
// occupied fails the whole merge and leaves both collections untouched.
// Merging with an empty staging collection is a no-op.
func (h *Holder) MergeNewTranslations(opts ...MergeOption) error {
	if len(h.pending) == 0 {
		return nil
	}
	if h.owner == nil {
		return ErrHolderNotBound
	}

	var options mergeOptions
	for _, opt := range opts {
		opt(&options)
	}

	for locale, staged := range h.pending {
		if options.skipEmpty && staged.IsEmpty() {
			continue
		}
		if _, taken := h.translations[locale]; taken {
			return &MergeConflictError{Locale: locale}
		}
	}

	for locale, staged := range h.pending {
		if options.skipEmpty && staged.IsEmpty() {
			continue
		}
		if h.translations == nil {
			h.translations = map[string]interfaces.Translation{}
		}
		h.translations[locale] = staged
	}
	h.pending = map[string]interfaces.Translation{}
	return nil
}

// ApplyLocales records the ambient locale pair supplied by a lifecycle
// notification. Empty values leave the corresponding field unchanged, so a
// provider with nothing to say is a no-op.
func (h *Holder) ApplyLocales(current, fallback string) {
	if trimmed := strings.TrimSpace(current); trimmed != "" {
		h.currentLocale = trimmed
	}
	if trimmed := strings.TrimSpace(fallback); trimmed != "" {
		h.defaultLocale = trimmed
	}
}

// CurrentLocale returns the transient current locale, set per load or
// pre-insert notification and never persisted.
func (h *Holder) CurrentLocale() string { return h.currentLocale }

// DefaultLocale returns the fallback locale Resolve targets on its single
// fallback hop.
func (h *Holder) DefaultLocale() string { return h.defaultLocale }

// SetDefaultLocale seeds the fallback locale outside a lifecycle
// notification, e.g. from configuration at construction time.
func (h *Holder) SetDefaultLocale(locale string) {
	h.defaultLocale = strings.TrimSpace(locale)
}
