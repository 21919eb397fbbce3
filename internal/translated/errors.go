package translated

import (
	"errors"
	"fmt"
)

var (
	// ErrHolderNotBound indicates a holder whose owning entity never called
	// Bind. Initializing the holder is a construction-time responsibility of
	// the concrete entity.
	ErrHolderNotBound = errors.New("translatable: holder is not bound to an owner")
	// ErrLocaleRequired indicates a resolution request with no usable locale.
	ErrLocaleRequired = errors.New("translatable: locale is required")
	// ErrTranslationExists indicates a merge collision with an already-present
	// locale key.
	ErrTranslationExists = errors.New("translatable: translation already exists for locale")
)

// MergeConflictError reports a staged translation whose locale key was taken
// by the time the merge ran. It indicates a race between lazy placeholder
// creation and an externally added translation and must never be resolved by
// overwriting either side.
type MergeConflictError struct {
	Locale string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("translatable: staged translation for locale %q collides with an existing translation", e.Locale)
}

func (e *MergeConflictError) Unwrap() error {
	return ErrTranslationExists
}
