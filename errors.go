package translatable

import (
	"github.com/neatous/go-translatable/internal/bunstore"
	"github.com/neatous/go-translatable/internal/metadata"
	"github.com/neatous/go-translatable/internal/runtimeconfig"
	"github.com/neatous/go-translatable/internal/translated"
)

// Configuration errors surfaced during schema bootstrap. They indicate a
// broken naming or binding convention and abort the build.
var (
	ErrUnknownOwnerType      = metadata.ErrUnknownOwnerType
	ErrUnknownTranslation    = metadata.ErrUnknownTranslation
	ErrUnknownRootType       = metadata.ErrUnknownRootType
	ErrBindingMismatch       = metadata.ErrBindingMismatch
	ErrPrimaryKeyRequired    = metadata.ErrPrimaryKeyRequired
	ErrTypeAlreadyRegistered = metadata.ErrTypeAlreadyRegistered
	ErrMetadataFrozen        = metadata.ErrMetadataFrozen
	ErrFetchModeInvalid      = runtimeconfig.ErrFetchModeInvalid
	ErrLocaleLengthInvalid   = runtimeconfig.ErrLocaleLengthInvalid
	ErrDefaultLocaleTooLong  = runtimeconfig.ErrDefaultLocaleTooLong
)

// Runtime errors raised by the translation holder.
var (
	ErrHolderNotBound    = translated.ErrHolderNotBound
	ErrLocaleRequired    = translated.ErrLocaleRequired
	ErrTranslationExists = translated.ErrTranslationExists
)

// Store errors.
var (
	ErrDialectUnknown = bunstore.ErrDialectUnknown
	ErrModelMissing   = bunstore.ErrModelMissing
)

// Structured error types for errors.As inspection.
type (
	UnknownOwnerError       = metadata.UnknownOwnerError
	UnknownTranslationError = metadata.UnknownTranslationError
	BindingMismatchError    = metadata.BindingMismatchError
	MergeConflictError      = translated.MergeConflictError
	NotFoundError           = bunstore.NotFoundError
)
