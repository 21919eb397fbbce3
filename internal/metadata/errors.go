package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrTypeNameRequired      = errors.New("metadata: type name is required")
	ErrTableNameRequired     = errors.New("metadata: table name is required")
	ErrColumnNameRequired    = errors.New("metadata: column name is required")
	ErrTypeAlreadyRegistered = errors.New("metadata: type already registered")
	ErrPrototypeRequired     = errors.New("metadata: prototype instance is required")
	ErrMetadataFrozen        = errors.New("metadata: metadata is frozen")
	ErrDuplicateAssociation  = errors.New("metadata: association already declared")
	ErrDuplicateColumn       = errors.New("metadata: column already declared")
	ErrDuplicateConstraint   = errors.New("metadata: unique constraint already declared")
	ErrPrimaryKeyRequired    = errors.New("metadata: primary key is required")
	ErrUnknownOwnerType      = errors.New("metadata: translation owner type is not registered")
	ErrUnknownTranslation    = errors.New("metadata: declared translation type is not registered")
	ErrUnknownRootType       = errors.New("metadata: hierarchy root type is not registered")
	ErrOwnerNotTranslatable  = errors.New("metadata: translation owner type is not translatable")
	ErrBindingMismatch       = errors.New("metadata: translatable/translation binding mismatch")
)

// UnknownOwnerError reports a translation type whose declared owner cannot be
// resolved to registered metadata. It indicates a broken naming convention and
// aborts schema bootstrap.
type UnknownOwnerError struct {
	Type  string
	Owner string
}

func (e *UnknownOwnerError) Error() string {
	return fmt.Sprintf("metadata: translation type %q declares unknown owner type %q", e.Type, e.Owner)
}

func (e *UnknownOwnerError) Unwrap() error {
	return ErrUnknownOwnerType
}

// UnknownTranslationError reports a translatable type whose declared
// translation type was never registered or lacks the translation capability.
type UnknownTranslationError struct {
	Type        string
	Translation string
}

func (e *UnknownTranslationError) Error() string {
	return fmt.Sprintf("metadata: translatable type %q declares unknown translation type %q", e.Type, e.Translation)
}

func (e *UnknownTranslationError) Unwrap() error {
	return ErrUnknownTranslation
}

// BindingMismatchError reports a translatable/translation pair whose declared
// type names do not round-trip.
type BindingMismatchError struct {
	Translatable string
	Translation  string
	Declared     string
}

func (e *BindingMismatchError) Error() string {
	return fmt.Sprintf(
		"metadata: translatable %q declares translation type %q but %q declares owner %q",
		e.Translatable, e.Translation, e.Translation, e.Declared,
	)
}

func (e *BindingMismatchError) Unwrap() error {
	return ErrBindingMismatch
}
