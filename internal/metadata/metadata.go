package metadata

import (
	"sort"
	"strings"

	"github.com/neatous/go-translatable/internal/runtimeconfig"
)

// AssociationKind distinguishes the two derived association shapes.
type AssociationKind int

const (
	OneToMany AssociationKind = iota + 1
	ManyToOne
)

func (k AssociationKind) String() string {
	switch k {
	case OneToMany:
		return "one-to-many"
	case ManyToOne:
		return "many-to-one"
	default:
		return "unknown"
	}
}

// Association describes one side of the translatable/translation relation.
type Association struct {
	Name           string
	Kind           AssociationKind
	Target         string
	MappedBy       string
	InversedBy     string
	IndexBy        string
	CascadePersist bool
	CascadeRemove  bool
	OrphanRemoval  bool
	Fetch          runtimeconfig.FetchMode
	JoinColumn     *JoinColumn
}

// JoinColumn describes the foreign key carried by the owning side of a
// many-to-one association.
type JoinColumn struct {
	Name             string
	ReferencedColumn string
	OnDelete         string
	NotNull          bool
}

// Column describes a scalar column injected by the deriver or declared by the
// registering host.
type Column struct {
	Name       string
	Type       string
	Length     int
	NotNull    bool
	PrimaryKey bool
}

// UniqueConstraint spans one or more columns on the hierarchy root table.
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// TypeMetadata is the mutable per-type schema handle the deriver works on.
// Instances are builders until the schema build freezes them; afterwards every
// mutator fails with ErrMetadataFrozen.
type TypeMetadata struct {
	name       string
	table      string
	primaryKey string
	abstract   bool
	rootName   string

	columns      []*Column
	columnIndex  map[string]*Column
	associations map[string]*Association
	assocOrder   []string
	uniques      []UniqueConstraint

	frozen bool
}

// NewTypeMetadata starts a metadata builder for the named type backed by the
// given table.
func NewTypeMetadata(name, table string) (*TypeMetadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTypeNameRequired
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, ErrTableNameRequired
	}
	return &TypeMetadata{
		name:         name,
		table:        table,
		rootName:     name,
		columnIndex:  map[string]*Column{},
		associations: map[string]*Association{},
	}, nil
}

// MustNewTypeMetadata is NewTypeMetadata for static registration blocks.
func MustNewTypeMetadata(name, table string) *TypeMetadata {
	meta, err := NewTypeMetadata(name, table)
	if err != nil {
		panic(err)
	}
	return meta
}

func (m *TypeMetadata) Name() string  { return m.name }
func (m *TypeMetadata) Table() string { return m.table }

// PrimaryKey returns the primary key column name, or "" when none is declared.
func (m *TypeMetadata) PrimaryKey() string { return m.primaryKey }

// SetPrimaryKey declares the primary key column, adding it when absent.
func (m *TypeMetadata) SetPrimaryKey(column Column) error {
	if m.frozen {
		return ErrMetadataFrozen
	}
	column.PrimaryKey = true
	column.NotNull = true
	if !m.HasColumn(column.Name) {
		if err := m.AddColumn(column); err != nil {
			return err
		}
	} else {
		m.columnIndex[column.Name].PrimaryKey = true
	}
	m.primaryKey = column.Name
	return nil
}

// MarkAbstract flags the type as a non-concrete base. The deriver skips
// abstract types entirely.
func (m *TypeMetadata) MarkAbstract() *TypeMetadata {
	m.abstract = true
	return m
}

func (m *TypeMetadata) Abstract() bool { return m.abstract }

// SetRoot records the hierarchy root for subclasses. Root-scoped elements such
// as the translation uniqueness constraint land on the root's metadata.
func (m *TypeMetadata) SetRoot(rootName string) *TypeMetadata {
	if trimmed := strings.TrimSpace(rootName); trimmed != "" {
		m.rootName = trimmed
	}
	return m
}

func (m *TypeMetadata) RootName() string { return m.rootName }

// IsHierarchyRoot reports whether the type is its own root.
func (m *TypeMetadata) IsHierarchyRoot() bool { return m.rootName == m.name }

func (m *TypeMetadata) HasColumn(name string) bool {
	_, ok := m.columnIndex[name]
	return ok
}

// Column returns the named column when declared.
func (m *TypeMetadata) Column(name string) (Column, bool) {
	col, ok := m.columnIndex[name]
	if !ok {
		return Column{}, false
	}
	return *col, true
}

// Columns returns the declared columns in declaration order.
func (m *TypeMetadata) Columns() []Column {
	out := make([]Column, 0, len(m.columns))
	for _, col := range m.columns {
		out = append(out, *col)
	}
	return out
}

func (m *TypeMetadata) AddColumn(column Column) error {
	if m.frozen {
		return ErrMetadataFrozen
	}
	if column.Name == "" {
		return ErrColumnNameRequired
	}
	if m.HasColumn(column.Name) {
		return ErrDuplicateColumn
	}
	copied := column
	m.columns = append(m.columns, &copied)
	m.columnIndex[copied.Name] = &copied
	return nil
}

func (m *TypeMetadata) HasAssociation(name string) bool {
	_, ok := m.associations[name]
	return ok
}

// Association returns the named association when declared.
func (m *TypeMetadata) Association(name string) (Association, bool) {
	assoc, ok := m.associations[name]
	if !ok {
		return Association{}, false
	}
	return *assoc, true
}

// Associations returns declared associations in declaration order.
func (m *TypeMetadata) Associations() []Association {
	out := make([]Association, 0, len(m.assocOrder))
	for _, name := range m.assocOrder {
		out = append(out, *m.associations[name])
	}
	return out
}

func (m *TypeMetadata) AddAssociation(assoc Association) error {
	if m.frozen {
		return ErrMetadataFrozen
	}
	if m.HasAssociation(assoc.Name) {
		return ErrDuplicateAssociation
	}
	copied := assoc
	m.associations[copied.Name] = &copied
	m.assocOrder = append(m.assocOrder, copied.Name)
	return nil
}

func (m *TypeMetadata) HasUniqueConstraint(name string) bool {
	for _, u := range m.uniques {
		if u.Name == name {
			return true
		}
	}
	return false
}

// UniqueConstraints returns declared constraints in declaration order.
func (m *TypeMetadata) UniqueConstraints() []UniqueConstraint {
	out := make([]UniqueConstraint, len(m.uniques))
	copy(out, m.uniques)
	return out
}

func (m *TypeMetadata) AddUniqueConstraint(constraint UniqueConstraint) error {
	if m.frozen {
		return ErrMetadataFrozen
	}
	if m.HasUniqueConstraint(constraint.Name) {
		return ErrDuplicateConstraint
	}
	columns := make([]string, len(constraint.Columns))
	copy(columns, constraint.Columns)
	constraint.Columns = columns
	m.uniques = append(m.uniques, constraint)
	return nil
}

func (m *TypeMetadata) freeze() {
	m.frozen = true
}

// Frozen reports whether the metadata passed through a schema build.
func (m *TypeMetadata) Frozen() bool { return m.frozen }

// Schema is the immutable result of a schema build: every registered type's
// metadata, derived and frozen. Derive once, freeze, then only read.
type Schema struct {
	types map[string]*TypeMetadata
}

// Type returns the frozen metadata registered under name.
func (s *Schema) Type(name string) (*TypeMetadata, bool) {
	meta, ok := s.types[name]
	return meta, ok
}

// Names returns the registered type names in lexical order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UniqueConstraintName derives the deterministic constraint name used for the
// (translatable_id, locale) uniqueness guarantee on a translation table.
func UniqueConstraintName(table string) string {
	return table + "_unique_translation"
}
