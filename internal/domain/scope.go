package domain

import "errors"

// ErrCorruptUnion signals a union row with zero or multiple parent keys
// populated; callers surface it as an invalid-scope condition.
var ErrCorruptUnion = errors.New("union row has zero or multiple parent keys")

// ParentKind tags the entity a department hangs under.
type ParentKind string

const (
	ParentSequence ParentKind = "sequence"
	ParentShot     ParentKind = "shot"
	ParentAsset    ParentKind = "asset"
)

func (k ParentKind) Valid() bool {
	switch k {
	case ParentSequence, ParentShot, ParentAsset:
		return true
	}
	return false
}

// ParentRef identifies a department's parent: exactly one kind, one row id.
type ParentRef struct {
	Kind ParentKind
	ID   int64
}

// ScopeKind tags the grouping key for version numbering and pin exclusivity.
type ScopeKind string

const (
	ScopeVariant    ScopeKind = "variant"
	ScopeDepartment ScopeKind = "department"
)

func (k ScopeKind) Valid() bool {
	switch k {
	case ScopeVariant, ScopeDepartment:
		return true
	}
	return false
}

// VersionScope identifies the scope a VariantVersion belongs to.
type VersionScope struct {
	Kind ScopeKind
	ID   int64
}
