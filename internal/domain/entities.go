package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Asset is a root-level production entity (character, prop, environment...).
// AssetInfo mirrors the assetInfo dictionary written on the document's root
// prim so the UI can list asset metadata without touching the document tree.
type Asset struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Type         string         `gorm:"column:type;not null" json:"type"`
	Name         string         `gorm:"uniqueIndex;not null" json:"name"`
	Description  string         `json:"description"`
	DocumentPath string         `gorm:"column:document_path;not null" json:"document_path"`
	AssetInfo    datatypes.JSON `gorm:"column:asset_info" json:"asset_info,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Asset) TableName() string { return "assets" }

type Sequence struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	DocumentPath string    `gorm:"column:document_path;not null" json:"document_path"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Sequence) TableName() string { return "sequences" }

// Shot belongs to exactly one Sequence; its name is unique within that
// sequence, not globally.
type Shot struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SequenceID   int64     `gorm:"column:sequence_id;not null;index" json:"sequence_id"`
	Name         string    `gorm:"not null" json:"name"`
	DocumentPath string    `gorm:"column:document_path;not null" json:"document_path"`
	FrameRange   string    `gorm:"column:frame_range" json:"frame_range"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Shot) TableName() string { return "shots" }

// Department is a named sublayer document under exactly one parent entity.
// The parent linkage is a tagged union over three nullable foreign keys; the
// exactly-one-populated rule is enforced both here (ParentRef) and by a CHECK
// constraint on the table.
type Department struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SequenceID   *int64    `gorm:"column:sequence_id;index" json:"sequence_id,omitempty"`
	ShotID       *int64    `gorm:"column:shot_id;index" json:"shot_id,omitempty"`
	AssetID      *int64    `gorm:"column:asset_id;index" json:"asset_id,omitempty"`
	Name         string    `gorm:"not null;check:chk_department_parent,(sequence_id IS NOT NULL) + (shot_id IS NOT NULL) + (asset_id IS NOT NULL) = 1" json:"name"`
	DocumentPath string    `gorm:"column:document_path;not null" json:"document_path"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Department) TableName() string { return "departments" }

// ParentRef returns the department's parent as an explicit sum value.
func (d *Department) ParentRef() (ParentRef, error) {
	refs := 0
	out := ParentRef{}
	if d.SequenceID != nil {
		refs++
		out = ParentRef{Kind: ParentSequence, ID: *d.SequenceID}
	}
	if d.ShotID != nil {
		refs++
		out = ParentRef{Kind: ParentShot, ID: *d.ShotID}
	}
	if d.AssetID != nil {
		refs++
		out = ParentRef{Kind: ParentAsset, ID: *d.AssetID}
	}
	if refs != 1 {
		return ParentRef{}, ErrCorruptUnion
	}
	return out, nil
}

// Task groups working-file versions under a department.
type Task struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID int64     `gorm:"column:department_id;not null;index" json:"department_id"`
	Name         string    `gorm:"not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Task) TableName() string { return "tasks" }

// SetVariant is a variant-set document nested under a department.
type SetVariant struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID int64     `gorm:"column:department_id;not null;index" json:"department_id"`
	Name         string    `gorm:"not null" json:"name"`
	DocumentPath string    `gorm:"column:document_path;not null" json:"document_path"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SetVariant) TableName() string { return "set_variants" }

// Variant is one named option within a SetVariant's variant set.
type Variant struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SetVariantID int64     `gorm:"column:set_variant_id;not null;index" json:"set_variant_id"`
	Name         string    `gorm:"not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Variant) TableName() string { return "variants" }

// VariantVersion is one published version of either a content variant or a
// department-level sublayer revision; exactly one of VariantID/DepartmentID
// is populated. At most one row per scope may be pinned; the store's
// triggers clear siblings whenever a row is pinned.
type VariantVersion struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID    *int64    `gorm:"column:variant_id;index" json:"variant_id,omitempty"`
	DepartmentID *int64    `gorm:"column:department_id;index" json:"department_id,omitempty"`
	Version      int       `gorm:"not null;check:chk_version_scope,(variant_id IS NOT NULL) + (department_id IS NOT NULL) = 1" json:"version"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
	DocumentPath string    `gorm:"column:document_path;not null" json:"document_path"`
	Pinned       bool      `gorm:"not null;default:false" json:"pinned"`
	Snapshot     []byte    `gorm:"type:blob" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (VariantVersion) TableName() string { return "variant_versions" }

// Scope returns the version's grouping key as an explicit sum value.
func (v *VariantVersion) Scope() (VersionScope, error) {
	refs := 0
	out := VersionScope{}
	if v.VariantID != nil {
		refs++
		out = VersionScope{Kind: ScopeVariant, ID: *v.VariantID}
	}
	if v.DepartmentID != nil {
		refs++
		out = VersionScope{Kind: ScopeDepartment, ID: *v.DepartmentID}
	}
	if refs != 1 {
		return VersionScope{}, ErrCorruptUnion
	}
	return out, nil
}

// File is one saved working-file version under a task.
type File struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    int64     `gorm:"column:task_id;not null;index" json:"task_id"`
	Version   int       `gorm:"not null" json:"version"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
	FilePath  string    `gorm:"column:file_path;not null" json:"file_path"`
	FileType  string    `gorm:"column:file_type" json:"file_type"`
	Snapshot  []byte    `gorm:"type:blob" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (File) TableName() string { return "files" }
