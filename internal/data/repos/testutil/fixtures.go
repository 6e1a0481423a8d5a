package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
)

func PtrInt64(v int64) *int64 { return &v }

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		Type:         "character",
		Name:         name,
		DocumentPath: "/proj/" + name + "/" + name + ".usda",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedSequence(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Sequence {
	tb.Helper()
	s := &types.Sequence{
		Name:         name,
		DocumentPath: "/proj/sequences/" + name + "/" + name + ".usda",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sequence: %v", err)
	}
	return s
}

func SeedShot(tb testing.TB, ctx context.Context, tx *gorm.DB, sequenceID int64, name string) *types.Shot {
	tb.Helper()
	s := &types.Shot{
		SequenceID:   sequenceID,
		Name:         name,
		DocumentPath: "/proj/shots/" + name + "/" + name + ".usda",
		FrameRange:   "1001-1100",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed shot: %v", err)
	}
	return s
}

func SeedAssetDepartment(tb testing.TB, ctx context.Context, tx *gorm.DB, assetID int64, name string) *types.Department {
	tb.Helper()
	d := &types.Department{
		AssetID:      PtrInt64(assetID),
		Name:         name,
		DocumentPath: "/proj/asset/" + name + "/" + name + ".usda",
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed department: %v", err)
	}
	return d
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID int64, name string) *types.Task {
	tb.Helper()
	t := &types.Task{DepartmentID: departmentID, Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedSetVariant(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID int64, name string) *types.SetVariant {
	tb.Helper()
	sv := &types.SetVariant{
		DepartmentID: departmentID,
		Name:         name,
		DocumentPath: "/proj/asset/" + name + "/" + name + ".usda",
	}
	if err := tx.WithContext(ctx).Create(sv).Error; err != nil {
		tb.Fatalf("seed setVariant: %v", err)
	}
	return sv
}

func SeedVariant(tb testing.TB, ctx context.Context, tx *gorm.DB, setVariantID int64, name string) *types.Variant {
	tb.Helper()
	v := &types.Variant{SetVariantID: setVariantID, Name: name}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed variant: %v", err)
	}
	return v
}

// SeedVariantVersion inserts a version row scoped to a content variant.
func SeedVariantVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, variantID int64, version int, pinned bool) *types.VariantVersion {
	tb.Helper()
	v := &types.VariantVersion{
		VariantID:    PtrInt64(variantID),
		Version:      version,
		Date:         time.Now().UTC(),
		DocumentPath: "/proj/fragment/v.usda",
		Pinned:       pinned,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed variant version: %v", err)
	}
	return v
}

// SeedDepartmentVersion inserts a version row scoped to a department edit.
func SeedDepartmentVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID int64, version int, pinned bool) *types.VariantVersion {
	tb.Helper()
	v := &types.VariantVersion{
		DepartmentID: PtrInt64(departmentID),
		Version:      version,
		Date:         time.Now().UTC(),
		DocumentPath: "/proj/fragment/v.usda",
		Pinned:       pinned,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed department version: %v", err)
	}
	return v
}

func SeedFile(tb testing.TB, ctx context.Context, tx *gorm.DB, taskID int64, version int) *types.File {
	tb.Helper()
	f := &types.File{
		TaskID:   taskID,
		Version:  version,
		Date:     time.Now().UTC(),
		FilePath: "/proj/task/wip.ma",
		FileType: ".ma",
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed file: %v", err)
	}
	return f
}
