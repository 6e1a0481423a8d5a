package repos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos/testutil"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

func TestDepartmentParentUnionIsEnforced(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	asset := testutil.SeedAsset(t, ctx, tx, "unionDeptAsset")
	seq := testutil.SeedSequence(t, ctx, tx, "unionDeptSeq")

	none := &types.Department{
		Name:         "model",
		DocumentPath: "/proj/entity/x/model/x_model.usda",
	}
	if err := tx.WithContext(ctx).Create(none).Error; err == nil {
		t.Fatal("department with no parent should violate the CHECK constraint")
	}

	two := &types.Department{
		AssetID:      testutil.PtrInt64(asset.ID),
		SequenceID:   testutil.PtrInt64(seq.ID),
		Name:         "model",
		DocumentPath: "/proj/entity/x/model/x_model.usda",
	}
	if err := tx.WithContext(ctx).Create(two).Error; err == nil {
		t.Fatal("department with two parents should violate the CHECK constraint")
	}
}

func TestDepartmentLookupsAreScopedByParent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewDepartmentRepo(db, testutil.Logger(t))

	hero := testutil.SeedAsset(t, ctx, tx, "deptScopeHero")
	villain := testutil.SeedAsset(t, ctx, tx, "deptScopeVillain")
	testutil.SeedAssetDepartment(t, ctx, tx, hero.ID, "model")
	testutil.SeedAssetDepartment(t, ctx, tx, hero.ID, "rig")
	testutil.SeedAssetDepartment(t, ctx, tx, villain.ID, "model")

	heroRef := types.ParentRef{Kind: types.ParentAsset, ID: hero.ID}
	got, err := repo.ListByParent(ctx, tx, heroRef)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hero departments = %d, want 2", len(got))
	}

	dept, err := repo.GetByParent(ctx, tx, heroRef, "rig")
	if err != nil {
		t.Fatalf("GetByParent: %v", err)
	}
	if dept.AssetID == nil || *dept.AssetID != hero.ID {
		t.Fatalf("rig department parent = %+v", dept)
	}

	villainRef := types.ParentRef{Kind: types.ParentAsset, ID: villain.ID}
	if _, err := repo.GetByParent(ctx, tx, villainRef, "rig"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for other parent, got %v", err)
	}
}

func TestDepartmentRejectsUnknownParentTag(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repos.NewDepartmentRepo(db, testutil.Logger(t))

	_, err := repo.ListByParent(ctx, nil, types.ParentRef{Kind: "project", ID: 1})
	if !errors.Is(err, pipeerr.ErrInvalidScope) {
		t.Fatalf("want ErrInvalidScope, got %v", err)
	}
}

func TestDepartmentDeleteByParent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewDepartmentRepo(db, testutil.Logger(t))

	asset := testutil.SeedAsset(t, ctx, tx, "deptDeleteAsset")
	testutil.SeedAssetDepartment(t, ctx, tx, asset.ID, "model")

	ref := types.ParentRef{Kind: types.ParentAsset, ID: asset.ID}
	if err := repo.DeleteByParent(ctx, tx, ref, "model"); err != nil {
		t.Fatalf("DeleteByParent: %v", err)
	}
	if _, err := repo.GetByParent(ctx, tx, ref, "model"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
