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

func TestAssetNameReusableAfterDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewAssetRepo(db, testutil.Logger(t))

	first := testutil.SeedAsset(t, ctx, tx, "reusedAsset")
	if err := repo.DeleteByName(ctx, tx, "reusedAsset"); err != nil {
		t.Fatalf("DeleteByName: %v", err)
	}

	second := testutil.SeedAsset(t, ctx, tx, "reusedAsset")
	if second.ID == first.ID {
		t.Fatal("recreated asset should get a fresh id")
	}

	got, err := repo.GetByName(ctx, tx, "reusedAsset")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("lookup returned id %d, want %d", got.ID, second.ID)
	}
}

func TestShotNamesUniquePerSequence(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewShotRepo(db, testutil.Logger(t))

	sq10 := testutil.SeedSequence(t, ctx, tx, "shotUniqueSq010")
	sq20 := testutil.SeedSequence(t, ctx, tx, "shotUniqueSq020")
	testutil.SeedShot(t, ctx, tx, sq10.ID, "sh010")

	dup := &types.Shot{
		SequenceID:   sq10.ID,
		Name:         "sh010",
		DocumentPath: "/proj/shots/dup/dup.usda",
	}
	if err := repo.Create(ctx, tx, dup); err == nil {
		t.Fatal("duplicate shot name within a sequence should be rejected")
	}

	// Same name under another sequence is fine.
	testutil.SeedShot(t, ctx, tx, sq20.ID, "sh010")

	shots, err := repo.ListBySequence(ctx, tx, sq10.ID)
	if err != nil {
		t.Fatalf("ListBySequence: %v", err)
	}
	if len(shots) != 1 {
		t.Fatalf("sq010 shots = %d, want 1", len(shots))
	}
}

func TestFileMaxVersionPerTask(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewFileRepo(db, testutil.Logger(t))

	asset := testutil.SeedAsset(t, ctx, tx, "fileVersionAsset")
	dept := testutil.SeedAssetDepartment(t, ctx, tx, asset.ID, "model")
	task := testutil.SeedTask(t, ctx, tx, dept.ID, "blocking")
	other := testutil.SeedTask(t, ctx, tx, dept.ID, "detail")

	max, err := repo.MaxVersion(ctx, tx, task.ID)
	if err != nil {
		t.Fatalf("MaxVersion empty: %v", err)
	}
	if max != 0 {
		t.Fatalf("empty task max = %d, want 0", max)
	}

	testutil.SeedFile(t, ctx, tx, task.ID, 1)
	testutil.SeedFile(t, ctx, tx, task.ID, 2)
	testutil.SeedFile(t, ctx, tx, other.ID, 7)

	max, err = repo.MaxVersion(ctx, tx, task.ID)
	if err != nil {
		t.Fatalf("MaxVersion: %v", err)
	}
	if max != 2 {
		t.Fatalf("max = %d, want 2", max)
	}

	if _, err := repo.GetByVersion(ctx, tx, task.ID, 7); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("version from another task should not resolve, got %v", err)
	}
}
