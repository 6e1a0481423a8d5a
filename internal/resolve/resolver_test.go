package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos/testutil"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
)

// The resolver reads through the shared store with no transaction, so these
// tests seed committed rows under names unique to each test.
func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return resolve.NewResolver(
		repos.NewAssetRepo(db, log),
		repos.NewSequenceRepo(db, log),
		repos.NewShotRepo(db, log),
		repos.NewDepartmentRepo(db, log),
		repos.NewSetVariantRepo(db, log),
		repos.NewVariantRepo(db, log),
		log,
	)
}

func TestResolverShotChain(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	r := newResolver(t)

	seq := testutil.SeedSequence(t, ctx, db, "rsvSq010")
	shot := testutil.SeedShot(t, ctx, db, seq.ID, "sh020")

	got, err := r.Shot(ctx, "rsvSq010", "sh020")
	if err != nil {
		t.Fatalf("Shot: %v", err)
	}
	if got.ID != shot.ID {
		t.Fatalf("shot id = %d, want %d", got.ID, shot.ID)
	}

	if _, err := r.Shot(ctx, "rsvSq010", "sh999"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing shot, got %v", err)
	}
	if _, err := r.Shot(ctx, "rsvSqMissing", "sh020"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing sequence, got %v", err)
	}
}

func TestResolverParent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	r := newResolver(t)

	asset := testutil.SeedAsset(t, ctx, db, "rsvParentAsset")

	ref, docPath, err := r.Parent(ctx, resolve.ParentNames{Kind: types.ParentAsset, Name: "rsvParentAsset"})
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if ref.Kind != types.ParentAsset || ref.ID != asset.ID {
		t.Fatalf("ref = %+v", ref)
	}
	if docPath != asset.DocumentPath {
		t.Fatalf("docPath = %q, want %q", docPath, asset.DocumentPath)
	}

	if _, _, err := r.Parent(ctx, resolve.ParentNames{Kind: "project", Name: "x"}); !errors.Is(err, pipeerr.ErrInvalidScope) {
		t.Fatalf("want ErrInvalidScope, got %v", err)
	}
}

func TestResolverVariantChain(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	r := newResolver(t)

	asset := testutil.SeedAsset(t, ctx, db, "rsvChainAsset")
	dept := testutil.SeedAssetDepartment(t, ctx, db, asset.ID, "surfacing")
	sv := testutil.SeedSetVariant(t, ctx, db, dept.ID, "look")
	variant := testutil.SeedVariant(t, ctx, db, sv.ID, "red")

	got, err := r.Variant(ctx, "rsvChainAsset", "surfacing", "look", "red")
	if err != nil {
		t.Fatalf("Variant: %v", err)
	}
	if got.ID != variant.ID {
		t.Fatalf("variant id = %d, want %d", got.ID, variant.ID)
	}

	// A miss anywhere along the chain reports the entity that failed.
	if _, err := r.Variant(ctx, "rsvChainAsset", "surfacing", "look", "green"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing variant, got %v", err)
	}
	if _, err := r.SetVariant(ctx, "rsvChainAsset", "lighting", "look"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing department, got %v", err)
	}
}
