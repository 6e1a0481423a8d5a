package services_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

func TestCreateAssetWritesDocumentAndRow(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	asset, err := p.entities.CreateAsset(ctx, "character", "svcHero", "the hero")
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.DocumentPath != p.layout.AssetDoc("svcHero") {
		t.Fatalf("document path = %q", asset.DocumentPath)
	}

	layer, err := usd.Open(asset.DocumentPath)
	if err != nil {
		t.Fatalf("Open asset document: %v", err)
	}
	if layer.Root == nil || layer.Root.AssetInfo["assetType"] != "character" {
		t.Fatalf("asset document root = %+v", layer.Root)
	}
	if layer.Root.Kind != "component" {
		t.Fatalf("asset root kind = %q, want %q", layer.Root.Kind, "component")
	}

	listed, err := p.entities.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	found := false
	for _, a := range listed {
		if a.ID == asset.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created asset missing from listing")
	}
}

func TestCreateShotStampsFrameRange(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	if _, err := p.entities.CreateSequence(ctx, "svcShotSq010", "intro"); err != nil {
		t.Fatalf("CreateSequence: %v", err)
	}
	shot, err := p.entities.CreateShot(ctx, "svcShotSq010", "sh020", "1001-1100", "opening")
	if err != nil {
		t.Fatalf("CreateShot: %v", err)
	}

	layer, err := usd.Open(shot.DocumentPath)
	if err != nil {
		t.Fatalf("Open shot document: %v", err)
	}
	if layer.StartTimeCode == nil || *layer.StartTimeCode != 1001 {
		t.Fatalf("startTimeCode = %v", layer.StartTimeCode)
	}
	if layer.EndTimeCode == nil || *layer.EndTimeCode != 1100 {
		t.Fatalf("endTimeCode = %v", layer.EndTimeCode)
	}

	if _, err := p.entities.CreateShot(ctx, "svcShotSq010", "sh030", "garbage", ""); err == nil {
		t.Fatal("malformed frame range should be rejected")
	}
}

func TestDeleteAssetRemovesSubtreeAndFreesName(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	first, err := p.entities.CreateAsset(ctx, "prop", "svcRecycled", "")
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if err := p.entities.DeleteAsset(ctx, "svcRecycled"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if _, err := os.Stat(first.DocumentPath); !os.IsNotExist(err) {
		t.Fatalf("document should be gone, stat err = %v", err)
	}

	// The name is free for reuse and the new entity starts clean.
	second, err := p.entities.CreateAsset(ctx, "prop", "svcRecycled", "")
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("recreated asset should get a fresh id")
	}
	if _, err := os.Stat(second.DocumentPath); err != nil {
		t.Fatalf("recreated document missing: %v", err)
	}
}

func TestDeleteMissingAssetIsNotFound(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	if err := p.entities.DeleteAsset(ctx, "svcNeverExisted"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
