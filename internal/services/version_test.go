package services_test

import (
	"context"
	"testing"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// buildVariantChain creates asset, department, setVariant and one variant,
// returning the setVariant document path.
func buildVariantChain(t *testing.T, p *pipeline, assetName string) string {
	t.Helper()
	ctx := context.Background()

	if _, err := p.entities.CreateAsset(ctx, "character", assetName, ""); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	parent := resolve.ParentNames{Kind: types.ParentAsset, Name: assetName}
	if _, err := p.depts.Create(ctx, parent, "surfacing"); err != nil {
		t.Fatalf("Create department: %v", err)
	}
	sv, err := p.variants.CreateSetVariant(ctx, assetName, "surfacing", "look")
	if err != nil {
		t.Fatalf("CreateSetVariant: %v", err)
	}
	if _, err := p.variants.CreateVariant(ctx, assetName, "surfacing", "look", "red"); err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	return sv.DocumentPath
}

// payloadOf reads the payload currently carried by the named variant.
func payloadOf(t *testing.T, svDoc, setName, variantName string) string {
	t.Helper()
	layer, err := usd.Open(svDoc)
	if err != nil {
		t.Fatalf("Open setVariant document: %v", err)
	}
	for _, vs := range layer.Root.VariantSets {
		if vs.Name != setName {
			continue
		}
		for _, v := range vs.Variants {
			if v.Name == variantName {
				return v.Payload
			}
		}
	}
	t.Fatalf("variant %s/%s not found in %s", setName, variantName, svDoc)
	return ""
}

func TestVariantVersionPublishIsMonotonic(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	svDoc := buildVariantChain(t, p, "svcVerHero")

	v1, err := p.versions.CreateVariantVersion(ctx, "svcVerHero", "surfacing", "look", "red", "first")
	if err != nil {
		t.Fatalf("publish v1: %v", err)
	}
	if v1.Version != 1 {
		t.Fatalf("v1.Version = %d", v1.Version)
	}
	if v1.Pinned {
		t.Fatal("fresh versions publish unpinned")
	}
	if len(v1.Snapshot) == 0 {
		t.Fatal("version row missing snapshot")
	}

	v2, err := p.versions.CreateVariantVersion(ctx, "svcVerHero", "surfacing", "look", "red", "second")
	if err != nil {
		t.Fatalf("publish v2: %v", err)
	}
	if v2.Version != 2 {
		t.Fatalf("v2.Version = %d", v2.Version)
	}

	// Latest-wins: the payload follows the newest publish.
	wantRef, err := usd.RelativeTo(svDoc, v2.DocumentPath)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if got := payloadOf(t, svDoc, "look", "red"); got != wantRef {
		t.Fatalf("payload = %q, want %q", got, wantRef)
	}
}

func TestPinAndUnpinRepointPayload(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	svDoc := buildVariantChain(t, p, "svcPinHero")

	v1, err := p.versions.CreateVariantVersion(ctx, "svcPinHero", "surfacing", "look", "red", "")
	if err != nil {
		t.Fatalf("publish v1: %v", err)
	}
	v2, err := p.versions.CreateVariantVersion(ctx, "svcPinHero", "surfacing", "look", "red", "")
	if err != nil {
		t.Fatalf("publish v2: %v", err)
	}

	if err := p.versions.Pin(ctx, v1.ID); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	ref1, err := usd.RelativeTo(svDoc, v1.DocumentPath)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if got := payloadOf(t, svDoc, "look", "red"); got != ref1 {
		t.Fatalf("pinned payload = %q, want %q", got, ref1)
	}

	scope := types.VersionScope{Kind: types.ScopeVariant, ID: *v1.VariantID}
	listed, err := p.versions.List(ctx, scope)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, row := range listed {
		if row.ID == v1.ID && !row.Pinned {
			t.Fatal("v1 should be pinned")
		}
		if row.ID == v2.ID && row.Pinned {
			t.Fatal("v2 should have lost its pin")
		}
	}

	// Unpinning resumes latest-wins.
	if err := p.versions.Unpin(ctx, v1.ID); err != nil {
		t.Fatalf("Unpin: %v", err)
	}
	ref2, err := usd.RelativeTo(svDoc, v2.DocumentPath)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if got := payloadOf(t, svDoc, "look", "red"); got != ref2 {
		t.Fatalf("payload after unpin = %q, want %q", got, ref2)
	}
}

func TestDepartmentVersionSwapsActiveSublayer(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	if _, err := p.entities.CreateAsset(ctx, "environment", "svcDeptVer", ""); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	parent := resolve.ParentNames{Kind: types.ParentAsset, Name: "svcDeptVer"}
	dept, err := p.depts.Create(ctx, parent, "model")
	if err != nil {
		t.Fatalf("Create department: %v", err)
	}

	dv1, err := p.versions.CreateDepartmentVersion(ctx, parent, "model", "first")
	if err != nil {
		t.Fatalf("publish dv1: %v", err)
	}
	dv2, err := p.versions.CreateDepartmentVersion(ctx, parent, "model", "second")
	if err != nil {
		t.Fatalf("publish dv2: %v", err)
	}

	layer, err := usd.Open(dept.DocumentPath)
	if err != nil {
		t.Fatalf("Open department document: %v", err)
	}
	ref1, err := usd.RelativeTo(dept.DocumentPath, dv1.DocumentPath)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	ref2, err := usd.RelativeTo(dept.DocumentPath, dv2.DocumentPath)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	for _, sl := range layer.SubLayers {
		if sl == ref1 {
			t.Fatal("superseded version still registered on department document")
		}
	}
	found := false
	for _, sl := range layer.SubLayers {
		if sl == ref2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("active version %q missing from subLayers %v", ref2, layer.SubLayers)
	}
}
