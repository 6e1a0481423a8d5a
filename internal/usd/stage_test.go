package usd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

func intPtr(v int) *int { return &v }

func TestCreateNewRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sq010_sh020", "sq010_sh020.usda")

	_, err := CreateNew(path, CreateOpts{
		AssetInfo: map[string]string{"shotDescription": "opening shot"},
		StartTC:   intPtr(1001),
		EndTC:     intPtr(1100),
	})
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if l.DefaultPrim != "root" {
		t.Fatalf("defaultPrim = %q", l.DefaultPrim)
	}
	if l.Root == nil || l.Root.TypeName != "Xform" || l.Root.Name != "root" {
		t.Fatalf("unexpected root prim: %+v", l.Root)
	}
	if l.Root.AssetInfo["shotDescription"] != "opening shot" {
		t.Fatalf("assetInfo = %v", l.Root.AssetInfo)
	}
	if l.StartTimeCode == nil || *l.StartTimeCode != 1001 {
		t.Fatalf("startTimeCode = %v", l.StartTimeCode)
	}
	if l.EndTimeCode == nil || *l.EndTimeCode != 1100 {
		t.Fatalf("endTimeCode = %v", l.EndTimeCode)
	}
}

func TestSubLayerOrderingAndDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.usda")
	l, err := CreateNew(path, CreateOpts{})
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	if !l.InsertSubLayerFront("./model/hero_model.usda") {
		t.Fatal("first insert should change the list")
	}
	if !l.InsertSubLayerFront("./rig/hero_rig.usda") {
		t.Fatal("second insert should change the list")
	}
	if l.InsertSubLayerFront("./model/hero_model.usda") {
		t.Fatal("duplicate insert should be a no-op")
	}
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []string{"./rig/hero_rig.usda", "./model/hero_model.usda"}
	if len(got.SubLayers) != len(want) {
		t.Fatalf("subLayers = %v", got.SubLayers)
	}
	for i := range want {
		if got.SubLayers[i] != want[i] {
			t.Fatalf("subLayers[%d] = %q, want %q", i, got.SubLayers[i], want[i])
		}
	}

	if !got.RemoveSubLayer("./rig/hero_rig.usda") {
		t.Fatal("remove should change the list")
	}
	if got.RemoveSubLayer("./rig/hero_rig.usda") {
		t.Fatal("second remove should be a no-op")
	}
}

func TestVariantSetLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.usda")
	l, err := CreateNew(path, CreateOpts{})
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	l.EnsureVariantSet("look")
	if err := l.AddVariant("look", "red"); err != nil {
		t.Fatalf("AddVariant: %v", err)
	}
	if err := l.AddVariant("look", "blue"); err != nil {
		t.Fatalf("AddVariant: %v", err)
	}
	// Re-adding must not duplicate the option.
	if err := l.AddVariant("look", "red"); err != nil {
		t.Fatalf("AddVariant repeat: %v", err)
	}
	if err := l.SelectVariant("look", "red"); err != nil {
		t.Fatalf("SelectVariant: %v", err)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	vs := got.Root.VariantSets
	if len(vs) != 1 || vs[0].Name != "look" {
		t.Fatalf("variantSets = %+v", vs)
	}
	if len(vs[0].Variants) != 2 {
		t.Fatalf("variants = %+v", vs[0].Variants)
	}
	if got.Root.Selections["look"] != "red" {
		t.Fatalf("selection = %v", got.Root.Selections)
	}
}

func TestSelectVariantRequiresExistingOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.usda")
	l, err := CreateNew(path, CreateOpts{})
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	l.EnsureVariantSet("look")

	if err := l.SelectVariant("look", "ghost"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := l.SelectVariant("missing", "red"); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing set, got %v", err)
	}
}

func TestPayloadSwapIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.usda")
	l, err := CreateNew(path, CreateOpts{})
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	l.EnsureVariantSet("look")
	if err := l.AddVariant("look", "red"); err != nil {
		t.Fatalf("AddVariant: %v", err)
	}

	ref := "./red/look_red_001.usda"
	if err := l.SetPayloadUnderSelection("look", "red", ref); err != nil {
		t.Fatalf("SetPayloadUnderSelection: %v", err)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// Same target again: the document must not change.
	if err := l.SetPayloadUnderSelection("look", "red", ref); err != nil {
		t.Fatalf("repeat SetPayloadUnderSelection: %v", err)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("document changed on idempotent swap:\n%s\n---\n%s", first, second)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v := got.Root.VariantSets[0].Variants[0]
	if v.Payload != ref {
		t.Fatalf("payload = %q, want %q", v.Payload, ref)
	}

	// A new version replaces the old payload rather than stacking.
	next := "./red/look_red_002.usda"
	if err := got.SetPayloadUnderSelection("look", "red", next); err != nil {
		t.Fatalf("SetPayloadUnderSelection v2: %v", err)
	}
	if got.Root.VariantSets[0].Variants[0].Payload != next {
		t.Fatalf("payload = %q, want %q", got.Root.VariantSets[0].Variants[0].Payload, next)
	}
}

func TestOpenMissingFileIsDocumentError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.usda"))
	var docErr *pipeerr.DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("want DocumentError, got %v", err)
	}
	if docErr.Op != "open" {
		t.Fatalf("op = %q", docErr.Op)
	}
}
