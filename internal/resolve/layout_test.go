package resolve

import (
	"errors"
	"path/filepath"
	"testing"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

func TestLayoutEntityDocs(t *testing.T) {
	l := NewLayout("/proj")

	if got := l.AssetDoc("hero"); got != filepath.Join("/proj", "entity", "hero", "hero.usda") {
		t.Fatalf("AssetDoc = %q", got)
	}
	if got := l.SequenceDoc("sq010"); got != filepath.Join("/proj", "sequences", "sq010", "sq010.usda") {
		t.Fatalf("SequenceDoc = %q", got)
	}
	if got := l.ShotDoc("sq010", "sh020"); got != filepath.Join("/proj", "shots", "sq010_sh020", "sq010_sh020.usda") {
		t.Fatalf("ShotDoc = %q", got)
	}
}

func TestLayoutDepartmentDoc(t *testing.T) {
	l := NewLayout("/proj")

	got, err := l.DepartmentDoc(ParentNames{Kind: types.ParentAsset, Name: "hero"}, "model")
	if err != nil {
		t.Fatalf("DepartmentDoc: %v", err)
	}
	if got != filepath.Join("/proj", "entity", "hero", "model", "hero_model.usda") {
		t.Fatalf("asset department doc = %q", got)
	}

	got, err = l.DepartmentDoc(ParentNames{Kind: types.ParentShot, Name: "sh020", SequenceName: "sq010"}, "fx")
	if err != nil {
		t.Fatalf("DepartmentDoc: %v", err)
	}
	if got != filepath.Join("/proj", "shots", "sq010_sh020", "fx", "sq010_sh020_fx.usda") {
		t.Fatalf("shot department doc = %q", got)
	}

	if _, err := l.DepartmentDoc(ParentNames{Kind: "project", Name: "x"}, "model"); !errors.Is(err, pipeerr.ErrInvalidScope) {
		t.Fatalf("want ErrInvalidScope, got %v", err)
	}
}

func TestLayoutFragmentDocs(t *testing.T) {
	l := NewLayout("/proj")

	want := filepath.Join("/proj", "fragment", "look", "surfacing", "hero", "look_surfacing_hero.usda")
	if got := l.SetVariantDoc("look", "surfacing", "hero"); got != want {
		t.Fatalf("SetVariantDoc = %q", got)
	}

	want = filepath.Join("/proj", "fragment", "look", "surfacing", "hero", "red", "look_surfacing_hero_red_003.usda")
	if got := l.VariantVersionDoc("look", "surfacing", "hero", "red", 3); got != want {
		t.Fatalf("VariantVersionDoc = %q", got)
	}
}

func TestLayoutDepartmentVersionDoc(t *testing.T) {
	l := NewLayout("/proj")

	got, err := l.DepartmentVersionDoc(ParentNames{Kind: types.ParentShot, Name: "sh020", SequenceName: "sq010"}, "fx", 12)
	if err != nil {
		t.Fatalf("DepartmentVersionDoc: %v", err)
	}
	want := filepath.Join("/proj", "shots", "sq010_sh020", "fx", "sq010_sh020_fx_012.usda")
	if got != want {
		t.Fatalf("DepartmentVersionDoc = %q, want %q", got, want)
	}
}

func TestLayoutTaskDirAndWorkfileName(t *testing.T) {
	l := NewLayout("/proj")

	dir, err := l.TaskDir(ParentNames{Kind: types.ParentAsset, Name: "hero"}, "maya", "model", "blocking")
	if err != nil {
		t.Fatalf("TaskDir: %v", err)
	}
	if dir != filepath.Join("/proj", "entity", "hero", "maya", "model", "blocking") {
		t.Fatalf("TaskDir = %q", dir)
	}

	if got := WorkfileName("hero", "model", "blocking", 4, ".ma"); got != "hero_model_blocking_v004.ma" {
		t.Fatalf("WorkfileName = %q", got)
	}
}
