package usd

import (
	"path/filepath"
	"testing"
)

func TestRelativeToPrefixesSiblingPaths(t *testing.T) {
	from := filepath.Join("/proj", "entity", "hero", "hero.usda")
	target := filepath.Join("/proj", "entity", "hero", "model", "hero_model.usda")

	ref, err := RelativeTo(from, target)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if ref != "./model/hero_model.usda" {
		t.Fatalf("got %q, want %q", ref, "./model/hero_model.usda")
	}
}

func TestRelativeToKeepsParentTraversalBare(t *testing.T) {
	from := filepath.Join("/proj", "entity", "hero", "model", "hero_model.usda")
	target := filepath.Join("/proj", "fragment", "look", "look.usda")

	ref, err := RelativeTo(from, target)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if ref != "../../../fragment/look/look.usda" {
		t.Fatalf("got %q", ref)
	}
}

func TestRelativeToRoundTrips(t *testing.T) {
	cases := []struct {
		from   string
		target string
	}{
		{"/proj/entity/hero/hero.usda", "/proj/entity/hero/model/hero_model.usda"},
		{"/proj/entity/hero/model/hero_model.usda", "/proj/fragment/look/model/hero/look.usda"},
		{"/proj/sequences/sq010/sq010.usda", "/proj/sequences/sq010/anim/sq010_anim.usda"},
		{"/proj/shots/sq010_sh020/sq010_sh020.usda", "/proj/shots/sq010_sh020/fx/sq010_sh020_fx.usda"},
	}
	for _, tc := range cases {
		ref, err := RelativeTo(tc.from, tc.target)
		if err != nil {
			t.Fatalf("RelativeTo(%s, %s): %v", tc.from, tc.target, err)
		}
		back := ResolveFrom(tc.from, ref)
		if back != filepath.Clean(tc.target) {
			t.Fatalf("round trip %s -> %s -> %s", tc.target, ref, back)
		}
	}
}
