package usd

import (
	"fmt"
	"slices"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

// CreateOpts controls the conventional root structure of a new document.
type CreateOpts struct {
	Kind      string
	AssetInfo map[string]string
	StartTC   *int
	EndTC     *int
}

// CreateNew builds a document with the conventional root prim ("/root",
// Xform, default prim) and saves it. The parent directory is created as
// needed.
func CreateNew(path string, opts CreateOpts) (*Layer, error) {
	l := &Layer{
		FilePath:      path,
		DefaultPrim:   "root",
		StartTimeCode: opts.StartTC,
		EndTimeCode:   opts.EndTC,
		Root: &PrimSpec{
			Name:       "root",
			TypeName:   "Xform",
			Kind:       opts.Kind,
			AssetInfo:  map[string]string{},
			Selections: map[string]string{},
		},
	}
	for k, v := range opts.AssetInfo {
		l.Root.AssetInfo[k] = v
	}
	if err := l.Save(); err != nil {
		return nil, err
	}
	return l, nil
}

// InsertSubLayerFront prepends ref so the new sublayer takes the strongest
// position, skipping the insert when the ref is already present. Reports
// whether the list changed.
func (l *Layer) InsertSubLayerFront(ref string) bool {
	if slices.Contains(l.SubLayers, ref) {
		return false
	}
	l.SubLayers = append([]string{ref}, l.SubLayers...)
	return true
}

// AppendSubLayer adds ref at the weakest position, skipping duplicates.
func (l *Layer) AppendSubLayer(ref string) bool {
	if slices.Contains(l.SubLayers, ref) {
		return false
	}
	l.SubLayers = append(l.SubLayers, ref)
	return true
}

// RemoveSubLayer deletes ref from the sublayer list. Reports whether the
// list changed.
func (l *Layer) RemoveSubLayer(ref string) bool {
	idx := slices.Index(l.SubLayers, ref)
	if idx < 0 {
		return false
	}
	l.SubLayers = slices.Delete(l.SubLayers, idx, idx+1)
	return true
}

// EnsureVariantSet adds a named variant set to the root prim if absent and
// returns it.
func (l *Layer) EnsureVariantSet(name string) *VariantSetSpec {
	if vs := l.Root.variantSet(name); vs != nil {
		return vs
	}
	vs := &VariantSetSpec{Name: name}
	l.Root.VariantSets = append(l.Root.VariantSets, vs)
	return vs
}

// AddVariant adds a named option to a variant set without touching payloads
// or the active selection. Adding an existing variant is a no-op.
func (l *Layer) AddVariant(set, name string) error {
	vs := l.Root.variantSet(set)
	if vs == nil {
		return pipeerr.NotFound("variant set", set)
	}
	if vs.variant(name) == nil {
		vs.Variants = append(vs.Variants, &VariantSpec{Name: name})
	}
	return nil
}

// SelectVariant makes name the active selection for set. The variant must
// already exist in the set.
func (l *Layer) SelectVariant(set, name string) error {
	vs := l.Root.variantSet(set)
	if vs == nil {
		return pipeerr.NotFound("variant set", set)
	}
	if vs.variant(name) == nil {
		return pipeerr.NotFound(fmt.Sprintf("variant in set %q", set), name)
	}
	if l.Root.Selections == nil {
		l.Root.Selections = map[string]string{}
	}
	l.Root.Selections[set] = name
	return nil
}

// VariantEditContext returns the spec of set's currently selected variant.
// Edits made through it apply only under that selection. It is an error to
// enter an edit context with no active selection.
func (l *Layer) VariantEditContext(set string) (*VariantSpec, error) {
	vs := l.Root.variantSet(set)
	if vs == nil {
		return nil, pipeerr.NotFound("variant set", set)
	}
	sel, ok := l.Root.Selections[set]
	if !ok {
		return nil, fmt.Errorf("variant set %q has no active selection", set)
	}
	v := vs.variant(sel)
	if v == nil {
		return nil, pipeerr.NotFound(fmt.Sprintf("variant in set %q", set), sel)
	}
	return v, nil
}

// SetPayloadUnderSelection selects variant in set, clears any payload
// reference scoped to that selection, and adds one pointing at ref.
// Re-running with the same ref leaves the document unchanged in effect.
func (l *Layer) SetPayloadUnderSelection(set, variant, ref string) error {
	if err := l.SelectVariant(set, variant); err != nil {
		return err
	}
	v, err := l.VariantEditContext(set)
	if err != nil {
		return err
	}
	v.Payload = ref
	return nil
}
