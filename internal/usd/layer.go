// Package usd reads and writes the usda-subset scene-description documents
// the pipeline manages: a single root prim, ordered sublayer lists, variant
// sets with per-variant payloads, and shot timecodes. Documents are edited
// in memory and rewritten whole on Save.
package usd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

const header = "#usda 1.0"

// Layer is one on-disk document plus its root prim spec.
type Layer struct {
	// FilePath is the absolute on-disk location; reference paths inside the
	// document are relative to its directory.
	FilePath string

	DefaultPrim   string
	SubLayers     []string
	StartTimeCode *int
	EndTimeCode   *int

	Root *PrimSpec
}

// PrimSpec is the document's root prim: type, optional kind and assetInfo,
// a root-level payload, variant sets, and the active variant selections.
type PrimSpec struct {
	Name      string
	TypeName  string
	Kind      string
	AssetInfo map[string]string
	Payload   string

	VariantSets []*VariantSetSpec
	Selections  map[string]string
}

type VariantSetSpec struct {
	Name     string
	Variants []*VariantSpec
}

type VariantSpec struct {
	Name    string
	Payload string
}

func (p *PrimSpec) variantSet(name string) *VariantSetSpec {
	for _, vs := range p.VariantSets {
		if vs.Name == name {
			return vs
		}
	}
	return nil
}

func (vs *VariantSetSpec) variant(name string) *VariantSpec {
	for _, v := range vs.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Save rewrites the whole document. There is no partial-update protocol;
// concurrent writers to the same file race with last-write-wins semantics.
func (l *Layer) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.FilePath), 0o755); err != nil {
		return &pipeerr.FilesystemError{Path: filepath.Dir(l.FilePath), Err: err}
	}
	if err := os.WriteFile(l.FilePath, []byte(l.encode()), 0o644); err != nil {
		return &pipeerr.DocumentError{Path: l.FilePath, Op: "save", Err: err}
	}
	return nil
}

func (l *Layer) encode() string {
	var b strings.Builder
	b.WriteString(header + "\n")

	b.WriteString("(\n")
	if l.DefaultPrim != "" {
		fmt.Fprintf(&b, "    defaultPrim = %q\n", l.DefaultPrim)
	}
	if l.StartTimeCode != nil {
		fmt.Fprintf(&b, "    startTimeCode = %d\n", *l.StartTimeCode)
	}
	if l.EndTimeCode != nil {
		fmt.Fprintf(&b, "    endTimeCode = %d\n", *l.EndTimeCode)
	}
	if len(l.SubLayers) > 0 {
		b.WriteString("    subLayers = [\n")
		for i, sl := range l.SubLayers {
			sep := ","
			if i == len(l.SubLayers)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "        @%s@%s\n", sl, sep)
		}
		b.WriteString("    ]\n")
	}
	b.WriteString(")\n")

	if l.Root == nil {
		return b.String()
	}
	p := l.Root

	b.WriteString("\n")
	fmt.Fprintf(&b, "def %s %q (\n", p.TypeName, p.Name)
	if p.Kind != "" {
		fmt.Fprintf(&b, "    kind = %q\n", p.Kind)
	}
	if len(p.AssetInfo) > 0 {
		b.WriteString("    assetInfo = {\n")
		keys := make([]string, 0, len(p.AssetInfo))
		for k := range p.AssetInfo {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "        string %s = %q\n", k, p.AssetInfo[k])
		}
		b.WriteString("    }\n")
	}
	if p.Payload != "" {
		fmt.Fprintf(&b, "    prepend payload = @%s@\n", p.Payload)
	}
	if len(p.Selections) > 0 {
		b.WriteString("    variants = {\n")
		keys := make([]string, 0, len(p.Selections))
		for k := range p.Selections {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "        string %s = %q\n", k, p.Selections[k])
		}
		b.WriteString("    }\n")
	}
	if len(p.VariantSets) > 0 {
		names := make([]string, 0, len(p.VariantSets))
		for _, vs := range p.VariantSets {
			names = append(names, fmt.Sprintf("%q", vs.Name))
		}
		fmt.Fprintf(&b, "    prepend variantSets = [%s]\n", strings.Join(names, ", "))
	}
	b.WriteString(")\n")

	b.WriteString("{\n")
	for _, vs := range p.VariantSets {
		fmt.Fprintf(&b, "    variantSet %q = {\n", vs.Name)
		for _, v := range vs.Variants {
			if v.Payload != "" {
				fmt.Fprintf(&b, "        %q (\n", v.Name)
				fmt.Fprintf(&b, "            prepend payload = @%s@\n", v.Payload)
				b.WriteString("        ) {\n")
			} else {
				fmt.Fprintf(&b, "        %q {\n", v.Name)
			}
			b.WriteString("        }\n")
		}
		b.WriteString("    }\n")
	}
	b.WriteString("}\n")

	return b.String()
}
