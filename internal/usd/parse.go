package usd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

// Open reads and parses a document. Missing files and malformed content both
// surface as DocumentError; the caller treats either as fatal to the
// operation.
func Open(path string) (*Layer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &pipeerr.DocumentError{Path: path, Op: "open", Err: err}
	}
	l, err := decode(string(raw))
	if err != nil {
		return nil, &pipeerr.DocumentError{Path: path, Op: "parse", Err: err}
	}
	l.FilePath = path
	return l, nil
}

type scanner struct {
	lines []string
	pos   int
}

func (s *scanner) next() (string, bool) {
	for s.pos < len(s.lines) {
		line := strings.TrimSpace(s.lines[s.pos])
		s.pos++
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

func (s *scanner) peek() (string, bool) {
	save := s.pos
	line, ok := s.next()
	s.pos = save
	return line, ok
}

func decode(text string) (*Layer, error) {
	s := &scanner{lines: strings.Split(text, "\n")}

	line, ok := s.next()
	if !ok || !strings.HasPrefix(line, "#usda") {
		return nil, fmt.Errorf("missing #usda header")
	}

	l := &Layer{}

	line, ok = s.next()
	if !ok {
		return l, nil
	}
	if line == "(" {
		if err := parseLayerMeta(s, l); err != nil {
			return nil, err
		}
		line, ok = s.next()
		if !ok {
			return l, nil
		}
	}

	if strings.HasPrefix(line, "def ") {
		prim, err := parsePrim(s, line)
		if err != nil {
			return nil, err
		}
		l.Root = prim
	}

	return l, nil
}

func parseLayerMeta(s *scanner, l *Layer) error {
	for {
		line, ok := s.next()
		if !ok {
			return fmt.Errorf("unterminated layer metadata")
		}
		switch {
		case line == ")":
			return nil
		case strings.HasPrefix(line, "defaultPrim"):
			l.DefaultPrim = quoted(line)
		case strings.HasPrefix(line, "startTimeCode"):
			v, err := intValue(line)
			if err != nil {
				return err
			}
			l.StartTimeCode = &v
		case strings.HasPrefix(line, "endTimeCode"):
			v, err := intValue(line)
			if err != nil {
				return err
			}
			l.EndTimeCode = &v
		case strings.HasPrefix(line, "subLayers"):
			refs, err := parseRefList(s)
			if err != nil {
				return err
			}
			l.SubLayers = refs
		}
	}
}

func parseRefList(s *scanner) ([]string, error) {
	var refs []string
	for {
		line, ok := s.next()
		if !ok {
			return nil, fmt.Errorf("unterminated subLayers list")
		}
		if line == "]" {
			return refs, nil
		}
		ref := assetRef(line)
		if ref == "" {
			return nil, fmt.Errorf("bad sublayer entry %q", line)
		}
		refs = append(refs, ref)
	}
}

func parsePrim(s *scanner, defLine string) (*PrimSpec, error) {
	// def Xform "root" (
	fields := strings.Fields(defLine)
	if len(fields) < 3 {
		return nil, fmt.Errorf("bad prim definition %q", defLine)
	}
	p := &PrimSpec{
		TypeName:   fields[1],
		Name:       strings.Trim(fields[2], `"`),
		AssetInfo:  map[string]string{},
		Selections: map[string]string{},
	}

	if strings.HasSuffix(defLine, "(") {
		if err := parsePrimMeta(s, p); err != nil {
			return nil, err
		}
	}

	line, ok := s.next()
	if !ok || line != "{" {
		return nil, fmt.Errorf("missing prim body")
	}
	for {
		line, ok = s.next()
		if !ok {
			return nil, fmt.Errorf("unterminated prim body")
		}
		if line == "}" {
			return p, nil
		}
		if strings.HasPrefix(line, "variantSet ") {
			vs, err := parseVariantSet(s, line)
			if err != nil {
				return nil, err
			}
			// prim metadata may have declared the set name already
			if existing := p.variantSet(vs.Name); existing != nil {
				existing.Variants = vs.Variants
			} else {
				p.VariantSets = append(p.VariantSets, vs)
			}
		}
	}
}

func parsePrimMeta(s *scanner, p *PrimSpec) error {
	for {
		line, ok := s.next()
		if !ok {
			return fmt.Errorf("unterminated prim metadata")
		}
		if line == ")" {
			return nil
		}
		// list-op qualifiers don't change the field being set
		keyword := strings.TrimPrefix(line, "prepend ")
		keyword = strings.TrimPrefix(keyword, "append ")
		switch {
		case strings.HasPrefix(keyword, "kind"):
			p.Kind = quoted(line)
		case strings.HasPrefix(keyword, "assetInfo"):
			if err := parseStringDict(s, p.AssetInfo); err != nil {
				return err
			}
		case strings.HasPrefix(keyword, "payload"):
			p.Payload = assetRef(line)
		case strings.HasPrefix(keyword, "variantSets"):
			for _, name := range quotedList(line) {
				if p.variantSet(name) == nil {
					p.VariantSets = append(p.VariantSets, &VariantSetSpec{Name: name})
				}
			}
		case strings.HasPrefix(keyword, "variants"):
			if err := parseStringDict(s, p.Selections); err != nil {
				return err
			}
		}
	}
}

func parseStringDict(s *scanner, dst map[string]string) error {
	for {
		line, ok := s.next()
		if !ok {
			return fmt.Errorf("unterminated dictionary")
		}
		if line == "}" {
			return nil
		}
		// string key = "value"
		line = strings.TrimPrefix(line, "string ")
		eq := strings.Index(line, "=")
		if eq < 0 {
			return fmt.Errorf("bad dictionary entry %q", line)
		}
		key := strings.TrimSpace(line[:eq])
		dst[key] = strings.Trim(strings.TrimSpace(line[eq+1:]), `"`)
	}
}

func parseVariantSet(s *scanner, head string) (*VariantSetSpec, error) {
	// variantSet "look" = {
	vs := &VariantSetSpec{Name: quoted(head)}
	for {
		line, ok := s.next()
		if !ok {
			return nil, fmt.Errorf("unterminated variantSet %q", vs.Name)
		}
		if line == "}" {
			return vs, nil
		}
		if !strings.HasPrefix(line, `"`) {
			return nil, fmt.Errorf("bad variant entry %q", line)
		}
		v := &VariantSpec{Name: quoted(line)}
		if strings.HasSuffix(line, "(") {
			// variant metadata: payload, closed by ") {"
			for {
				meta, ok := s.next()
				if !ok {
					return nil, fmt.Errorf("unterminated variant %q", v.Name)
				}
				if meta == ") {" || meta == ")" {
					break
				}
				if strings.Contains(meta, "payload") {
					v.Payload = assetRef(meta)
				}
			}
		}
		// consume the (empty) variant body
		if err := skipBody(s); err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		vs.Variants = append(vs.Variants, v)
	}
}

func skipBody(s *scanner) error {
	depth := 1
	for depth > 0 {
		line, ok := s.next()
		if !ok {
			return fmt.Errorf("unterminated body")
		}
		if strings.HasSuffix(line, "{") {
			depth++
		}
		if line == "}" {
			depth--
		}
	}
	return nil
}

func quoted(line string) string {
	start := strings.Index(line, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(line[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return line[start+1 : start+1+end]
}

func quotedList(line string) []string {
	var out []string
	rest := line
	for {
		q := quoted(rest)
		if q == "" {
			return out
		}
		out = append(out, q)
		idx := strings.Index(rest, `"`+q+`"`)
		rest = rest[idx+len(q)+2:]
	}
}

func assetRef(line string) string {
	start := strings.Index(line, "@")
	if start < 0 {
		return ""
	}
	end := strings.Index(line[start+1:], "@")
	if end < 0 {
		return ""
	}
	return line[start+1 : start+1+end]
}

func intValue(line string) (int, error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return 0, fmt.Errorf("bad metadata entry %q", line)
	}
	return strconv.Atoi(strings.TrimSpace(line[eq+1:]))
}
