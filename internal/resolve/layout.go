package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

// Layout computes every on-disk location from the project root. All document
// and folder naming conventions live here so the services never assemble
// paths by hand.
type Layout struct {
	ProjectRoot string
}

// ProjectFolders is the canonical folder set created when a project is
// bootstrapped.
var ProjectFolders = []string{
	"entity",
	"fragment",
	"pipeline",
	"documentation",
	"hdri",
	"external",
	"reference",
	"render",
	"resources",
	"sequences",
	"shots",
}

func NewLayout(projectRoot string) Layout {
	return Layout{ProjectRoot: projectRoot}
}

func (l Layout) AssetsDir() string    { return filepath.Join(l.ProjectRoot, "entity") }
func (l Layout) SequencesDir() string { return filepath.Join(l.ProjectRoot, "sequences") }
func (l Layout) ShotsDir() string     { return filepath.Join(l.ProjectRoot, "shots") }
func (l Layout) FragmentDir() string  { return filepath.Join(l.ProjectRoot, "fragment") }

func (l Layout) AssetDoc(name string) string {
	return filepath.Join(l.AssetsDir(), name, name+".usda")
}

func (l Layout) SequenceDoc(name string) string {
	return filepath.Join(l.SequencesDir(), name, name+".usda")
}

// ShotDoc uses the composite {sequence}_{shot} name for both the folder and
// the document, so shot names only need to be unique within their sequence.
func (l Layout) ShotDoc(sequenceName, shotName string) string {
	full := sequenceName + "_" + shotName
	return filepath.Join(l.ShotsDir(), full, full+".usda")
}

// DepartmentDoc places a department sublayer document next to its parent
// entity document, one folder deeper.
func (l Layout) DepartmentDoc(parent ParentNames, departmentName string) (string, error) {
	var parentDir, parentName string
	switch parent.Kind {
	case types.ParentAsset:
		parentDir = filepath.Join(l.AssetsDir(), parent.Name)
		parentName = parent.Name
	case types.ParentSequence:
		parentDir = filepath.Join(l.SequencesDir(), parent.Name)
		parentName = parent.Name
	case types.ParentShot:
		full := parent.SequenceName + "_" + parent.Name
		parentDir = filepath.Join(l.ShotsDir(), full)
		parentName = full
	default:
		return "", pipeerr.InvalidScope(string(parent.Kind))
	}
	return filepath.Join(parentDir, departmentName, parentName+"_"+departmentName+".usda"), nil
}

func (l Layout) SetVariantDoc(setVarName, departmentName, assetName string) string {
	fileName := fmt.Sprintf("%s_%s_%s.usda", setVarName, departmentName, assetName)
	return filepath.Join(l.FragmentDir(), setVarName, departmentName, assetName, fileName)
}

// VariantDir holds all published versions of one content variant.
func (l Layout) VariantDir(setVarName, departmentName, assetName, variantName string) string {
	return filepath.Join(l.FragmentDir(), setVarName, departmentName, assetName, variantName)
}

// VariantVersionDoc is the published fragment for one version of a content
// variant.
func (l Layout) VariantVersionDoc(setVarName, departmentName, assetName, variantName string, version int) string {
	fileName := fmt.Sprintf("%s_%s_%s_%s_%03d.usda", setVarName, departmentName, assetName, variantName, version)
	return filepath.Join(l.FragmentDir(), setVarName, departmentName, assetName, variantName, fileName)
}

// DepartmentVersionDoc is the published fragment for one department-level
// revision; it lives beside the department's sublayer document.
func (l Layout) DepartmentVersionDoc(parent ParentNames, departmentName string, version int) (string, error) {
	deptDoc, err := l.DepartmentDoc(parent, departmentName)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(deptDoc)
	stem := strings.TrimSuffix(filepath.Base(deptDoc), ".usda")
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.usda", stem, version)), nil
}

// TaskDir is where a task's working files live, grouped by host software.
func (l Layout) TaskDir(parent ParentNames, softwareName, departmentName, taskName string) (string, error) {
	switch parent.Kind {
	case types.ParentAsset:
		return filepath.Join(l.AssetsDir(), parent.Name, softwareName, departmentName, taskName), nil
	case types.ParentSequence:
		return filepath.Join(l.SequencesDir(), parent.Name, softwareName, departmentName, taskName), nil
	case types.ParentShot:
		full := parent.SequenceName + "_" + parent.Name
		return filepath.Join(l.ShotsDir(), full, softwareName, departmentName, taskName), nil
	}
	return "", pipeerr.InvalidScope(string(parent.Kind))
}

// WorkfileName builds the versioned working-file name.
func WorkfileName(entityName, departmentName, taskName string, version int, ext string) string {
	return fmt.Sprintf("%s_%s_%s_v%03d%s", entityName, departmentName, taskName, version, ext)
}
