package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/hierarchy"
)

var log = commonlog.GetLogger("formkit.project")

// Project is a design project: the class stubs of a toolkit and the
// descriptions of its components.
type Project struct {
	RootDir         string
	ToolkitDir      string
	DescriptionsDir string

	ClassPath    *java.ClassPath
	Descriptions *model.Descriptions

	// Warnings lists the files and description entries that were skipped.
	Warnings []error
}

// Load reads the design project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// New returns a project in rootDir with no classes and no descriptions.
func New(rootDir string) *Project {
	classes := java.NewClassPath()
	return &Project{
		RootDir:         rootDir,
		ToolkitDir:      filepath.Join(rootDir, "toolkit"),
		DescriptionsDir: filepath.Join(rootDir, "descriptions"),
		ClassPath:       classes,
		Descriptions:    model.NewDescriptions(classes),
	}
}

// LoadFrom reads the design project in rootDir. It expects a toolkit/
// directory with Java class stubs and a descriptions/ directory with
// component description files.
func LoadFrom(rootDir string) (*Project, error) {
	p := New(rootDir)
	stubs, err := filesWithSuffix(p.ToolkitDir, ".java")
	if err != nil {
		return nil, fmt.Errorf("read toolkit directory: %w", err)
	}
	for _, path := range stubs {
		if err := p.loadStub(path); err != nil {
			p.warn(err)
		}
	}

	files, err := filesWithSuffix(p.DescriptionsDir, ".xml")
	if err != nil {
		return nil, fmt.Errorf("read descriptions directory: %w", err)
	}
	for _, path := range files {
		if err := p.loadDescriptions(path); err != nil {
			p.warn(err)
		}
	}

	log.Infof("loaded %d classes and %d descriptions from %s", len(p.ClassPath.Classes()), len(p.Descriptions.All()), rootDir)
	return p, nil
}

func (p *Project) warn(err error) {
	log.Warningf("%s", err)
	p.Warnings = append(p.Warnings, err)
}

func (p *Project) loadStub(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	models, err := java.ClassModelsFromSource(source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	p.ClassPath.Add(models...)
	return nil
}

func (p *Project) loadDescriptions(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	descs, warnings, err := model.ReadDescriptions(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, w := range warnings {
		p.warn(fmt.Errorf("%s: %w", path, w))
	}
	p.Descriptions.Add(descs...)
	return nil
}

// filesWithSuffix returns the files below dir ending in suffix, in lexical
// order.
func filesWithSuffix(dir, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, suffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Open parses the designed class in the file at path.
func (p *Project) Open(path string) (*hierarchy.Hierarchy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := p.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Parse builds the component tree of the class declared in source. The
// classes of source are visible to it but are not added to the project.
func (p *Project) Parse(source []byte) (*hierarchy.Hierarchy, error) {
	classes := java.NewClassPath(p.ClassPath.Classes()...)
	descs := model.NewDescriptions(classes)
	descs.Add(p.Descriptions.All()...)

	ed, err := editor.Parse(source, classes)
	if err != nil {
		return nil, err
	}
	classes.Add(java.ClassModelsFromTree(ed.Tree())...)
	return hierarchy.Parse(ed, descs)
}
