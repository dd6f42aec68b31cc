package lsp

import (
	"os"
	"sync"

	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/hierarchy"
	"github.com/dhamidi/formkit/project"
)

// Workspace holds the design project and the documents opened by the
// client.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	project *project.Project
	files   map[string]*Document
}

type Document struct {
	Path      string
	Content   []byte
	Hierarchy *hierarchy.Hierarchy
	ParseErr  error
}

// Problems lists the parse error and the discovery warnings of d.
func (d *Document) Problems() []error {
	var problems []error
	if d.ParseErr != nil {
		problems = append(problems, d.ParseErr)
	}
	if d.Hierarchy != nil {
		problems = append(problems, d.Hierarchy.Warnings()...)
	}
	return problems
}

func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		project: project.New(rootDir),
		files:   make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Project() *project.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.project
}

// LoadProject reads the design project again and re-analyzes every open
// document. On failure the previous project stays in use.
func (w *Workspace) LoadProject() error {
	p, err := project.LoadFrom(w.rootDir)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project = p
	for path, doc := range w.files {
		w.updateFileLocked(path, doc.Content)
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

func (w *Workspace) UpdateFile(path string, content []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updateFileLocked(path, content)
}

func (w *Workspace) updateFileLocked(path string, content []byte) {
	h, err := w.project.Parse(content)
	if err != nil {
		log.Debugf("analyze %s: %s", path, err)
	}
	w.files[path] = &Document{
		Path:      path,
		Content:   content,
		Hierarchy: h,
		ParseErr:  err,
	}
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Symbol is a component of a document with the source range that
// declares it.
type Symbol struct {
	Name     string
	Class    string
	Span     ast.Span
	Children []Symbol
}

// Symbols returns the component tree of the document at path, or nil when
// the document is unknown or could not be analyzed.
func (w *Workspace) Symbols(path string) []Symbol {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc := w.files[path]
	if doc == nil || doc.Hierarchy == nil {
		return nil
	}
	root := doc.Hierarchy.Root()
	return []Symbol{symbolOf(root, root.Class())}
}

func symbolOf(j *model.JavaInfo, name string) Symbol {
	s := Symbol{
		Name:  name,
		Class: j.Class(),
		Span:  hierarchy.Span(j),
	}
	for _, child := range j.ChildrenJava() {
		s.Children = append(s.Children, symbolOf(child, child.String()))
	}
	return s
}
