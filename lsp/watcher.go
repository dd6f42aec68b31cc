package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ProjectWatcher reloads the design project of a workspace when a toolkit
// stub or a description file changes.
type ProjectWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewProjectWatcher(w *Workspace) *ProjectWatcher {
	return &ProjectWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (pw *ProjectWatcher) Start() {
	go pw.run()
}

func (pw *ProjectWatcher) Stop() {
	close(pw.stopCh)
}

func (pw *ProjectWatcher) run() {
	ticker := time.NewTicker(pw.pollInterval)
	defer ticker.Stop()

	pw.scan()

	for {
		select {
		case <-pw.stopCh:
			return
		case <-ticker.C:
			if pw.scan() {
				if err := pw.workspace.LoadProject(); err != nil {
					log.Warningf("reload project: %s", err)
				}
			}
		}
	}
}

// scan records the modification times of the project files and reports
// whether any file appeared, changed or disappeared since the last scan.
func (pw *ProjectWatcher) scan() bool {
	p := pw.workspace.Project()
	changed := false
	current := make(map[string]bool)

	for _, dir := range []string{p.ToolkitDir, p.DescriptionsDir} {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != dir && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if ext := filepath.Ext(path); ext != ".java" && ext != ".xml" {
				return nil
			}

			current[path] = true

			lastMod, known := pw.modTimes[path]
			if !known || info.ModTime().After(lastMod) {
				pw.modTimes[path] = info.ModTime()
				changed = true
			}
			return nil
		})
	}

	for path := range pw.modTimes {
		if !current[path] {
			delete(pw.modTimes, path)
			changed = true
		}
	}
	return changed
}
