package project

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Paths holds all relevant locations for a perfbot-managed project.
type Paths struct {
	Root      string // project root
	CacheDir  string // .perfbot/
	LogDir    string // .perfbot/logs/
	HistoryDB string // .perfbot/history.db
	Results   string // perfbot_results.json
	Chart     string // perfbot_comparison.svg
}

// FindRoot returns the project root, preferring PERFBOT_PROJECT_DIR if set,
// then the enclosing git repository, then the current working directory.
func FindRoot() (string, error) {
	if dir := os.Getenv("PERFBOT_PROJECT_DIR"); dir != "" {
		return dir, nil
	}
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	return os.Getwd()
}

// NewPaths constructs all path constants from a project root.
func NewPaths(root string) Paths {
	return Paths{
		Root:      root,
		CacheDir:  filepath.Join(root, ".perfbot"),
		LogDir:    filepath.Join(root, ".perfbot", "logs"),
		HistoryDB: filepath.Join(root, ".perfbot", "history.db"),
		Results:   filepath.Join(root, "perfbot_results.json"),
		Chart:     filepath.Join(root, "perfbot_comparison.svg"),
	}
}

// Resolve turns a project-relative path into an absolute one. Absolute
// paths are returned unchanged.
func (p Paths) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}

// Relativize converts an absolute path to a project-relative path with
// forward slashes. Paths outside the root are returned unchanged.
func (p Paths) Relativize(abs string) string {
	rel, err := filepath.Rel(p.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return filepath.ToSlash(rel)
}
