// Package tree produces a directory listing used as prompt context.
package tree

import (
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// maxDepth limits the listing so prompts stay bounded.
const maxDepth = 4

// Listing returns a directory-tree listing of root. It prefers the tree
// command and falls back to a plain walk when tree is unavailable.
func Listing(root string) string {
	cmd := exec.Command("tree", "-L", fmt.Sprint(maxDepth))
	cmd.Dir = root
	if out, err := cmd.Output(); err == nil {
		return string(out)
	}
	return walkListing(root)
}

func walkListing(root string) string {
	var lines []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if depth >= maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		suffix := ""
		if d.IsDir() {
			suffix = "/"
		}
		lines = append(lines, strings.Repeat("  ", depth)+name+suffix)
		return nil
	})
	return strings.Join(lines, "\n")
}
