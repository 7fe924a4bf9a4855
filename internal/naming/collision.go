package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver tracks output paths claimed by jobs built earlier in the same
// batch and resolves duplicates by appending " (N)" suffixes. A path counts
// as taken when an earlier job claimed it or when a file already exists on
// disk. Intended for sequential use while the job list is built.
type Resolver struct {
	claimed map[string]bool
	exists  func(string) bool
}

// NewResolver creates a ready-to-use resolver that consults the filesystem
// via os.Stat.
func NewResolver() *Resolver {
	return &Resolver{
		claimed: make(map[string]bool),
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// NewResolverFunc creates a resolver with a custom existence check.
func NewResolverFunc(exists func(string) bool) *Resolver {
	return &Resolver{claimed: make(map[string]bool), exists: exists}
}

// Taken reports whether path is claimed by an earlier job or present on disk.
func (r *Resolver) Taken(path string) bool {
	return r.claimed[path] || r.exists(path)
}

// Claim marks path as owned by the batch being built.
func (r *Resolver) Claim(path string) {
	r.claimed[path] = true
}

// Rename returns the first " (N)" variant of path that is not taken, and
// claims it. N starts at 1 and the suffix goes before the extension:
//
//	/out/clip.mp4 -> /out/clip (1).mp4
func (r *Resolver) Rename(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !r.Taken(candidate) {
			r.Claim(candidate)
			return candidate
		}
	}
}
