package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/convtools/mconv/internal/config"
	"github.com/convtools/mconv/internal/naming"
)

func noDisk() *naming.Resolver {
	return naming.NewResolverFunc(func(string) bool { return false })
}

func TestBuild_OneJobPerFileWithTargetExtension(t *testing.T) {
	files := []string{"/in/a.avi", "/in/b.avi", "/in/c.avi"}
	jobs := build(files, "mp4", "/out", config.ConflictRename, noDisk())

	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}
	for i, j := range jobs {
		if j.Format != "mp4" {
			t.Errorf("job %d format = %q, want mp4", i, j.Format)
		}
		if filepath.Ext(j.OutputPath) != ".mp4" {
			t.Errorf("job %d output %q does not end in .mp4", i, j.OutputPath)
		}
		if j.Skip || j.InPlace {
			t.Errorf("job %d unexpectedly skipped or in-place", i)
		}
	}
}

func TestBuild_OutputNeverEqualsInputByDefault(t *testing.T) {
	// Same directory, same format: the derived output path lands on the source.
	jobs := build([]string{"/in/clip.mp4"}, "mp4", "/in", config.ConflictRename, noDisk())

	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	j := jobs[0]
	if config.SamePath(j.OutputPath, j.Source) {
		t.Errorf("output %q equals source with rename policy", j.OutputPath)
	}
	if j.OutputPath != "/in/clip (1).mp4" {
		t.Errorf("output = %q, want %q", j.OutputPath, "/in/clip (1).mp4")
	}
}

func TestBuild_InPlaceOnlyWithOverwrite(t *testing.T) {
	jobs := build([]string{"/in/clip.mp4"}, "mp4", "/in", config.ConflictOverwrite, noDisk())

	if !jobs[0].InPlace {
		t.Error("overwrite policy should mark output==source jobs as in-place")
	}
	if jobs[0].OutputPath != "/in/clip.mp4" {
		t.Errorf("in-place output = %q, want source path", jobs[0].OutputPath)
	}
}

func TestBuild_SkipPolicyOnSource(t *testing.T) {
	jobs := build([]string{"/in/clip.mp4"}, "mp4", "/in", config.ConflictSkip, noDisk())

	if !jobs[0].Skip {
		t.Error("skip policy should mark output==source jobs as skipped")
	}
	if jobs[0].SkipReason == "" {
		t.Error("skipped job should carry a reason")
	}
}

func TestBuild_BatchInternalCollision(t *testing.T) {
	// Two sources with the same stem but different extensions collide on one
	// output path.
	files := []string{"/in/clip.avi", "/in/clip.mkv"}
	jobs := build(files, "mp4", "/out", config.ConflictRename, noDisk())

	if jobs[0].OutputPath != "/out/clip.mp4" {
		t.Errorf("first output = %q, want %q", jobs[0].OutputPath, "/out/clip.mp4")
	}
	if jobs[1].OutputPath != "/out/clip (1).mp4" {
		t.Errorf("second output = %q, want %q", jobs[1].OutputPath, "/out/clip (1).mp4")
	}
}

func TestBuild_ExistingOnDisk(t *testing.T) {
	exists := func(p string) bool { return p == "/out/clip.mp4" }

	tests := []struct {
		name     string
		policy   config.ConflictPolicy
		wantPath string
		wantSkip bool
	}{
		{"rename picks variant", config.ConflictRename, "/out/clip (1).mp4", false},
		{"overwrite keeps path", config.ConflictOverwrite, "/out/clip.mp4", false},
		{"skip records reason", config.ConflictSkip, "/out/clip.mp4", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := naming.NewResolverFunc(exists)
			jobs := build([]string{"/in/clip.avi"}, "mp4", "/out", tt.policy, r)
			if jobs[0].OutputPath != tt.wantPath {
				t.Errorf("output = %q, want %q", jobs[0].OutputPath, tt.wantPath)
			}
			if jobs[0].Skip != tt.wantSkip {
				t.Errorf("skip = %v, want %v", jobs[0].Skip, tt.wantSkip)
			}
		})
	}
}

func TestBuild_AgainstRealFilesystem(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.avi")
	taken := filepath.Join(dir, "clip.mp4")
	for _, p := range []string{src, taken} {
		if err := os.WriteFile(p, []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	jobs := Build([]string{src}, "mp4", dir, config.ConflictRename)
	want := filepath.Join(dir, "clip (1).mp4")
	if jobs[0].OutputPath != want {
		t.Errorf("output = %q, want %q (existing file on disk)", jobs[0].OutputPath, want)
	}
}
