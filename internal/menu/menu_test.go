package menu

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convtools/mconv/internal/scan"
)

func newTestMenu(input string) (*Menu, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func group(ext string, files ...string) scan.Group {
	return scan.Group{Ext: ext, Files: files}
}

// --- SelectInputFormat ---

func TestSelectInputFormat_ValidChoice(t *testing.T) {
	m, _ := newTestMenu("2\n")
	groups := []scan.Group{
		group("mkv", "/in/a.mkv"),
		group("mp4", "/in/b.mp4", "/in/c.mp4"),
	}

	g, ok := m.SelectInputFormat(groups)
	if !ok {
		t.Fatal("expected a selection, got cancel")
	}
	if g.Ext != "mp4" {
		t.Errorf("selected ext = %q, want mp4", g.Ext)
	}
}

func TestSelectInputFormat_RepromptsOnInvalid(t *testing.T) {
	// Non-numeric, out-of-range, then valid.
	m, out := newTestMenu("abc\n9\n1\n")
	groups := []scan.Group{group("mkv", "/in/a.mkv")}

	g, ok := m.SelectInputFormat(groups)
	if !ok || g.Ext != "mkv" {
		t.Fatalf("got (%q, %v), want (mkv, true)", g.Ext, ok)
	}
	if n := strings.Count(out.String(), "Invalid choice"); n != 2 {
		t.Errorf("got %d invalid-choice messages, want 2", n)
	}
}

func TestSelectInputFormat_Cancel(t *testing.T) {
	for _, input := range []string{"0\n", "q\n", "exit\n", ""} {
		m, _ := newTestMenu(input)
		if _, ok := m.SelectInputFormat([]scan.Group{group("mkv", "/a.mkv")}); ok {
			t.Errorf("input %q should cancel", input)
		}
	}
}

// --- SelectOutputFormat ---

func TestSelectOutputFormat_FixedList(t *testing.T) {
	m, _ := newTestMenu("1\n")
	f, ok := m.SelectOutputFormat()
	if !ok || f != "mp4" {
		t.Errorf("got (%q, %v), want (mp4, true)", f, ok)
	}
}

func TestSelectOutputFormat_LastEntry(t *testing.T) {
	m, _ := newTestMenu("16\n")
	f, ok := m.SelectOutputFormat()
	if !ok || f != "webp" {
		t.Errorf("got (%q, %v), want (webp, true)", f, ok)
	}
}

func TestSelectOutputFormat_Custom(t *testing.T) {
	m, _ := newTestMenu("c\n.OPUS\n")
	f, ok := m.SelectOutputFormat()
	if !ok || f != "opus" {
		t.Errorf("got (%q, %v), want (opus, true)", f, ok)
	}
}

func TestSelectOutputFormat_BadCustomReprompts(t *testing.T) {
	m, _ := newTestMenu("c\nnot a format!\n3\n")
	f, ok := m.SelectOutputFormat()
	if !ok || f != "mkv" {
		t.Errorf("got (%q, %v), want (mkv, true) after invalid custom entry", f, ok)
	}
}

func TestSelectOutputFormat_Cancel(t *testing.T) {
	m, _ := newTestMenu("0\n")
	if _, ok := m.SelectOutputFormat(); ok {
		t.Error("0 should cancel")
	}
}

// --- SelectFiles ---

func TestSelectFiles_Single(t *testing.T) {
	m, _ := newTestMenu("2\n")
	g := group("mp4", "/in/a.mp4", "/in/b.mp4", "/in/c.mp4")

	files, ok := m.SelectFiles(g)
	if !ok || len(files) != 1 || files[0] != "/in/b.mp4" {
		t.Errorf("got (%v, %v), want ([/in/b.mp4], true)", files, ok)
	}
}

func TestSelectFiles_CommaListKeepsEntryOrder(t *testing.T) {
	// "3, 1" converts file 3 first.
	m, _ := newTestMenu("3, 1\n")
	g := group("mp4", "/in/a.mp4", "/in/b.mp4", "/in/c.mp4")

	files, ok := m.SelectFiles(g)
	if !ok {
		t.Fatal("expected selection")
	}
	want := []string{"/in/c.mp4", "/in/a.mp4"}
	if len(files) != 2 || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("got %v, want %v", files, want)
	}
}

func TestSelectFiles_All(t *testing.T) {
	g := group("mp4", "/in/a.mp4", "/in/b.mp4")
	for _, input := range []string{"a\n", "all\n", "-1\n"} {
		m, _ := newTestMenu(input)
		files, ok := m.SelectFiles(g)
		if !ok || len(files) != 2 {
			t.Errorf("input %q: got (%v, %v), want all files", input, files, ok)
		}
	}
}

func TestSelectFiles_InvalidReprompts(t *testing.T) {
	// Out-of-range in a list rejects the whole entry; then a valid one.
	m, out := newTestMenu("1,9\nxyz\n1\n")
	g := group("mp4", "/in/a.mp4", "/in/b.mp4")

	files, ok := m.SelectFiles(g)
	if !ok || len(files) != 1 || files[0] != "/in/a.mp4" {
		t.Errorf("got (%v, %v), want ([/in/a.mp4], true)", files, ok)
	}
	if n := strings.Count(out.String(), "Invalid choice"); n != 2 {
		t.Errorf("got %d invalid-choice messages, want 2", n)
	}
}

func TestSelectFiles_ZeroInListCancels(t *testing.T) {
	m, _ := newTestMenu("1,0\n")
	g := group("mp4", "/in/a.mp4", "/in/b.mp4")
	if _, ok := m.SelectFiles(g); ok {
		t.Error("0 inside a list should cancel")
	}
}

// --- OutputDir ---

func TestOutputDir_DefaultOnEmpty(t *testing.T) {
	def := t.TempDir()
	m, _ := newTestMenu("\n")
	dir, ok := m.OutputDir(def)
	if !ok || dir != def {
		t.Errorf("got (%q, %v), want (%q, true)", dir, ok, def)
	}
}

func TestOutputDir_ExistingDir(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestMenu(dir + "\n")
	got, ok := m.OutputDir("/unused-default")
	if !ok || got != dir {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, dir)
	}
}

func TestOutputDir_CreateConfirmed(t *testing.T) {
	target := filepath.Join(t.TempDir(), "converted")
	m, _ := newTestMenu(target + "\ny\n")

	got, ok := m.OutputDir("/unused-default")
	if !ok || got != target {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, target)
	}
	// The directory must actually exist afterwards.
	m2, _ := newTestMenu(target + "\n")
	if _, ok := m2.OutputDir("/unused-default"); !ok {
		t.Error("created directory should be accepted without another confirmation")
	}
}

func TestOutputDir_CreateDeclinedReprompts(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	fallback := t.TempDir()
	m, _ := newTestMenu(missing + "\nn\n" + fallback + "\n")

	got, ok := m.OutputDir("/unused-default")
	if !ok || got != fallback {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, fallback)
	}
}

func TestOutputDir_Cancel(t *testing.T) {
	m, _ := newTestMenu("cancel\n")
	if _, ok := m.OutputDir(t.TempDir()); ok {
		t.Error("cancel token should abort")
	}
}

// --- helpers ---

func TestParseIndices(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		max     int
		want    []int
		wantNil bool // cancel
		wantErr bool
	}{
		{name: "single", line: "2", max: 3, want: []int{2}},
		{name: "entry order kept", line: "3,1", max: 3, want: []int{3, 1}},
		{name: "duplicates dropped", line: "2,1,2", max: 3, want: []int{2, 1}},
		{name: "spaces tolerated", line: " 1 , 2 ", max: 3, want: []int{1, 2}},
		{name: "zero cancels", line: "1,0,2", max: 3, wantNil: true},
		{name: "out of range", line: "4", max: 3, wantErr: true},
		{name: "negative", line: "-2", max: 3, wantErr: true},
		{name: "non numeric", line: "1,x", max: 3, wantErr: true},
		{name: "empty", line: "", max: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndices(tt.line, tt.max)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseIndices(%q) expected error, got %v", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIndices(%q) unexpected error: %v", tt.line, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("parseIndices(%q) = %v, want nil (cancel)", tt.line, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseIndices(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseIndices(%q)[%d] = %d, want %d", tt.line, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"mp4", "mp4", false},
		{".mp4", "mp4", false},
		{"  OPUS ", "opus", false},
		{"3gp", "3gp", false},
		{"", "", true},
		{"m p4", "", true},
		{"mp4!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("normalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
