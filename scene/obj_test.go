package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadOBJTriangles parses a minimal valid file.
func TestLoadOBJTriangles(t *testing.T) {
	path := writeOBJ(t, `
# comment
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Positions) != 9 {
		t.Errorf("positions = %d, want 9", len(m.Positions))
	}
	if len(m.Indices) != 3 {
		t.Errorf("indices = %d, want 3", len(m.Indices))
	}
	if m.Indices[0] != 0 || m.Indices[1] != 1 || m.Indices[2] != 2 {
		t.Errorf("indices = %v, want 1-based input shifted to [0 1 2]", m.Indices)
	}
}

// TestLoadOBJQuadFanTriangulation verifies 4-corner faces split into two
// triangles sharing the first corner.
func TestLoadOBJQuadFanTriangulation(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(m.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", m.Indices, want)
	}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

// TestLoadOBJCornerFormats verifies slash-separated and negative indices.
func TestLoadOBJCornerFormats(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2//1 -1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0, 1, 2}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

// TestLoadOBJErrors exercises the failure paths with line context.
func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"short vertex", "v 1 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"bad coordinate", "v a b c\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadOBJ(writeOBJ(t, tc.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// TestLoadOBJMissingFile verifies the open error is wrapped, not panicked.
func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
