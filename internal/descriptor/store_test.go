package descriptor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const demoJSON = `{
  "repository": "demo",
  "function": "f",
  "executable_code_beyond_this_function": true,
  "latent_cognitive_equivalent": "x",
  "attractors": ["a"]
}`

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestNameToPath(t *testing.T) {
	if got := NameToPath("demo"); got != "demo-core-logic.json" {
		t.Errorf("NameToPath = %q, want demo-core-logic.json", got)
	}
}

func TestFSStore_List(t *testing.T) {
	fsys := fstest.MapFS{
		"zeta-core-logic.json":      file(demoJSON),
		"alpha-core-logic.json":     file(demoJSON),
		"notes.txt":                 file("ignored"),
		"-core-logic.json":          file(demoJSON),
		"nested-core-logic.json/x":  file(demoJSON),
		"alpha-core-logic.json.bak": file(demoJSON),
		"broken-core-logic.json":    file("{not json"),
	}
	names, err := NewFSStore(fsys).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "broken", "zeta"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestFSStore_ListEmpty(t *testing.T) {
	names, err := NewFSStore(fstest.MapFS{}).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", names)
	}
}

func TestDirStore_ListMissingDir(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "compressed"))
	names, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}

func TestDirStore_Load(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, NameToPath("demo")), []byte(demoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := NewDirStore(dir).Load(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Descriptor{
		Repository:                       "demo",
		Function:                         "f",
		ExecutableCodeBeyondThisFunction: true,
		LatentCognitiveEquivalent:        "x",
		Attractors:                       []string{"a"},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestFSStore_LoadRereads(t *testing.T) {
	fsys := fstest.MapFS{"demo-core-logic.json": file(demoJSON)}
	store := NewFSStore(fsys)
	ctx := context.Background()

	if _, err := store.Load(ctx, "demo"); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	fsys["demo-core-logic.json"] = file(`{"repository":"demo","function":"g","executable_code_beyond_this_function":false,"latent_cognitive_equivalent":"y","attractors":[]}`)
	d, err := store.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if d.Function != "g" {
		t.Errorf("Function = %q, want g (store must not cache)", d.Function)
	}
}

func TestFSStore_LoadNotFound(t *testing.T) {
	store := NewFSStore(fstest.MapFS{})
	for _, name := range []string{"missing", "", "../etc", `a\b`} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background(), name)
			if !IsNotFound(err) {
				t.Fatalf("Load(%q) err = %v, want NotFound", name, err)
			}
			if IsMalformed(err) {
				t.Error("NotFound must not also report Malformed")
			}
		})
	}
}

func TestFSStore_LoadDirectoryIsNotFound(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"demo-core-logic.json/inner": {Data: []byte(demoJSON)},
	})
	_, err := store.Load(context.Background(), "demo")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	var de *Error
	if !errors.As(err, &de) || de.Path() != "demo-core-logic.json" {
		t.Errorf("error should carry the descriptor path: %v", err)
	}
}

func TestFSStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantMissing []string
		wantInvalid []string
	}{
		{name: "syntax", content: "{not json"},
		{name: "array", content: `["a"]`},
		{name: "null", content: `null`},
		{
			name:        "missing",
			content:     `{"repository":"demo","function":"f"}`,
			wantMissing: []string{"executable_code_beyond_this_function", "latent_cognitive_equivalent", "attractors"},
		},
		{
			name:        "wrong types",
			content:     `{"repository":"demo","function":1,"executable_code_beyond_this_function":"yes","latent_cognitive_equivalent":"x","attractors":["a",2]}`,
			wantInvalid: []string{"function", "executable_code_beyond_this_function", "attractors"},
		},
		{
			name:        "null field",
			content:     `{"repository":"demo","function":"f","executable_code_beyond_this_function":true,"latent_cognitive_equivalent":null,"attractors":[]}`,
			wantMissing: []string{"latent_cognitive_equivalent"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFSStore(fstest.MapFS{"demo-core-logic.json": file(tt.content)})
			_, err := store.Load(context.Background(), "demo")
			if !IsMalformed(err) {
				t.Fatalf("err = %v, want Malformed", err)
			}
			var e *Error
			if !asError(err, &e) {
				t.Fatalf("err %T is not *Error", err)
			}
			if e.Name() != "demo" {
				t.Errorf("Name = %q, want demo", e.Name())
			}
			if diff := cmp.Diff(tt.wantMissing, e.Missing()); diff != "" {
				t.Errorf("Missing (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantInvalid, e.Invalid()); diff != "" {
				t.Errorf("Invalid (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_EmptyAttractors(t *testing.T) {
	d, err := Decode("demo", []byte(`{"repository":"demo","function":"f","executable_code_beyond_this_function":false,"latent_cognitive_equivalent":"x","attractors":[],"extra":1}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Attractors == nil || len(d.Attractors) != 0 {
		t.Errorf("Attractors = %#v, want empty non-nil slice", d.Attractors)
	}
}

// Verify FSStore satisfies the Store interface at compile time.
var _ Store = (*FSStore)(nil)
