package common

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestKeysDeclarationOrder(t *testing.T) {
	keys := Keys()
	if len(keys) != int(KeyRightShift)+1 {
		t.Fatalf("len(Keys()) = %d, want %d", len(keys), KeyRightShift+1)
	}
	for i, k := range keys {
		if int(k) != i {
			t.Errorf("Keys()[%d] = %d", i, k)
		}
	}
}

// common sits under the pure shading core, so it must not pull in a
// windowing backend.
func TestCommonHasNoWindowImports(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if strings.Contains(path, "ebiten") || strings.Contains(path, "glfw") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
