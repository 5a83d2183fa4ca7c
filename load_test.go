package varconf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.cfg", []byte("var n 3;\ncount = {n}\n"))

	doc, err := NewLoader(nil).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if got := mustGet(t, doc, "count"); got != Integer(3) {
		t.Errorf("Expected count = 3, got %#v", got)
	}
}

func TestLoader_WithEncoding(t *testing.T) {
	dir := t.TempDir()
	// "привет" in windows-1251
	content := append([]byte(`greeting = "`), 0xEF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2, '"')
	path := writeFile(t, dir, "ru.cfg", content)

	loader, err := NewLoader(nil).WithEncoding("windows-1251")
	if err != nil {
		t.Fatalf("WithEncoding() failed: %v", err)
	}
	doc, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if got := mustGet(t, doc, "greeting"); got != String("привет") {
		t.Errorf("Expected decoded greeting, got %#v", got)
	}
}

func TestLoader_UnknownEncoding(t *testing.T) {
	if _, err := NewLoader(nil).WithEncoding("no-such-encoding"); err == nil {
		t.Error("Expected error for unknown encoding")
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader(nil).LoadFile(filepath.Join(dir, "missing.cfg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	path := writeFile(t, dir, "bad.cfg", []byte("a = 1\nb = {nope}\n"))
	_, err = NewLoader(nil).LoadFile(path)
	if !errors.Is(err, ErrUnknownConstant) {
		t.Errorf("Expected ErrUnknownConstant, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), path+": line 2:") {
		t.Errorf("Expected file and line in message, got %q", err.Error())
	}
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.cfg", []byte("name = app\nhosts = '(a)\n"))
	prod := writeFile(t, dir, "prod.cfg", []byte("hosts = '(b c)\nreplicas = 3\n"))

	doc, err := NewLoader(nil).WithMerge(MergeOptions{Lists: ListAppend}).LoadFiles(base, prod)
	if err != nil {
		t.Fatalf("LoadFiles() failed: %v", err)
	}

	expected := mustParse(t, "name = app\nhosts = '(a b c)\nreplicas = 3")
	if !Equal(&doc.Table, &expected.Table) {
		t.Errorf("Expected %v, got %v", ToAny(&expected.Table), ToAny(&doc.Table))
	}

	if _, err := NewLoader(nil).LoadFiles(); err == nil {
		t.Error("Expected error for no input files")
	}
}
