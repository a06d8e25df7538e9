package iconset

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/matzehuels/iconsvg/pkg/errors"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Add(mustParse(t, testSetJSON))

	icon, err := r.Lookup(Name{Prefix: "test", Name: "house-right"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if icon.Rotate != 1 || icon.Width != 24 {
		t.Errorf("Lookup() = %+v", icon)
	}

	if !r.Exists(Name{Prefix: "test", Name: "home"}) {
		t.Error("test:home should exist")
	}
	if r.Exists(Name{Prefix: "test", Name: "nope"}) {
		t.Error("test:nope should not exist")
	}

	_, err = r.Lookup(Name{Prefix: "other", Name: "home"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing set error = %v", err)
	}
	_, err = r.Lookup(Name{Prefix: "test", Name: "nope"})
	if !errors.Is(err, errors.ErrCodeIconNotFound) {
		t.Errorf("missing icon error = %v", err)
	}
}

func TestRegistryProviders(t *testing.T) {
	r := NewRegistry()
	r.Add(mustParse(t, `{"prefix":"mdi","icons":{"home":{"body":"<a/>"}}}`))
	r.Add(mustParse(t, `{"prefix":"mdi","provider":"local","icons":{"home":{"body":"<b/>"}}}`))

	a, _ := r.Lookup(Name{Prefix: "mdi", Name: "home"})
	b, _ := r.Lookup(Name{Provider: "local", Prefix: "mdi", Name: "home"})
	if a.Body != "<a/>" || b.Body != "<b/>" {
		t.Errorf("providers mixed up: %q %q", a.Body, b.Body)
	}
	if got := r.Prefixes(); !slices.Equal(got, []string{"@local:mdi", "mdi"}) {
		t.Errorf("Prefixes() = %v", got)
	}
}

func TestRegistryLaterSetWins(t *testing.T) {
	r := NewRegistry()
	r.Add(mustParse(t, `{"prefix":"p","width":24,"icons":{"a":{"body":"<old/>"},"b":{"body":"<b/>"}}}`))
	r.Add(mustParse(t, `{"prefix":"p","icons":{"a":{"body":"<new/>"}}}`))

	a, _ := r.Lookup(Name{Prefix: "p", Name: "a"})
	b, _ := r.Lookup(Name{Prefix: "p", Name: "b"})
	if a.Body != "<new/>" || a.Width != 16 {
		t.Errorf("a = %+v", a)
	}
	if b.Body != "<b/>" || b.Width != 24 {
		t.Errorf("b = %+v", b)
	}

	merged, ok := r.Set("", "p")
	if !ok {
		t.Fatal("Set() not found")
	}
	mb, _ := merged.Icon("b")
	if mb != b {
		t.Errorf("merged b = %+v, want %+v", mb, b)
	}
	ma, _ := merged.Icon("a")
	if ma != a {
		t.Errorf("merged a = %+v, want %+v", ma, a)
	}
}

func TestRegistryLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.json", `{"prefix":"a","icons":{"x":{"body":"<x/>"}}}`)
	write("b.json", `{"prefix":"b","icons":{"y":{"body":"<y/>"}}}`)
	write("notes.txt", "ignored")

	r := NewRegistry()
	n, err := r.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d sets, want 2", n)
	}
	if !r.Exists(Name{Prefix: "b", Name: "y"}) {
		t.Error("b:y should exist")
	}
}

func TestRegistryLoadFileErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"prefix":"BAD"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = r.LoadFile(bad)
	if !errors.Is(err, errors.ErrCodeInvalidIconSet) {
		t.Errorf("invalid file error = %v", err)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	r.Add(mustParse(t, testSetJSON))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				r.Add(mustParseNoT(`{"prefix":"extra","icons":{"x":{"body":"<x/>"}}}`))
				return
			}
			if _, err := r.Lookup(Name{Prefix: "test", Name: "house"}); err != nil {
				t.Errorf("Lookup: %v", err)
			}
		}()
	}
	wg.Wait()
}

func mustParseNoT(data string) *Set {
	s, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return s
}
