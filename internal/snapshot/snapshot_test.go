package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"hostlink/internal/diag"
	"hostlink/internal/host"
	"hostlink/internal/namespace"
)

type flatType struct {
	full string
}

func (t *flatType) Name() string {
	if i := strings.LastIndexByte(t.full, '.'); i >= 0 {
		return t.full[i+1:]
	}
	return t.full
}
func (t *flatType) FullName() string          { return t.full }
func (t *flatType) Members(string) host.Group { return nil }

type flatModule struct {
	name  string
	types []host.Type
}

func (m *flatModule) Name() string       { return m.name }
func (m *flatModule) Types() []host.Type { return m.types }

func scannedTop(t *testing.T) *namespace.Top {
	t.Helper()
	top := namespace.NewTop(namespace.Options{})
	top.LoadModule(&flatModule{name: "geo", types: []host.Type{
		&flatType{full: "Geo.Point"},
		&flatType{full: "Geo.Shapes.Rect"},
	}})
	// Capture reflects only what a lookup already materialized.
	if _, ok := top.Root().TryGetPackage("Geo"); !ok {
		t.Fatalf("scan failed")
	}
	return top
}

func TestCaptureWalksMaterializedTree(t *testing.T) {
	p := Capture(scannedTop(t))

	if p.Schema != schemaVersion {
		t.Fatalf("schema = %d", p.Schema)
	}
	if len(p.Modules) != 1 || p.Modules[0] != "geo" {
		t.Fatalf("modules = %v", p.Modules)
	}
	byPath := make(map[string]Package)
	for _, pkg := range p.Packages {
		byPath[pkg.Path] = pkg
	}
	if int(p.NodeCount) != len(p.Packages) {
		t.Fatalf("NodeCount %d != %d packages", p.NodeCount, len(p.Packages))
	}
	geo, ok := byPath["Geo"]
	if !ok {
		t.Fatalf("Geo package missing: %v", p.Packages)
	}
	if len(geo.Children) != 1 || geo.Children[0] != "Shapes" {
		t.Fatalf("Geo children = %v", geo.Children)
	}
	if len(geo.Types) != 1 || geo.Types[0] != "Point" {
		t.Fatalf("Geo types = %v", geo.Types)
	}
	shapes, ok := byPath["Geo.Shapes"]
	if !ok || len(shapes.Types) != 1 || shapes.Types[0] != "Rect" {
		t.Fatalf("Geo.Shapes = %+v", shapes)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	p := Capture(scannedTop(t))

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.NodeCount != p.NodeCount || len(got.Packages) != len(p.Packages) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, p)
	}
}

func TestReadRejectsStaleSchema(t *testing.T) {
	stale := &Payload{Schema: schemaVersion + 1}
	var buf bytes.Buffer
	if err := stale.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, err := Read(&buf)
	if diag.CodeOf(err) != diag.ToolSnapshotStale {
		t.Fatalf("expected stale-schema error, got %v", err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("hostlink-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	if _, ok, err := cache.Get("tree"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	p := Capture(scannedTop(t))
	if err := cache.Put("tree", p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get("tree")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.NodeCount != p.NodeCount {
		t.Fatalf("NodeCount %d != %d", got.NodeCount, p.NodeCount)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	if err := cache.Put("tree", &Payload{}); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	if _, ok, err := cache.Get("tree"); err != nil || ok {
		t.Fatalf("nil Get: ok=%v err=%v", ok, err)
	}
}
