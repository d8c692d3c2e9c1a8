package namespace

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"hostlink/internal/host"
	"hostlink/internal/member"
)

type scanType struct {
	full  string
	arity int
}

func (t *scanType) Name() string {
	if i := strings.LastIndexByte(t.full, '.'); i >= 0 {
		return t.full[i+1:]
	}
	return t.full
}
func (t *scanType) FullName() string          { return t.full }
func (t *scanType) Members(string) host.Group { return nil }
func (t *scanType) GenericArity() int         { return t.arity }

type scanModule struct {
	name  string
	types []host.Type
	scans atomic.Int32
}

func (m *scanModule) Name() string { return m.name }

func (m *scanModule) Types() []host.Type {
	m.scans.Add(1)
	return m.types
}

func newModule(name string, fullNames ...string) *scanModule {
	m := &scanModule{name: name}
	for _, fn := range fullNames {
		m.types = append(m.types, &scanType{full: fn})
	}
	return m
}

func TestLoadModuleRejectsDuplicates(t *testing.T) {
	top := NewTop(Options{})
	var notified int
	top.Subscribe(func(host.Module) { notified++ })

	m := newModule("m", "A.B.C")
	if !top.LoadModule(m) {
		t.Fatalf("first load must succeed")
	}
	if top.LoadModule(newModule("m", "A.B.D")) {
		t.Fatalf("duplicate name must be rejected")
	}
	if notified != 1 {
		t.Fatalf("expected exactly one notification, got %d", notified)
	}

	// The rejected module must not trigger a rescan of anything.
	top.Root().TryGetPackageAny("A")
	if got := m.scans.Load(); got != 1 {
		t.Fatalf("module scanned %d times", got)
	}
}

func TestNotificationObservesCommittedRegistry(t *testing.T) {
	top := NewTop(Options{})
	var seen []string
	top.Subscribe(func(host.Module) {
		seen = top.Modules()
	})
	top.LoadModule(newModule("m", "A.X"))
	if len(seen) != 1 || seen[0] != "m" {
		t.Fatalf("subscriber observed registry %v", seen)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	top := NewTop(Options{})
	var count int
	token := top.Subscribe(func(host.Module) { count++ })
	top.LoadModule(newModule("one", "A.X"))
	top.Unsubscribe(token)
	top.LoadModule(newModule("two", "B.Y"))
	if count != 1 {
		t.Fatalf("expected one delivery, got %d", count)
	}
}

func TestScanMakesTypesReachableByDottedPath(t *testing.T) {
	top := NewTop(Options{})
	top.LoadModule(newModule("m", "A.B.C", "A.B.D", "A.E"))

	a, ok := top.Root().TryGetPackage("A")
	if !ok {
		t.Fatalf("package A absent")
	}
	b, ok := a.TryGetPackage("B")
	if !ok {
		t.Fatalf("package A.B absent")
	}
	c, ok := b.TryGetPackageAny("C")
	if !ok {
		t.Fatalf("type A.B.C absent")
	}
	if _, isType := c.(*member.TypeTracker); !isType {
		t.Fatalf("expected type tracker, got %T", c)
	}
	if _, ok := a.TryGetPackageAny("E"); !ok {
		t.Fatalf("type A.E absent")
	}
	if _, ok := b.TryGetPackage("C"); ok {
		t.Fatalf("TryGetPackage must not return contained types")
	}
}

func TestLazyLookupSkipsDiscovery(t *testing.T) {
	top := NewTop(Options{})
	m := newModule("m", "A.B")
	top.LoadModule(m)

	if _, ok := top.Root().TryGetPackageLazy("A"); ok {
		t.Fatalf("lazy lookup must not trigger the scan")
	}
	if got := m.scans.Load(); got != 0 {
		t.Fatalf("lazy lookup scanned modules %d times", got)
	}

	if _, ok := top.Root().TryGetPackage("A"); !ok {
		t.Fatalf("eager lookup failed")
	}
	if _, ok := top.Root().TryGetPackageLazy("A"); !ok {
		t.Fatalf("lazy lookup should see materialized packages")
	}
}

func TestIncrementalScanAfterLoad(t *testing.T) {
	top := NewTop(Options{})
	first := newModule("first", "A.One")
	top.LoadModule(first)
	if _, ok := top.Root().TryGetPackage("A"); !ok {
		t.Fatalf("A absent")
	}

	second := newModule("second", "A.Two", "B.Three")
	top.LoadModule(second)
	if _, ok := top.Root().TryGetPackage("B"); !ok {
		t.Fatalf("B absent after incremental scan")
	}
	a, _ := top.Root().TryGetPackage("A")
	if _, ok := a.TryGetPackageAny("Two"); !ok {
		t.Fatalf("A.Two absent after incremental scan")
	}

	if first.scans.Load() != 1 {
		t.Fatalf("first module rescanned: %d", first.scans.Load())
	}
	if second.scans.Load() != 1 {
		t.Fatalf("second module scanned %d times", second.scans.Load())
	}
}

func TestBootstrapRegistersBuiltinsOnce(t *testing.T) {
	builtin := newModule("builtin", "System.Text")
	top := NewTop(Options{Builtins: []host.Module{builtin}})

	if top.Initialized() {
		t.Fatalf("tracker must start uninitialized")
	}
	if _, ok := top.Root().TryGetPackage("System"); !ok {
		t.Fatalf("builtin namespace absent after first lookup")
	}
	if !top.Initialized() {
		t.Fatalf("first lookup must initialize")
	}

	// Further lookups neither re-register nor re-scan the builtins.
	top.Root().TryGetPackageAny("System")
	if got := builtin.scans.Load(); got != 1 {
		t.Fatalf("builtin scanned %d times", got)
	}
	if mods := top.Modules(); len(mods) != 1 || mods[0] != "builtin" {
		t.Fatalf("unexpected registry: %v", mods)
	}
}

func TestConcurrentFirstLookup(t *testing.T) {
	builtin := newModule("builtin", "System.Text")
	user := newModule("user", "App.Main")
	top := NewTop(Options{Builtins: []host.Module{builtin}})
	top.LoadModule(user)

	var g errgroup.Group
	for n := 0; n < 16; n++ {
		g.Go(func() error {
			top.Root().TryGetPackageAny("System")
			top.Root().TryGetPackageAny("App")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("lookup goroutine failed: %v", err)
	}

	if !top.Initialized() {
		t.Fatalf("tracker must be initialized after concurrent lookups")
	}
	if got := builtin.scans.Load(); got != 1 {
		t.Fatalf("builtin scanned %d times", got)
	}
	if got := user.scans.Load(); got != 1 {
		t.Fatalf("user module scanned %d times", got)
	}
	if mods := top.Modules(); len(mods) != 2 {
		t.Fatalf("unexpected registry: %v", mods)
	}
}

func TestAritySiblingsFoldIntoTypeGroup(t *testing.T) {
	top := NewTop(Options{})
	top.LoadModule(&scanModule{name: "m", types: []host.Type{
		&scanType{full: "Coll.List", arity: 0},
		&scanType{full: "Coll.List", arity: 1},
	}})

	coll, ok := top.Root().TryGetPackage("Coll")
	if !ok {
		t.Fatalf("Coll absent")
	}
	tr, ok := coll.TryGetPackageAny("List")
	if !ok {
		t.Fatalf("List absent")
	}
	group, isGroup := tr.(*member.TypeGroupTracker)
	if !isGroup {
		t.Fatalf("expected type group tracker, got %T", tr)
	}
	if _, ok := group.ByArity(0); !ok {
		t.Fatalf("arity 0 missing from family")
	}
	if _, ok := group.ByArity(1); !ok {
		t.Fatalf("arity 1 missing from family")
	}
}

func TestTypeGroupReadsDuringIncrementalScans(t *testing.T) {
	top := NewTop(Options{})
	top.LoadModule(&scanModule{name: "base", types: []host.Type{
		&scanType{full: "Coll.List", arity: 0},
		&scanType{full: "Coll.List", arity: 1},
	}})
	coll, ok := top.Root().TryGetPackage("Coll")
	if !ok {
		t.Fatalf("Coll absent")
	}
	tr, ok := coll.TryGetPackageAny("List")
	if !ok {
		t.Fatalf("List absent")
	}
	group := tr.(*member.TypeGroupTracker)

	// The tracker stays live while later modules fold more arities into its
	// family.
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			top.LoadModule(&scanModule{
				name:  fmt.Sprintf("extra-%d", i),
				types: []host.Type{&scanType{full: "Coll.List", arity: i + 2}},
			})
			top.Root().TryGetPackageAny("Coll")
			return nil
		})
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				if _, ok := group.ByArity(0); !ok {
					return errors.New("arity 0 vanished")
				}
				group.Arities()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent access: %v", err)
	}
	for arity := 0; arity <= 9; arity++ {
		if _, ok := group.ByArity(arity); !ok {
			t.Fatalf("arity %d missing after scans", arity)
		}
	}
}

func TestSegmentsAreNormalized(t *testing.T) {
	// "é" can arrive decomposed (e + combining acute) or precomposed.
	decomposed := "Cafe\u0301"
	precomposed := "Caf\u00e9"
	top := NewTop(Options{})
	top.LoadModule(newModule("m", decomposed+".Menu"))

	if _, ok := top.Root().TryGetPackage(precomposed); !ok {
		t.Fatalf("precomposed lookup failed against decomposed registration")
	}
}
