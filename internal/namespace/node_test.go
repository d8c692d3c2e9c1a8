package namespace

import "testing"

func TestSplitPath(t *testing.T) {
	tests := []struct {
		full     string
		segments []string
		simple   string
	}{
		{"Point", nil, "Point"},
		{"Geo.Point", []string{"Geo"}, "Point"},
		{"A.B.C.D", []string{"A", "B", "C"}, "D"},
	}
	for _, tt := range tests {
		segments, simple := SplitPath(tt.full)
		if simple != tt.simple || len(segments) != len(tt.segments) {
			t.Fatalf("SplitPath(%q) = %v, %q", tt.full, segments, simple)
		}
		for i := range segments {
			if segments[i] != tt.segments[i] {
				t.Fatalf("SplitPath(%q) segment %d = %q", tt.full, i, segments[i])
			}
		}
	}
}

func TestChildCreatesOnDemand(t *testing.T) {
	nodes, root := NewNodes(0)
	if nodes.Len() != 1 {
		t.Fatalf("fresh arena has %d nodes", nodes.Len())
	}

	a := nodes.Child(root, "A")
	if !a.IsValid() {
		t.Fatalf("child not allocated")
	}
	if again := nodes.Child(root, "A"); again != a {
		t.Fatalf("repeated Child allocated a new node: %d vs %d", again, a)
	}
	b := nodes.Child(a, "B")
	if got := nodes.Get(b).Path; got != "A.B" {
		t.Fatalf("path = %q", got)
	}
	if got := nodes.Get(b).Segment; got != "B" {
		t.Fatalf("segment = %q", got)
	}
	if nodes.Len() != 3 {
		t.Fatalf("arena has %d nodes", nodes.Len())
	}
}

func TestChildOfInvalidParent(t *testing.T) {
	nodes, _ := NewNodes(0)
	if id := nodes.Child(NoNodeID, "A"); id.IsValid() {
		t.Fatalf("invalid parent produced node %d", id)
	}
	if nodes.Get(NoNodeID) != nil {
		t.Fatalf("sentinel must not resolve")
	}
	if nodes.Get(NodeID(99)) != nil {
		t.Fatalf("out-of-range ID must not resolve")
	}
}

func TestNormalizeFoldsEquivalentForms(t *testing.T) {
	decomposed := "Café"
	precomposed := "Café"
	if Normalize(decomposed) != Normalize(precomposed) {
		t.Fatalf("NFC forms differ")
	}
	// Already-normalized strings come back unchanged.
	if Normalize("plain") != "plain" {
		t.Fatalf("ASCII changed under normalization")
	}

	nodes, root := NewNodes(0)
	a := nodes.Child(root, decomposed)
	if b := nodes.Child(root, precomposed); b != a {
		t.Fatalf("equivalent segments split the tree: %d vs %d", a, b)
	}
}
