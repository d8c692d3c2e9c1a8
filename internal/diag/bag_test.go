package diag

import (
	"errors"
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{UnknownCode, "UNK0000"},
		{BindMissingMember, "BIND1003"},
		{NsDuplicateModule, "NS2001"},
		{ToolSnapshotStale, "TOOL3001"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Fatalf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestErrorMessageShape(t *testing.T) {
	err := Errorf(BindAccessDenied, "Geo.Point", "Hidden", "getter is not public")
	want := "BIND1004: Geo.Point.Hidden: getter is not public"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	moduleErr := Errorf(NsDuplicateModule, "geo", "", "already registered")
	if moduleErr.Error() != "NS2001: geo: already registered" {
		t.Fatalf("Error() = %q", moduleErr.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Errorf(BindWriteOnly, "T", "F", "write-only")); got != BindWriteOnly {
		t.Fatalf("CodeOf = %v", got)
	}
	if got := CodeOf(errors.New("plain")); got != UnknownCode {
		t.Fatalf("foreign error CodeOf = %v", got)
	}
	if got := CodeOf(nil); got != UnknownCode {
		t.Fatalf("nil CodeOf = %v", got)
	}
}

func TestBagLimitAndOrder(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Diagnostic{Severity: SevWarning, Code: BindMissingMember, Subject: "B", Member: "y"}) {
		t.Fatalf("first Add dropped")
	}
	if !bag.Add(Diagnostic{Severity: SevError, Code: BindAccessDenied, Subject: "A", Member: "x"}) {
		t.Fatalf("second Add dropped")
	}
	if bag.Add(Diagnostic{Code: BindWriteOnly, Subject: "C"}) {
		t.Fatalf("Add past the limit must drop")
	}
	if bag.Len() != 2 || bag.Cap() != 2 {
		t.Fatalf("Len=%d Cap=%d", bag.Len(), bag.Cap())
	}
	if !bag.HasErrors() {
		t.Fatalf("error severity not detected")
	}

	items := bag.Items()
	if items[0].Subject != "A" || items[1].Subject != "B" {
		t.Fatalf("items not sorted by subject: %v", items)
	}
}

func TestFormat(t *testing.T) {
	got := Format(Diagnostic{
		Severity: SevError,
		Code:     BindMissingMember,
		Subject:  "Geo.Point",
		Member:   "Z",
		Message:  "no such member",
	})
	want := "ERROR BIND1003 Geo.Point.Z: no such member"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}
