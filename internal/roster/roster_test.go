package roster

import "testing"

func TestDisplayName(t *testing.T) {
	r := New([]Employee{
		{ID: "okan", Name: "Okan", Department: "Engineering"},
	})

	if got := r.DisplayName("okan"); got != "Okan" {
		t.Fatalf("known ID should render the name, got %q", got)
	}
	if got := r.DisplayName("ghost"); got != "ghost" {
		t.Fatalf("unknown ID should fall back to the raw ID, got %q", got)
	}
}

func TestByID(t *testing.T) {
	r := New(Default())

	e, ok := r.ByID(Default()[0].ID)
	if !ok {
		t.Fatal("default roster should resolve its own IDs")
	}
	if e.Name == "" {
		t.Fatal("resolved employee should carry a name")
	}

	if _, ok := r.ByID("nope"); ok {
		t.Fatal("unknown ID should not resolve")
	}
}
