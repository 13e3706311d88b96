package language

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	for _, in := range []string{"EN", "en", " zh "} {
		if _, err := Parse(in); err != nil {
			t.Fatalf("expected %q to parse: %v", in, err)
		}
	}
	if _, err := Parse("fr"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func TestNextCycles(t *testing.T) {
	if EN.Next() != ZH || ZH.Next() != EN {
		t.Fatalf("unexpected cycle: %s %s", EN.Next(), ZH.Next())
	}
	if Code("XX").Next() != Default {
		t.Fatalf("expected unknown code to reset to default")
	}
}
