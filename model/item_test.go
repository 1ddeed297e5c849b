package model

import "testing"

func TestBuilderSynthesizesAnonymousName(t *testing.T) {
	it := NewBuilder("main.go", "go").Kind(KindFunction).Build()

	if it.Name != "<anonymous_function>" {
		t.Errorf("expected synthesized name, got %q", it.Name)
	}
}

func TestBuilderDerivesID(t *testing.T) {
	it := NewBuilder("main.go", "go").
		Kind(KindFunction).
		Name("greet").
		Range(Range{StartByte: 10, EndByte: 40}).
		Build()

	if it.ID == "" {
		t.Fatal("expected non-empty id")
	}

	again := NewBuilder("main.go", "go").
		Kind(KindFunction).
		Name("greet").
		Range(Range{StartByte: 10, EndByte: 40}).
		Build()

	if it.ID != again.ID {
		t.Errorf("expected deterministic id, got %q and %q", it.ID, again.ID)
	}
}

func TestBuilderIDDependsOnStartByte(t *testing.T) {
	a := NewBuilder("main.go", "go").Kind(KindFunction).Name("greet").
		Range(Range{StartByte: 10, EndByte: 40}).Build()
	b := NewBuilder("main.go", "go").Kind(KindFunction).Name("greet").
		Range(Range{StartByte: 11, EndByte: 41}).Build()

	if a.ID == b.ID {
		t.Errorf("expected different ids for different start bytes, both were %q", a.ID)
	}
}

func TestBuilderIDPrefersQualifiedName(t *testing.T) {
	a := NewBuilder("main.go", "go").Kind(KindMethod).Name("Start").
		QualifiedName("Server.Start").Range(Range{StartByte: 5, EndByte: 20}).Build()
	b := NewBuilder("main.go", "go").Kind(KindMethod).Name("Start").
		QualifiedName("Client.Start").Range(Range{StartByte: 5, EndByte: 20}).Build()

	if a.ID == b.ID {
		t.Errorf("expected qualified_name to distinguish ids, both were %q", a.ID)
	}
}

func TestBuilderDefaultsVisibilityUnspecified(t *testing.T) {
	it := NewBuilder("main.go", "go").Kind(KindFunction).Name("f").Build()

	if it.Visibility != Unspecified {
		t.Errorf("expected Unspecified visibility by default, got %q", it.Visibility)
	}
}

func TestRangeEmpty(t *testing.T) {
	var r Range
	if !r.Empty() {
		t.Error("expected zero-value range to be empty")
	}

	r.EndByte = 5
	if r.Empty() {
		t.Error("expected populated range to not be empty")
	}
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want uint32
	}{
		{"normal", Range{StartByte: 10, EndByte: 30}, 20},
		{"empty", Range{StartByte: 10, EndByte: 10}, 0},
		{"inverted", Range{StartByte: 30, EndByte: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}
