package theme

import "testing"

func TestColorMapping(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		ok       bool
	}{
		{"red", Red, true},
		{"ORANGE", Yellow, true},
		{"pink", Magenta, true},
		{"grey", White, true},
		{"black", 0, true},
		{"teal", 0, false},
	}
	for _, tt := range tests {
		s, ok := Default.Color(tt.name)
		if ok != tt.ok || s.FgColor != tt.expected {
			t.Errorf("Color(%q) = (%d, %v), expected (%d, %v)", tt.name, s.FgColor, ok, tt.expected, tt.ok)
		}
	}
}

func TestByName(t *testing.T) {
	if ByName("MONO") != Mono {
		t.Error("expected mono theme")
	}
	if ByName("missing") != Default {
		t.Error("unknown names should fall back to default")
	}
}
