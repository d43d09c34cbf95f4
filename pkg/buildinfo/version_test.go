package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	fill()
	origV, origC := Version, Commit
	defer func() { Version, Commit = origV, origC }()

	tests := []struct {
		version, commit, want string
	}{
		{"v1.0.0", "none", "v1.0.0"},
		{"v1.0.0", "abc", "v1.0.0"},
		{"v1.0.0", "0123456789abcdef", "v1.0.0+0123456"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tpl := Template()
	if !strings.HasPrefix(tpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
