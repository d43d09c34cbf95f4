package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eborriello/genfigs/pkg/catalog"
)

func TestCatalogRows(t *testing.T) {
	rows := catalogRows(catalog.All())
	if len(rows) != len(catalog.IDs()) {
		t.Fatalf("rows = %d, want %d", len(rows), len(catalog.IDs()))
	}
	byID := make(map[string][]string)
	for _, r := range rows {
		byID[r[0]] = r
	}
	if got := byID["4"][2]; got != "scatter" {
		t.Errorf("figure 4 kind = %q, want scatter", got)
	}
	if got := byID["3d"][2]; got != "3d" {
		t.Errorf("figure 3D kind = %q, want 3d", got)
	}
	if got := byID["5"][3]; got != "—" {
		t.Errorf("figure 5 input = %q, want —", got)
	}
	if !strings.Contains(byID["5"][2], "error bars") {
		t.Errorf("figure 5 kind = %q", byID["5"][2])
	}
}

func TestCatalogTableRenders(t *testing.T) {
	out := catalogTable(catalog.All()).Render()
	for _, want := range []string{"Figure 3A", "figure_8_rep.pdf", "Kind"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q", want)
		}
	}
}

func TestCompleteFigureIDs(t *testing.T) {
	got, _ := completeFigureIDs(nil, nil, "3")
	if len(got) != 5 {
		t.Errorf("completions for 3 = %v, want 5", got)
	}
	if got, _ := completeFigureIDs(nil, []string{"1"}, ""); len(got) != 0 {
		t.Errorf("second argument completions = %v", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"p", "pdf,png"},
		{"J", "jpg"},
		{"", "pdf,svg,png,jpg,tiff"},
		{"eps", ""},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.prefix)
		if strings.Join(got, ",") != tt.want {
			t.Errorf("completeFormats(%q) = %v, want %s", tt.prefix, got, tt.want)
		}
	}
}

func TestCompletionScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"--config", writeConfig(t, ""), "completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "genfigs") {
				t.Errorf("%s script does not mention genfigs", shell)
			}
		})
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
