package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eborriello/genfigs/pkg/cache"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure/sink"
	"github.com/eborriello/genfigs/pkg/observability"
)

const fitnessTable = "fitness\n999\n1\n2\n3\n"

func testCLI(cfg Config) *CLI {
	c := New(&bytes.Buffer{}, LogInfo)
	c.cfg = cfg
	return c
}

func TestJobPrecedence(t *testing.T) {
	cfg := Config{
		DataDir: "tables",
		OutDir:  "out",
		Format:  "svg",
		DPI:     150,
		Figures: map[string]FigureConfig{
			"3a": {Input: "runs/a.txt", Output: "paper/a.pdf"},
		},
	}
	tests := []struct {
		name       string
		id         string
		flags      jobFlags
		wantInput  string
		wantOutput string
		wantFormat sink.Format
		wantDPI    int
	}{
		{"figure override keeps its extension", "3a", jobFlags{}, "runs/a.txt", "paper/a.pdf", sink.PDF, 150},
		{"config format for bare output", "3a", jobFlags{output: "a"}, "runs/a.txt", "a", sink.SVG, 150},
		{"flags win", "3a", jobFlags{input: "x.txt", output: "y.png", format: "png", dpi: 300}, "x.txt", "y.png", sink.PNG, 300},
		{"dirs rebase defaults", "4", jobFlags{}, filepath.Join("tables", "figure_4.csv"), filepath.Join("out", "figure_4.svg"), sink.SVG, 150},
		{"format flag renames output", "4", jobFlags{format: "jpeg"}, filepath.Join("tables", "figure_4.csv"), filepath.Join("out", "figure_4.jpg"), sink.JPEG, 150},
		{"no input for literal figure", "5", jobFlags{}, "", filepath.Join("out", "figure_5.svg"), sink.SVG, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := testCLI(cfg).job(tt.id, tt.flags)
			if err != nil {
				t.Fatal(err)
			}
			if job.Input != tt.wantInput {
				t.Errorf("Input = %q, want %q", job.Input, tt.wantInput)
			}
			if job.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", job.Output, tt.wantOutput)
			}
			if job.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", job.Format, tt.wantFormat)
			}
			if job.DPI != tt.wantDPI {
				t.Errorf("DPI = %d, want %d", job.DPI, tt.wantDPI)
			}
		})
	}
}

func TestJobErrors(t *testing.T) {
	c := testCLI(Config{})
	if _, err := c.job("9", jobFlags{}); !errors.Is(err, errors.ErrCodeFigureNotFound) {
		t.Errorf("unknown figure: error = %v", err)
	}
	if _, err := c.job("1", jobFlags{format: "eps"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: error = %v", err)
	}
}

func TestRenderFormatContradictsOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	err := execute(t, "--config", writeConfig(t, ""), "render", "5", "-o", out, "-f", "png", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("%s was written", out)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"render", "all", "list", "pick", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

// execute runs the CLI with args and returns its error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	defer observability.Reset()
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fit.txt")
	if err := os.WriteFile(input, []byte(fitnessTable), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "fig.png")

	if err := execute(t, "render", "fig3A", "-i", input, "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandBadInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fit.txt")
	if err := os.WriteFile(input, []byte("fitness\n999\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "fig.pdf")

	err := execute(t, "render", "3a", "-i", input, "-o", out, "--no-cache")
	if !errors.IsInput(err) {
		t.Fatalf("error = %v, want input error", err)
	}
	if !strings.Contains(err.Error(), input) {
		t.Errorf("error %q does not name the input", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output exists after failed render")
	}
}

func TestAllContinuesAfterFailure(t *testing.T) {
	dataDir, outDir := t.TempDir(), t.TempDir()
	for _, name := range []string{"figure_3A.txt", "figure_3B.txt", "figure_3E.txt"} {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(fitnessTable), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	err := execute(t, "all", "--data-dir", dataDir, "--out-dir", outDir, "--jobs", "3", "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "8 of 12 figures failed") {
		t.Fatalf("error = %v, want 8 of 12 failed", err)
	}
	for _, name := range []string{"figure_3a.pdf", "figure_3b.pdf", "figure_3e.pdf", "figure_5.pdf"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "figure_4.pdf")); !os.IsNotExist(err) {
		t.Error("figure_4.pdf written without input")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfgPath := filepath.Join(dir, "genfigs.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "--config", cfgPath, "render", "5", "-o", filepath.Join(dir, "5.pdf")); err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(filepath.Join(cacheDir, "*", "*.bin"))
	if len(matches) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(matches))
	}

	if err := execute(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	matches, _ = filepath.Glob(filepath.Join(fc.Dir(), "*", "*.bin"))
	if len(matches) != 0 {
		t.Errorf("cache entries after clear = %d", len(matches))
	}
	if err := execute(t, "--config", cfgPath, "cache", "path"); err != nil {
		t.Fatal(err)
	}
}

func TestCacheDirDefault(t *testing.T) {
	dir, err := testCLI(Config{}).cacheDir()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, want .../%s", dir, appName)
	}
	if got, _ := testCLI(Config{Cache: CacheConfig{Dir: "/x"}}).cacheDir(); got != "/x" {
		t.Errorf("configured cacheDir() = %q", got)
	}
}

func TestNewCacheFallsBack(t *testing.T) {
	c := testCLI(Config{Cache: CacheConfig{Disabled: true}})
	if _, ok := c.newCache(context.Background(), false).(cache.NullCache); !ok {
		t.Error("disabled cache should be a NullCache")
	}

	dir := t.TempDir()
	c = testCLI(Config{Cache: CacheConfig{RedisURL: "redis://127.0.0.1:1/0", Dir: dir}})
	fc, ok := c.newCache(context.Background(), false).(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("unreachable redis should fall back to the file cache in %s", dir)
	}
}

func TestVersionFlag(t *testing.T) {
	if err := execute(t, "--version"); err != nil {
		t.Fatal(err)
	}
}
