package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Backend != config.DefaultBackend {
		t.Errorf("expected backend %q, got %q", config.DefaultBackend, cfg.Backend)
	}
	if cfg.Renderer != config.DefaultRenderer {
		t.Errorf("expected renderer %q, got %q", config.DefaultRenderer, cfg.Renderer)
	}
	if cfg.Color != config.ColorAuto {
		t.Errorf("expected color %q, got %q", config.ColorAuto, cfg.Color)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, ".mdtree.yml", `
backend: commonmark
jobs: 3
format:
  detect_lang: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Backend != "commonmark" {
		t.Errorf("expected backend commonmark, got %q", result.Config.Backend)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if !result.Config.Format.DetectLang {
		t.Error("expected format.detect_lang to be set")
	}
	if result.Config.Renderer != config.DefaultRenderer {
		t.Errorf("unset renderer should keep the default, got %q", result.Config.Renderer)
	}
	if !slices.Equal(result.LoadedFrom, []string{configPath}) {
		t.Errorf("expected LoadedFrom [%s], got %v", configPath, result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFromParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, root, ".mdtree.yaml", "renderer: text\n")

	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Renderer != "text" {
		t.Errorf("expected renderer text from parent config, got %q", result.Config.Renderer)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdtree.yml", "backend: commonmark\nrenderer: json\n")
	explicit := writeConfig(t, t.TempDir(), "custom.yml", "renderer: yaml\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Renderer != "yaml" {
		t.Errorf("explicit config should win, got renderer %q", result.Config.Renderer)
	}
	if result.Config.Backend != "commonmark" {
		t.Errorf("project value should survive, got backend %q", result.Config.Backend)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdtree.yml", "backend: commonmark\njobs: 2\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Backend: "gfm",
		Jobs:    8,
		Text:    config.TextConfig{StripPunctuation: true},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Backend != "gfm" {
		t.Errorf("expected backend gfm (CLI override), got %q", result.Config.Backend)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Text.StripPunctuation {
		t.Error("expected text.strip_punctuation true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "backend", content: "backend: asciidoc\n", field: "backend"},
		{name: "renderer", content: "renderer: html\n", field: "renderer"},
		{name: "color", content: "color: sometimes\n", field: "color"},
		{name: "jobs", content: "jobs: -1\n", field: "jobs"},
		{name: "ignore", content: "ignore: ['[']\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := writeConfig(t, tmpDir, ".mdtree.yml", tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, verr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdtree.yml", "backend: [gfm\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdtree.yml", "extensions: [md]\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "does not start with a dot") {
		t.Errorf("expected extension warning, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdtree.yml", "backend: commonmark\nrenderer: json\n")

	t.Setenv("MDTREE_BACKEND", "gfm")
	t.Setenv("MDTREE_JOBS", "5")
	t.Setenv("MDTREE_IGNORE", " a/** , ,b.md ")
	t.Setenv("MDTREE_DETECT_LANG", "true")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 7}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Backend != "gfm" {
		t.Errorf("env should override project config, got backend %q", cfg.Backend)
	}
	if cfg.Renderer != "json" {
		t.Errorf("project value should survive, got renderer %q", cfg.Renderer)
	}
	if cfg.Jobs != 7 {
		t.Errorf("CLI should override env, got jobs %d", cfg.Jobs)
	}
	if !slices.Equal(cfg.Ignore, []string{"a/**", "b.md"}) {
		t.Errorf("unexpected ignore list %v", cfg.Ignore)
	}
	if !cfg.Format.DetectLang {
		t.Error("expected format.detect_lang from env")
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("MDTREE_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "MDTREE_JOBS") {
		t.Fatalf("expected MDTREE_JOBS error, got %v", err)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"MDTREE_BACKEND", "MDTREE_RENDERER", "MDTREE_COLOR", "MDTREE_JOBS", "MDTREE_DETECT_LANG"} {
		if vars[name] == "" {
			t.Errorf("missing description for %s", name)
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Renderer: "text", Format: config.FormatConfig{Backup: true}},
		&config.Config{Ignore: []string{"x"}},
	)

	if merged.Backend != config.DefaultBackend || merged.Renderer != "text" {
		t.Errorf("unexpected scalars: backend %q renderer %q", merged.Backend, merged.Renderer)
	}
	if !merged.Format.Backup {
		t.Error("a switched-on flag must survive later layers")
	}
	if !slices.Equal(merged.Ignore, []string{"x"}) {
		t.Errorf("unexpected ignore list %v", merged.Ignore)
	}
	if MergeAll() != nil {
		t.Error("merging nothing should give nil")
	}
}
