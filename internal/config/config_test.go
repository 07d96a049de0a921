package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/textwash/internal/engine/clean"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textwash.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultHasBuiltinPresets(t *testing.T) {
	s := Default()

	for _, name := range []string{clean.PresetChatGPT, clean.PresetAllInvisible} {
		cfg, ok := s.Preset(name)
		if !ok {
			t.Errorf("built-in preset %q missing", name)
			continue
		}
		if cfg.Pattern == "" {
			t.Errorf("preset %q should carry a pattern", name)
		}
	}

	if s.Defaults.Enabled() {
		t.Error("default settings should not enable any cleaning option")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(s.PresetNames()) != 2 {
		t.Errorf("expected 2 built-in presets, got %v", s.PresetNames())
	}
}

func TestLoadDefaultsAndPresets(t *testing.T) {
	path := writeConfig(t, `
[defaults]
remove_extra_spaces = true
trim_lines = true
tab_width = 4

[[preset]]
name = "Dashes"
pattern = '[\x{2014}\x{2013}]'
replacement = "-"
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Defaults.RemoveExtraSpaces || !s.Defaults.TrimLines {
		t.Errorf("defaults not applied: %+v", s.Defaults)
	}
	if s.Defaults.TabWidth != 4 {
		t.Errorf("expected tab width 4, got %d", s.Defaults.TabWidth)
	}

	cfg, ok := s.Preset("Dashes")
	if !ok {
		t.Fatal("file preset missing")
	}
	if cfg.Replacement != "-" {
		t.Errorf("expected replacement %q, got %q", "-", cfg.Replacement)
	}
	// File presets layer on the defaults.
	if !cfg.RemoveExtraSpaces {
		t.Error("preset config should include the defaults")
	}
}

func TestFilePresetOverridesBuiltin(t *testing.T) {
	path := writeConfig(t, `
[[preset]]
name = "ChatGPT Unicode Watermarks"
pattern = '\x{200B}'
replacement = ""
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, ok := s.Preset(clean.PresetChatGPT)
	if !ok {
		t.Fatal("overridden preset missing")
	}
	if cfg.Pattern != `\x{200B}` {
		t.Errorf("file preset should override built-in, got %q", cfg.Pattern)
	}
	if len(s.PresetNames()) != 2 {
		t.Errorf("override should not duplicate the name: %v", s.PresetNames())
	}
}

func TestLoadRejectsInvalidPresetPattern(t *testing.T) {
	path := writeConfig(t, `
[[preset]]
name = "Broken"
pattern = '[unclosed'
`)

	if _, err := Load(path); !errors.Is(err, clean.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestLoadRejectsInvalidTabWidth(t *testing.T) {
	path := writeConfig(t, `
[defaults]
tab_width = 5
`)

	if _, err := Load(path); !errors.Is(err, clean.ErrInvalidTabWidth) {
		t.Errorf("expected ErrInvalidTabWidth, got %v", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[defaults`)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRejectsUnnamedPreset(t *testing.T) {
	path := writeConfig(t, `
[[preset]]
pattern = 'x'
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unnamed preset")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, `
[defaults]
trim_lines = true
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan *Settings, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(s *Settings) {
			select {
			case reloaded <- s:
			default:
			}
		}, nil)
	}()

	// Give the watcher a moment to install before writing.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[defaults]\nremove_extra_spaces = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-reloaded:
		if !s.Defaults.RemoveExtraSpaces {
			t.Errorf("reloaded settings stale: %+v", s.Defaults)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWatchReportsBadReload(t *testing.T) {
	path := writeConfig(t, `[defaults]`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errs := make(chan error, 1)
	go func() {
		_ = Watch(ctx, path, func(*Settings) {}, func(err error) {
			select {
			case errs <- err:
			default:
			}
		})
	}()

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected a parse error")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for error report")
	}
}
