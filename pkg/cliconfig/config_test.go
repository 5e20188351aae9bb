package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CLIConfig)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *CLIConfig) {},
			wantErr: "",
		},
		{
			name: "valid https with path",
			mutate: func(c *CLIConfig) {
				c.APIURL = "https://shop.example.com/api"
				c.Output = OutputJSON
				c.LogLevel = "DEBUG"
				c.LogFormat = "json"
			},
			wantErr: "",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *CLIConfig) { c.APIURL = "ftp://example.com" },
			wantErr: "must use http or https",
		},
		{
			name:    "missing host",
			mutate:  func(c *CLIConfig) { c.APIURL = "http://" },
			wantErr: "has no host",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *CLIConfig) { c.Timeout = 0 },
			wantErr: "timeout 0s is out of range",
		},
		{
			name:    "timeout too high",
			mutate:  func(c *CLIConfig) { c.Timeout = time.Hour },
			wantErr: "timeout 1h0m0s is out of range",
		},
		{
			name:    "bad output",
			mutate:  func(c *CLIConfig) { c.Output = "xml" },
			wantErr: `output "xml" is invalid`,
		},
		{
			name:    "bad log level",
			mutate:  func(c *CLIConfig) { c.LogLevel = "loud" },
			wantErr: `logLevel "loud" is invalid`,
		},
		{
			name:    "bad log format",
			mutate:  func(c *CLIConfig) { c.LogFormat = "xml" },
			wantErr: `logFormat "xml" is invalid`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
			}
		})
	}
}

func TestMergeConfig_BasicFields(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{
			APIURL:  "http://custom:9090",
			Timeout: 5 * time.Second,
		}

		MergeConfig(target, source, SourceLocal)

		if target.APIURL != "http://custom:9090" {
			t.Errorf("expected custom API URL, got %q", target.APIURL)
		}
		if target.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %s", target.Timeout)
		}
		if target.Sources[KeyAPIURL] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources[KeyAPIURL])
		}
		if target.Sources[KeyOutput] != SourceDefault {
			t.Errorf("expected output source 'default', got %q", target.Sources[KeyOutput])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{}, SourceLocal)

		if target.APIURL != DefaultAPIURL {
			t.Errorf("expected default API URL, got %q", target.APIURL)
		}
		if target.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %s", target.Timeout)
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)

		if target.APIURL != DefaultAPIURL {
			t.Errorf("expected API URL unchanged, got %q", target.APIURL)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{Output: OutputJSON}, SourceEnv)
		ApplyFlags(target, &CLIConfig{Output: OutputTable})

		if target.Output != OutputTable || target.Sources[KeyOutput] != SourceFlag {
			t.Errorf("expected flag output, got %q from %q", target.Output, target.Sources[KeyOutput])
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads yaml", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		writeFile(t, path, "apiUrl: http://shop:8000\ntimeout: 5s\noutput: json\n")

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != "http://shop:8000" || cfg.Timeout != 5*time.Second || cfg.Output != OutputJSON {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		writeFile(t, path, "")

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != "" {
			t.Errorf("expected empty config, got %+v", cfg)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		writeFile(t, path, "apiURL: http://shop:8000\n")

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		if err == nil || !strings.Contains(err.Error(), "typo.yaml") {
			t.Fatalf("expected ConfigError naming the file, got %v", err)
		}
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected *ConfigError, got %T", err)
		}
	})
}

func TestLoadAll_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvLogLevel, "")

	writeFile(t, filepath.Join(home, GlobalConfigDir, "config.yaml"),
		"apiUrl: http://global:1\ntimeout: 10s\nlogLevel: info\n")

	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".storeadminrc.yaml"), "apiUrl: http://local:2\n")
	t.Chdir(work)

	t.Setenv(EnvTimeout, "3s")

	cfg, err := LoadAll("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string][2]string{
		KeyAPIURL:   {"http://local:2", SourceLocal},
		KeyTimeout:  {"3s", SourceEnv},
		KeyLogLevel: {"info", SourceGlobal},
		KeyOutput:   {DefaultOutput, SourceDefault},
	}
	for key, w := range want {
		if got := cfg.Value(key); got != w[0] {
			t.Errorf("%s: expected %q, got %q", key, w[0], got)
		}
		if got := cfg.Sources[key]; got != w[1] {
			t.Errorf("%s: expected source %q, got %q", key, w[1], got)
		}
	}
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")

	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".storeadminrc.yaml"), "apiUrl: http://local:2\n")
	t.Chdir(work)

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "apiUrl: http://explicit:3\n")

	cfg, err := LoadAll(explicit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://explicit:3" || cfg.Sources[KeyAPIURL] != SourceFile {
		t.Errorf("expected explicit file to replace local config, got %q from %q", cfg.APIURL, cfg.Sources[KeyAPIURL])
	}
	if cfg.ConfigFile != explicit {
		t.Errorf("expected ConfigFile %q, got %q", explicit, cfg.ConfigFile)
	}

	if _, err := LoadAll(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadEnvConfig_BadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	if err := LoadEnvConfig(NewDefault()); err == nil || !strings.Contains(err.Error(), EnvTimeout) {
		t.Errorf("expected error naming %s, got %v", EnvTimeout, err)
	}
}

func TestEntries(t *testing.T) {
	cfg := NewDefault()
	cfg.Sources = nil
	entries := cfg.Entries()
	if len(entries) != len(Keys) {
		t.Fatalf("expected %d entries, got %d", len(Keys), len(entries))
	}
	if entries[0].Key != KeyAPIURL || entries[0].Value != DefaultAPIURL || entries[0].Source != SourceDefault {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Value != "30s" {
		t.Errorf("expected timeout 30s, got %q", entries[1].Value)
	}
}
