package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/strut/internal/component"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.Name != want.Name || cfg.Height != want.Height || cfg.Clock != want.Clock {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, want)
	}
	if cfg.Background != component.RGB(0, 0, 0) || cfg.Foreground != component.RGB(0xff, 0xff, 0xff) {
		t.Fatalf("colours = %v / %v", cfg.Background, cfg.Foreground)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "strut")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("name = \"top\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Name != "top" {
		t.Fatalf("Name = %q, want top", cfg.Name)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
name = "  main  "
output = " DP-1 "
height = 24
font_size = 11.5
background = "#102030"
foreground = "#ffffff80"
background_image = "~/bg.png"
text_yoffset = -2

[clock]
enabled = false
format = "Mon 15:04"
align = "center"
interval = "1m"

[tail]
path = "~/status"

[feed]
url = " http://127.0.0.1:9000/status "
interval = "5s"
align = "left"

[image]
path = "/tmp/logo.png"
align = "right"
fit = false
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Name != "main" || cfg.Output != "DP-1" || cfg.Height != 24 || cfg.FontSize != 11.5 || cfg.TextYOffset != -2 {
		t.Fatalf("bar fields = %+v", cfg)
	}
	if cfg.Background != component.RGB(0x10, 0x20, 0x30) {
		t.Fatalf("Background = %v", cfg.Background)
	}
	if cfg.Foreground != component.RGBA(0xff, 0xff, 0xff, 0x80) {
		t.Fatalf("Foreground = %v", cfg.Foreground)
	}
	if cfg.BackgroundImage != filepath.Join(home, "bg.png") {
		t.Fatalf("BackgroundImage = %q, want under HOME", cfg.BackgroundImage)
	}

	wantClock := Clock{Enabled: false, Format: "Mon 15:04", AltFormat: defaultClockAlt, Align: component.AlignCenter, Interval: time.Minute}
	if cfg.Clock != wantClock {
		t.Fatalf("Clock = %+v, want %+v", cfg.Clock, wantClock)
	}
	if !strings.HasPrefix(cfg.Tail.Path, home) || cfg.Tail.Align != component.AlignLeft {
		t.Fatalf("Tail = %+v", cfg.Tail)
	}
	if cfg.Feed != (Feed{URL: "http://127.0.0.1:9000/status", Interval: 5 * time.Second, Align: component.AlignLeft}) {
		t.Fatalf("Feed = %+v", cfg.Feed)
	}
	if cfg.Image != (Image{Path: "/tmp/logo.png", Align: component.AlignRight, Fit: false}) {
		t.Fatalf("Image = %+v", cfg.Image)
	}
}

func TestParse_EmptyValuesUseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
name = "   "
background = ""
[clock]
format = ""
interval = ""
`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Name != defaultName || cfg.Clock.Format != defaultClockFormat || cfg.Clock.Interval != defaultClockInterval {
		t.Fatalf("Parse = %+v", cfg)
	}
	if !cfg.Clock.Enabled {
		t.Fatal("clock disabled without being configured")
	}
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"bad toml", "name = ", "parse config"},
		{"zero height", "height = 0", "height"},
		{"huge height", "height = 70000", "height"},
		{"bad colour", `background = "blue"`, "background"},
		{"bad alignment", "[clock]\nalign = \"top\"", "clock.align"},
		{"bad interval", "[feed]\ninterval = \"soon\"", "feed.interval"},
		{"negative interval", "[clock]\ninterval = \"-1s\"", "clock.interval"},
		{"bad font size", "font_size = -3", "font_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.toml)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_UnreadablePathIsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("Load of a directory succeeded")
	}
}
