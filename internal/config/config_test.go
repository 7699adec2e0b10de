package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/poptip/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, model.DefaultStyle(), cfg.Style)
	assert.Equal(t, model.DirectionAny, cfg.Behavior.PreferredDirection)
	assert.Equal(t, model.AnimationSlide, cfg.Behavior.Animation)
	assert.True(t, cfg.Behavior.DismissTapAnywhere)
	assert.False(t, cfg.Behavior.DisableTapToDismiss)
	assert.Zero(t, cfg.Behavior.AutoDismiss)
	assert.Equal(t, model.DeviceCompact, cfg.Device.Class)
	assert.Equal(t, 2.0, cfg.Render.PixelRatio)
	assert.True(t, cfg.Render.Scene)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	// Use a path that doesn't exist
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[style]
pop_color = "#336699"
text_color = "#ffffffcc"
corner_radius = 6.0
max_width = 200.0
text_alignment = "left"
gradient = true

[style.title_font]
size = 18.0
bold = false

[behavior]
preferred_direction = "down"
animation = "pop"
dismiss_tap_anywhere = false
disable_tap_to_dismiss = true
auto_dismiss = "3s"

[device]
class = "regular"

[render]
pixel_ratio = 1.0
scene = false

[tui]
show_help = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, model.MustParseColor("#336699"), cfg.Style.PopColor)
	assert.InDelta(t, 0.8, cfg.Style.TextColor.A, 0.001)
	assert.Equal(t, 6.0, cfg.Style.CornerRadius)
	assert.Equal(t, 200.0, cfg.Style.MaxWidth)
	assert.Equal(t, model.AlignLeft, cfg.Style.TextAlignment)
	assert.Equal(t, model.Font{Size: 18}, cfg.Style.TitleFont)
	assert.True(t, cfg.Style.Gradient)
	// Keys not in the file keep their defaults.
	assert.Equal(t, float64(model.DefaultPointerSize), cfg.Style.PointerSize)

	assert.Equal(t, model.DirectionDown, cfg.Behavior.PreferredDirection)
	assert.Equal(t, model.AnimationPop, cfg.Behavior.Animation)
	assert.False(t, cfg.Behavior.DismissTapAnywhere)
	assert.True(t, cfg.Behavior.DisableTapToDismiss)
	assert.Equal(t, 3*time.Second, cfg.Behavior.AutoDismiss.Duration())
	assert.Equal(t, model.DeviceRegular, cfg.Device.Class)
	assert.Equal(t, 1.0, cfg.Render.PixelRatio)
	assert.False(t, cfg.Render.Scene)
	assert.False(t, cfg.TUI.ShowHelp)

	b := cfg.Behavior.PopTipBehavior()
	assert.Equal(t, model.DirectionDown, b.PreferredDirection)
	assert.Equal(t, model.AnimationPop, b.Animation)
	assert.True(t, b.DisableTapToDismiss)
}

func TestLoadConfig_ThemeBeneathStyle(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
name = "dark"

[style]
pointer_size = 9.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme.Name)
	assert.Equal(t, model.MustParseColor("#2b2f36"), cfg.Style.PopColor, "from theme")
	assert.True(t, cfg.Style.Shadow, "from theme")
	assert.Equal(t, 9.0, cfg.Style.PointerSize, "from [style]")
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `[style`},
		{"unknown theme", "[theme]\nname = \"nope\""},
		{"bad direction", "[behavior]\npreferred_direction = \"left\""},
		{"bad duration", "[behavior]\nauto_dismiss = \"soon\""},
		{"negative radius", "[style]\ncorner_radius = -2.0"},
		{"pixel ratio", "[render]\npixel_ratio = 9.0"},
		{"bad color", "[style]\npop_color = \"#zzz\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Behavior.Animation = model.Animation(7)
	assert.ErrorContains(t, cfg.Validate(), "behavior.animation")

	cfg = DefaultConfig()
	cfg.Behavior.AutoDismiss = Duration(-time.Second)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Style.TextFont.Size = 0
	assert.ErrorIs(t, cfg.Validate(), model.ErrInvalidStyle)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-config")
	assert.Equal(t, "/tmp/test-config/poptip/config.toml", ConfigPath())
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Style.PopColor = model.MustParseColor("#12345680")
	cfg.Style.Style3D = true
	cfg.Behavior.Animation = model.AnimationPop
	cfg.Behavior.AutoDismiss = Duration(1500 * time.Millisecond)
	cfg.Device.Class = model.DeviceRegular

	require.NoError(t, cfg.Save(path))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Style.PopColor.Hex(), loaded.Style.PopColor.Hex())
	assert.True(t, loaded.Style.Style3D)
	assert.Equal(t, model.AnimationPop, loaded.Behavior.Animation)
	assert.Equal(t, 1500*time.Millisecond, loaded.Behavior.AutoDismiss.Duration())
	assert.Equal(t, model.DeviceRegular, loaded.Device.Class)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"2500", 2500 * time.Millisecond},
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("later")))

	out, err := Duration(1500 * time.Millisecond).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", string(out))
	assert.Equal(t, 1500, Duration(1500*time.Millisecond).Milliseconds())
}

func TestScenarioDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	cfg := DefaultConfig()
	cfg.Behavior.Animation = model.AnimationPop
	cfg.Behavior.AutoDismiss = Duration(3 * time.Second)
	cfg.Device.Class = model.DeviceRegular

	d := cfg.ScenarioDefaults()
	assert.Equal(t, cfg.Style, d.Style)
	assert.Equal(t, model.AnimationPop, d.Behavior.Animation)
	assert.Equal(t, 3*time.Second, d.Behavior.AutoDismiss.Duration())
	assert.True(t, d.Behavior.DismissTapAnywhere)
	assert.Equal(t, model.DeviceRegular, d.Device)
	assert.Equal(t, filepath.Join("/tmp/xdg", "poptip", "themes"), d.ThemesDir)
}
