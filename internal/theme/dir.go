package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"voiceterm/internal/config"
)

// themeFile is the on-disk TOML shape of a user theme.
type themeFile struct {
	Name    string            `toml:"name"`
	Borders string            `toml:"borders"`
	Colors  map[string]string `toml:"colors"`
}

// Dir returns the user themes directory
// ($XDG_CONFIG_HOME/voiceterm/themes).
func Dir() (string, error) {
	base, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "themes"), nil
}

// EnsureDir creates the user themes directory if needed and returns it.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ListFiles returns all .toml theme files, sorted by path.
func ListFiles() []string {
	dir, err := Dir()
	if err != nil {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files
}

// LoadUserTheme loads {name}.toml from the themes directory. Colors not set
// in the file keep the coral defaults, so sparse theme files stay valid.
func LoadUserTheme(name string) (Theme, error) {
	dir, err := Dir()
	if err != nil {
		return Theme{}, err
	}
	return loadThemePath(filepath.Join(dir, name+".toml"), name)
}

func loadThemePath(path, name string) (Theme, error) {
	var file themeFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", name, err)
	}

	t := coral()
	t.Name = name
	if file.Name != "" {
		t.Name = file.Name
	}
	if file.Borders == "ascii" {
		t.Borders = AsciiBorders
	}

	for key, hex := range file.Colors {
		seq := rgb(hex)
		if seq == "" {
			return Theme{}, fmt.Errorf("theme %s: bad color %q for %q", name, hex, key)
		}
		switch key {
		case "recording":
			t.Recording = seq
		case "processing":
			t.Processing = seq
		case "success":
			t.Success = seq
		case "warning":
			t.Warning = seq
		case "error":
			t.Error = seq
		case "info":
			t.Info = seq
		case "border":
			t.Border = seq
		default:
			return Theme{}, fmt.Errorf("theme %s: unknown color key %q", name, key)
		}
	}
	return t, nil
}
