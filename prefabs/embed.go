package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultConfig is the embedded animation table used when no file is given.
const DefaultConfig = "hero.json"

//go:embed *.json
var PrefabsFS embed.FS

// Load returns the contents of name. The path is tried as given, then under
// the prefabs/ directory, then among the embedded tables, so files edited on
// disk win over the copies built into the binary.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("empty prefab name")
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(PrefabsFS, clean)
}

// ModTime reports when the on-disk copy of name last changed.
func ModTime(name string) (time.Time, bool) {
	for _, p := range []string{name, diskPrefabPath(cleanPrefabPath(name))} {
		if info, err := os.Stat(p); err == nil {
			return info.ModTime(), true
		}
	}
	return time.Time{}, false
}

// Embedded lists the names of the tables built into the binary.
func Embedded() []string {
	matches, _ := fs.Glob(PrefabsFS, "*.json")
	return matches
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
