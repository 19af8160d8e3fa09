package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// SkillPathEnvVar holds extra search roots, separated by the OS path
// list separator.
const SkillPathEnvVar = "SKILLET_SKILL_PATH"

// Environment is the snapshot DefaultRoots resolves against. Keeping
// it explicit makes root resolution reproducible and testable instead
// of reading ambient process state.
type Environment struct {
	Home      string
	WorkDir   string
	SkillPath string // raw SKILLET_SKILL_PATH value, may be empty
}

// OSEnvironment captures the live process environment.
func OSEnvironment() Environment {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	return Environment{
		Home:      home,
		WorkDir:   wd,
		SkillPath: os.Getenv(SkillPathEnvVar),
	}
}

// DefaultRoots resolves the default search roots in priority order:
// the user root under the home directory, the skills/ directory of the
// working directory, then each entry of the environment path list.
// Only directories that exist are returned, and duplicates are
// dropped. Explicit roots passed to WithRoots bypass this entirely.
func DefaultRoots(env Environment) []string {
	var roots []string
	seen := make(map[string]bool)

	add := func(path string) {
		if path == "" {
			return
		}
		if !filepath.IsAbs(path) && env.WorkDir != "" {
			path = filepath.Join(env.WorkDir, path)
		}
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			return
		}
		seen[path] = true
		roots = append(roots, path)
	}

	if env.Home != "" {
		add(filepath.Join(env.Home, ".skillet", "skills"))
	}
	if env.WorkDir != "" {
		add(filepath.Join(env.WorkDir, "skills"))
	}
	for _, entry := range strings.Split(env.SkillPath, string(os.PathListSeparator)) {
		add(ExpandHome(entry, env.Home))
	}

	return roots
}

// ExpandHome rewrites a leading ~ against the given home directory.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
