// Package discovery walks prioritized search roots for skill bundles.
// A directory containing SKILL.md is a bundle; its subtree is never
// entered, so bundles cannot nest. Earlier roots win when two bundles
// share a name, and broken bundles are reported as diagnostics instead
// of aborting the scan.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/jingkaihe/skillet/pkg/parser"
	"github.com/jingkaihe/skillet/pkg/skill"
)

// Diagnostic records one bundle (or directory) that discovery had to
// skip, with the cause preserved.
type Diagnostic struct {
	Path string
	Err  error
}

// Discovery scans an ordered list of search roots.
type Discovery struct {
	roots  []string
	parser *parser.Parser
}

// Option configures a Discovery.
type Option func(*Discovery)

// WithRoots sets explicit search roots, replacing the defaults
// entirely.
func WithRoots(roots ...string) Option {
	return func(d *Discovery) {
		d.roots = roots
	}
}

// WithParser makes discovery share a parser instance with its caller.
func WithParser(p *parser.Parser) Option {
	return func(d *Discovery) {
		d.parser = p
	}
}

// New creates a Discovery. Without options it searches the default
// roots resolved from the process environment.
func New(opts ...Option) *Discovery {
	d := &Discovery{}
	for _, opt := range opts {
		opt(d)
	}
	if d.roots == nil {
		d.roots = DefaultRoots(OSEnvironment())
	}
	if d.parser == nil {
		d.parser = parser.New()
	}
	return d
}

// Roots returns the search roots in priority order.
func (d *Discovery) Roots() []string {
	return d.roots
}

// DiscoverSkills parses every bundle under the roots. Duplicate names
// keep the first occurrence. Bundles that fail to parse become
// diagnostics; the scan itself never fails.
func (d *Discovery) DiscoverSkills(ctx context.Context) ([]*skill.Skill, []Diagnostic) {
	var skills []*skill.Skill
	var diags []Diagnostic
	seen := make(map[string]bool)

	d.eachBundle(ctx, &diags, func(dir string) bool {
		s, err := d.parser.Parse(dir)
		if err != nil {
			logger.G(ctx).WithField("path", dir).WithError(err).Debug("skipping skill bundle")
			diags = append(diags, Diagnostic{Path: dir, Err: err})
			return true
		}
		if !seen[s.Name()] {
			seen[s.Name()] = true
			skills = append(skills, s)
		}
		return true
	})

	return skills, diags
}

// DiscoverMetadata is DiscoverSkills projected to metadata. The
// contract only promises metadata, leaving room for a cheaper scan.
func (d *Discovery) DiscoverMetadata(ctx context.Context) ([]*skill.Metadata, []Diagnostic) {
	skills, diags := d.DiscoverSkills(ctx)

	metadata := make([]*skill.Metadata, 0, len(skills))
	for _, s := range skills {
		metadata = append(metadata, &s.Metadata)
	}
	return metadata, diags
}

// FindSkillPath returns the bundle directory of the named skill, or
// false when no root contains it. The name compared is the one in the
// bundle's frontmatter, not its directory name.
func (d *Discovery) FindSkillPath(ctx context.Context, name string) (string, bool) {
	found := ""
	d.eachBundle(ctx, nil, func(dir string) bool {
		s, err := d.parser.Parse(dir)
		if err != nil {
			return true
		}
		if s.Name() == name {
			found = dir
			return false
		}
		return true
	})
	return found, found != ""
}

// eachBundle visits candidate bundle directories in root order until
// visit returns false. Traversal errors below a root are appended to
// diags when the caller collects them.
func (d *Discovery) eachBundle(ctx context.Context, diags *[]Diagnostic, visit func(dir string) bool) {
	for _, root := range d.roots {
		for _, dir := range d.bundleDirs(ctx, root, diags) {
			if !visit(dir) {
				return
			}
		}
	}
}

// bundleDirs lists bundle directories under one root in lexical order.
// A root that is itself a bundle yields just that root; a root pointing
// at a SKILL.md file yields the file's directory. Missing roots are
// skipped silently.
func (d *Discovery) bundleDirs(ctx context.Context, root string, diags *[]Diagnostic) []string {
	info, err := os.Stat(root)
	if err != nil {
		return nil
	}

	if !info.IsDir() {
		if filepath.Base(root) == parser.ManifestName {
			return []string{filepath.Dir(root)}
		}
		return nil
	}

	var dirs []string
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.G(ctx).WithField("path", path).WithError(err).Debug("cannot read directory during discovery")
			if diags != nil {
				*diags = append(*diags, Diagnostic{Path: path, Err: err})
			}
			return nil
		}

		if !entry.IsDir() {
			// A symlink that resolves to a bundle directory still
			// counts; anything else behind a symlink is not entered.
			if entry.Type()&fs.ModeSymlink != 0 && hasManifest(path) {
				dirs = append(dirs, path)
			}
			return nil
		}

		if hasManifest(path) {
			dirs = append(dirs, path)
			return fs.SkipDir
		}
		return nil
	})

	return dirs
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, parser.ManifestName))
	return err == nil && !info.IsDir()
}
