// Package parser loads SKILL.md manifests into the skill data model. A
// bundle is a directory holding a SKILL.md with YAML frontmatter and a
// markdown instruction body, plus optional scripts/, references/, and
// assets/ subdirectories that become the skill's tools and resources.
package parser

import (
	"bytes"
	"encoding/json"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	gparser "github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/skillet/pkg/skill"
)

// ManifestName is the file that identifies a directory as a skill bundle.
const ManifestName = "SKILL.md"

const (
	scriptsDirName    = "scripts"
	referencesDirName = "references"
	assetsDirName     = "assets"
)

// scriptExtensions are the file types under scripts/ that become tools.
var scriptExtensions = map[string]bool{
	".py": true,
	".sh": true,
	".js": true,
	".rb": true,
}

// Parser turns skill bundles on disk into validated Skill values.
type Parser struct {
	md goldmark.Markdown
}

// New creates a parser with frontmatter support enabled.
func New() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(meta.Meta)),
	}
}

// Parse loads the bundle at path, which may be the bundle directory or
// the SKILL.md file itself. It returns a ParseError when the manifest
// is missing or structurally unusable, and a ValidationError when the
// frontmatter violates a metadata constraint.
func (p *Parser) Parse(path string) (*skill.Skill, error) {
	root, manifestPath := resolveManifest(path)

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &skill.ParseError{Path: path, Cause: errors.Errorf("SKILL.md not found at %s", manifestPath)}
		}
		return nil, &skill.ParseError{Path: path, Cause: errors.Wrap(err, "failed to read skill file")}
	}

	frontmatter, err := p.extractFrontmatter(content)
	if err != nil {
		return nil, &skill.ParseError{Path: path, Cause: err}
	}

	metadata, err := decodeMetadata(frontmatter)
	if err != nil {
		return nil, &skill.ParseError{Path: path, Cause: err}
	}

	if err := metadata.Validate(); err != nil {
		return nil, &skill.ValidationError{Path: path, Problems: validationProblems(err)}
	}

	tools, err := scanScripts(root)
	if err != nil {
		return nil, &skill.ParseError{Path: path, Cause: err}
	}

	return &skill.Skill{
		Metadata:      metadata,
		Root:          root,
		ManifestPath:  manifestPath,
		Instructions:  extractBodyContent(string(content)),
		Tools:         tools,
		Resources:     scanResources(root),
		ScriptsDir:    existingDir(root, scriptsDirName),
		ReferencesDir: existingDir(root, referencesDirName),
		AssetsDir:     existingDir(root, assetsDirName),
	}, nil
}

// Validate parses the bundle and reports every problem found instead of
// failing on the first. It never returns an error itself.
func (p *Parser) Validate(path string) (bool, []string) {
	if _, err := p.Parse(path); err != nil {
		var validationErr *skill.ValidationError
		if errors.As(err, &validationErr) {
			return false, validationErr.Problems
		}
		return false, []string{err.Error()}
	}
	return true, nil
}

// resolveManifest maps path to the bundle root and its SKILL.md. A
// directory means the manifest lives inside it; anything else is taken
// as the manifest file itself.
func resolveManifest(path string) (root, manifestPath string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, filepath.Join(path, ManifestName)
	}
	return filepath.Dir(path), path
}

// extractFrontmatter parses the manifest through goldmark and returns
// the frontmatter mapping.
func (p *Parser) extractFrontmatter(content []byte) (map[string]any, error) {
	var buf bytes.Buffer
	pctx := gparser.NewContext()

	if err := p.md.Convert(content, &buf, gparser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	frontmatter := meta.Get(pctx)
	if frontmatter == nil {
		return nil, errors.New("missing or invalid frontmatter")
	}

	return frontmatter, nil
}

// decodeMetadata maps the raw frontmatter onto the Metadata struct,
// tolerating YAML's interface-keyed nested maps and ignoring unknown
// top-level keys.
func decodeMetadata(raw map[string]any) (skill.Metadata, error) {
	var metadata skill.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &metadata,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return metadata, errors.Wrap(err, "failed to create metadata decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return metadata, errors.Wrap(err, "failed to decode frontmatter")
	}

	return metadata, nil
}

func validationProblems(err error) []string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		problems := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			problems = append(problems, e.Error())
		}
		return problems
	}
	return []string{err.Error()}
}

// extractBodyContent removes YAML frontmatter and returns the verbatim
// markdown body.
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// scanScripts turns recognized script files under scripts/ into tools.
// The tool name is the file stem with underscores mapped to hyphens;
// when two scripts map to the same name the lexicographically first
// one wins. An optional sidecar <stem>.schema.json supplies the
// description and input/output schemas.
func scanScripts(root string) ([]skill.Tool, error) {
	scriptsDir := filepath.Join(root, scriptsDirName)
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		return nil, nil
	}

	var tools []skill.Tool
	seen := make(map[string]bool)

	for _, entry := range entries {
		scriptPath := filepath.Join(scriptsDir, entry.Name())
		info, err := os.Stat(scriptPath)
		if err != nil || info.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !scriptExtensions[ext] {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ext)
		name := strings.ReplaceAll(stem, "_", "-")
		if seen[name] {
			continue
		}
		seen[name] = true

		tool := skill.Tool{
			Name:        name,
			Description: "Tool: " + name,
			ScriptPath:  scriptPath,
		}

		if err := applyToolManifest(scriptsDir, stem, &tool); err != nil {
			return nil, err
		}

		tools = append(tools, tool)
	}

	return tools, nil
}

// toolManifest is the sidecar JSON a bundle may ship next to a script
// to describe it beyond the generated placeholder.
type toolManifest struct {
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"input_schema"`
	OutputSchema map[string]any `json:"output_schema"`
}

func applyToolManifest(scriptsDir, stem string, tool *skill.Tool) error {
	manifestPath := filepath.Join(scriptsDir, stem+".schema.json")
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil
	}

	var manifest toolManifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return errors.Wrapf(err, "invalid tool manifest %s", manifestPath)
	}

	if manifest.Description != "" {
		tool.Description = manifest.Description
	}
	tool.InputSchema = manifest.InputSchema
	tool.OutputSchema = manifest.OutputSchema

	return nil
}

// scanResources collects files under references/ and assets/. Names
// must be unique across both; references win on collision because they
// are scanned first.
func scanResources(root string) []skill.Resource {
	var resources []skill.Resource
	seen := make(map[string]bool)

	for _, group := range []struct {
		dir   string
		label string
	}{
		{referencesDirName, "Reference"},
		{assetsDirName, "Asset"},
	} {
		dir := filepath.Join(root, group.dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			resourcePath := filepath.Join(dir, entry.Name())
			info, err := os.Stat(resourcePath)
			if err != nil || info.IsDir() {
				continue
			}
			if seen[entry.Name()] {
				continue
			}
			seen[entry.Name()] = true

			resources = append(resources, skill.Resource{
				Name:        entry.Name(),
				Path:        resourcePath,
				Description: group.label + ": " + entry.Name(),
				MediaType:   mediaType(entry.Name()),
			})
		}
	}

	return resources
}

// mediaType guesses a media type from the file extension, without
// parameters. Unknown extensions yield an empty string.
func mediaType(name string) string {
	raw := mime.TypeByExtension(filepath.Ext(name))
	if raw == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return mt
}

func existingDir(root, name string) string {
	dir := filepath.Join(root, name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}
