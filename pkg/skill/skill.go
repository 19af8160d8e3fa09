// Package skill defines the data model for agent skills: self-contained
// capability bundles packaged as a directory with a SKILL.md manifest,
// optional executable scripts under scripts/, and supporting files under
// references/ and assets/. The model is built by pkg/parser and consumed
// by discovery, execution, and the client.
package skill

// Skill is a fully loaded capability bundle.
type Skill struct {
	Metadata     Metadata
	Root         string // bundle directory
	ManifestPath string // path to the SKILL.md inside Root
	Instructions string // markdown body following the frontmatter, verbatim
	Tools        []Tool
	Resources    []Resource

	// Derived subdirectory paths; empty when the bundle doesn't have them.
	ScriptsDir    string
	ReferencesDir string
	AssetsDir     string
}

// Name returns the skill's unique name from its metadata.
func (s *Skill) Name() string {
	return s.Metadata.Name
}

// Description returns the skill's description from its metadata.
func (s *Skill) Description() string {
	return s.Metadata.Description
}

// Tool returns the named tool, or nil if the skill doesn't declare it.
func (s *Skill) Tool(name string) *Tool {
	for i := range s.Tools {
		if s.Tools[i].Name == name {
			return &s.Tools[i]
		}
	}
	return nil
}

// Resource returns the named resource, or nil if the skill doesn't have it.
func (s *Skill) Resource(name string) *Resource {
	for i := range s.Resources {
		if s.Resources[i].Name == name {
			return &s.Resources[i]
		}
	}
	return nil
}

// Tool is an executable capability backed by a script in the bundle's
// scripts/ directory. Schemas are nil unless the bundle declares them.
type Tool struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	ScriptPath   string         `json:"script_path"`
	InputSchema  map[string]any `json:"input_schema,omitempty"`
	OutputSchema map[string]any `json:"output_schema,omitempty"`
}

// Resource is a read-only file shipped with the bundle under references/
// or assets/.
type Resource struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	MediaType   string `json:"media_type,omitempty"`
}
