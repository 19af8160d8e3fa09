package skill

import (
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Type classifies what kind of capability a skill provides.
type Type string

const (
	TypeWorkflow     Type = "workflow"
	TypeTool         Type = "tool"
	TypeKnowledge    Type = "knowledge"
	TypeDomainExpert Type = "domain-expert"
)

// Valid reports whether t is one of the recognized skill types.
func (t Type) Valid() bool {
	switch t {
	case TypeWorkflow, TypeTool, TypeKnowledge, TypeDomainExpert:
		return true
	}
	return false
}

const (
	maxNameLength        = 64
	maxDescriptionLength = 1024
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Metadata is the YAML frontmatter of a SKILL.md manifest. Name and
// Description are required; everything else is optional. The reserved
// "metadata" frontmatter key lands in Extra.
type Metadata struct {
	Name          string            `mapstructure:"name" json:"name" yaml:"name"`
	Description   string            `mapstructure:"description" json:"description" yaml:"description"`
	Version       string            `mapstructure:"version" json:"version,omitempty" yaml:"version,omitempty"`
	Author        string            `mapstructure:"author" json:"author,omitempty" yaml:"author,omitempty"`
	License       string            `mapstructure:"license" json:"license,omitempty" yaml:"license,omitempty"`
	Type          Type              `mapstructure:"type" json:"type,omitempty" yaml:"type,omitempty"`
	Tags          []string          `mapstructure:"tags" json:"tags,omitempty" yaml:"tags,omitempty"`
	AllowedTools  []string          `mapstructure:"allowed_tools" json:"allowed_tools,omitempty" yaml:"allowed_tools,omitempty"`
	Dependencies  map[string]string `mapstructure:"dependencies" json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Compatibility string            `mapstructure:"compatibility" json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Extra         map[string]any    `mapstructure:"metadata" json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks every field constraint and returns all violations at
// once rather than stopping at the first.
func (m *Metadata) Validate() error {
	var result *multierror.Error

	switch {
	case m.Name == "":
		result = multierror.Append(result, errors.New("name is required"))
	case len(m.Name) > maxNameLength:
		result = multierror.Append(result, errors.Errorf("name must be at most %d characters, got %d", maxNameLength, len(m.Name)))
	case !namePattern.MatchString(m.Name):
		result = multierror.Append(result, errors.Errorf("name must contain only lowercase letters, digits, and hyphens: %q", m.Name))
	}

	switch {
	case m.Description == "":
		result = multierror.Append(result, errors.New("description is required"))
	case len(m.Description) > maxDescriptionLength:
		result = multierror.Append(result, errors.Errorf("description must be at most %d characters, got %d", maxDescriptionLength, len(m.Description)))
	}

	if m.Type != "" && !m.Type.Valid() {
		result = multierror.Append(result, errors.Errorf("type must be one of workflow, tool, knowledge, domain-expert: %q", m.Type))
	}

	return result.ErrorOrNil()
}
