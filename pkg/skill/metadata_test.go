package skill

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataValidate(t *testing.T) {
	t.Run("minimal valid metadata", func(t *testing.T) {
		md := Metadata{Name: "test-skill", Description: "A test skill"}
		assert.NoError(t, md.Validate())
	})

	t.Run("full valid metadata", func(t *testing.T) {
		md := Metadata{
			Name:          "data-processor",
			Description:   "Processes data files",
			Version:       "1.2.0",
			Author:        "Test Author",
			License:       "MIT",
			Type:          TypeTool,
			Tags:          []string{"data", "etl"},
			AllowedTools:  []string{"process-*"},
			Dependencies:  map[string]string{"pandas": ">=2.0"},
			Compatibility: "python>=3.10",
			Extra:         map[string]any{"team": "platform"},
		}
		assert.NoError(t, md.Validate())
	})

	tests := []struct {
		name     string
		metadata Metadata
		wantErrs []string
	}{
		{
			name:     "missing name",
			metadata: Metadata{Description: "desc"},
			wantErrs: []string{"name is required"},
		},
		{
			name:     "missing description",
			metadata: Metadata{Name: "valid-name"},
			wantErrs: []string{"description is required"},
		},
		{
			name:     "uppercase name",
			metadata: Metadata{Name: "MySkill", Description: "desc"},
			wantErrs: []string{"lowercase letters, digits, and hyphens"},
		},
		{
			name:     "name with underscores",
			metadata: Metadata{Name: "my_skill", Description: "desc"},
			wantErrs: []string{"lowercase letters, digits, and hyphens"},
		},
		{
			name:     "name with spaces",
			metadata: Metadata{Name: "my skill", Description: "desc"},
			wantErrs: []string{"lowercase letters, digits, and hyphens"},
		},
		{
			name:     "name too long",
			metadata: Metadata{Name: strings.Repeat("a", 65), Description: "desc"},
			wantErrs: []string{"at most 64 characters"},
		},
		{
			name:     "description too long",
			metadata: Metadata{Name: "ok", Description: strings.Repeat("d", 1025)},
			wantErrs: []string{"at most 1024 characters"},
		},
		{
			name:     "unknown type",
			metadata: Metadata{Name: "ok", Description: "desc", Type: "agent"},
			wantErrs: []string{"type must be one of"},
		},
		{
			name:     "multiple violations reported together",
			metadata: Metadata{Name: "Bad Name", Type: "bogus"},
			wantErrs: []string{"lowercase letters", "description is required", "type must be one of"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metadata.Validate()
			require.Error(t, err)
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestMetadataValidateBoundaries(t *testing.T) {
	t.Run("name at max length is valid", func(t *testing.T) {
		md := Metadata{Name: strings.Repeat("a", 64), Description: "desc"}
		assert.NoError(t, md.Validate())
	})

	t.Run("description at max length is valid", func(t *testing.T) {
		md := Metadata{Name: "ok", Description: strings.Repeat("d", 1024)}
		assert.NoError(t, md.Validate())
	})

	t.Run("single character name is valid", func(t *testing.T) {
		md := Metadata{Name: "a", Description: "desc"}
		assert.NoError(t, md.Validate())
	})
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeWorkflow, TypeTool, TypeKnowledge, TypeDomainExpert} {
		assert.True(t, typ.Valid(), "type %q should be valid", typ)
	}

	assert.False(t, Type("agent").Valid())
	assert.False(t, Type("").Valid())
	assert.False(t, Type("Workflow").Valid())
}
