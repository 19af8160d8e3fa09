package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillAccessors(t *testing.T) {
	s := &Skill{
		Metadata: Metadata{
			Name:        "pdf-tools",
			Description: "Work with PDF files",
		},
		Root: "/skills/pdf-tools",
		Tools: []Tool{
			{Name: "extract-text", Description: "Tool: extract-text", ScriptPath: "/skills/pdf-tools/scripts/extract_text.py"},
			{Name: "merge", Description: "Tool: merge", ScriptPath: "/skills/pdf-tools/scripts/merge.sh"},
		},
		Resources: []Resource{
			{Name: "guide.md", Path: "/skills/pdf-tools/references/guide.md", Description: "Reference: guide.md"},
		},
	}

	assert.Equal(t, "pdf-tools", s.Name())
	assert.Equal(t, "Work with PDF files", s.Description())

	t.Run("tool lookup", func(t *testing.T) {
		tool := s.Tool("extract-text")
		require.NotNil(t, tool)
		assert.Equal(t, "extract-text", tool.Name)
		assert.Equal(t, "/skills/pdf-tools/scripts/extract_text.py", tool.ScriptPath)

		assert.Nil(t, s.Tool("nonexistent"))
	})

	t.Run("resource lookup", func(t *testing.T) {
		res := s.Resource("guide.md")
		require.NotNil(t, res)
		assert.Equal(t, "Reference: guide.md", res.Description)

		assert.Nil(t, s.Resource("other.md"))
	})

	t.Run("lookups on empty skill", func(t *testing.T) {
		empty := &Skill{Metadata: Metadata{Name: "bare", Description: "No tools or resources"}}
		assert.Nil(t, empty.Tool("anything"))
		assert.Nil(t, empty.Resource("anything"))
	})
}

func TestSkillToolReturnsPointerIntoSlice(t *testing.T) {
	s := &Skill{
		Metadata: Metadata{Name: "x", Description: "y"},
		Tools:    []Tool{{Name: "a"}},
	}

	tool := s.Tool("a")
	require.NotNil(t, tool)
	tool.Description = "updated"
	assert.Equal(t, "updated", s.Tools[0].Description)
}
