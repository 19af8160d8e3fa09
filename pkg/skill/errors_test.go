package skill

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("with searched roots", func(t *testing.T) {
		err := &NotFoundError{Name: "missing", SearchedRoots: []string{"/a", "/b"}}
		assert.Equal(t, `skill "missing" not found in paths: /a, /b`, err.Error())
	})

	t.Run("without searched roots", func(t *testing.T) {
		err := &NotFoundError{Name: "missing"}
		assert.Equal(t, `skill "missing" not found`, err.Error())
	})
}

func TestToolNotFoundError(t *testing.T) {
	err := &ToolNotFoundError{Tool: "convert", Skill: "pdf-tools"}
	assert.Equal(t, `tool "convert" not found in skill "pdf-tools"`, err.Error())
}

func TestResourceNotFoundError(t *testing.T) {
	err := &ResourceNotFoundError{Resource: "guide.md", Skill: "pdf-tools"}
	assert.Equal(t, `resource "guide.md" not found in skill "pdf-tools"`, err.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Path:     "/skills/bad",
		Problems: []string{"name is required", "description is required"},
	}

	msg := err.Error()
	assert.Contains(t, msg, `skill validation failed for "/skills/bad"`)
	assert.Contains(t, msg, "  - name is required")
	assert.Contains(t, msg, "  - description is required")
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("missing frontmatter")
	err := &ParseError{Path: "/skills/bad/SKILL.md", Cause: cause}

	assert.Contains(t, err.Error(), "/skills/bad/SKILL.md")
	assert.Contains(t, err.Error(), "missing frontmatter")
	assert.Equal(t, cause, errors.Cause(err.Cause))

	var parseErr *ParseError
	require.True(t, errors.As(errors.Wrap(err, "outer"), &parseErr))
	assert.Equal(t, "/skills/bad/SKILL.md", parseErr.Path)
}

func TestExecutionError(t *testing.T) {
	t.Run("with exit code", func(t *testing.T) {
		err := &ExecutionError{Tool: "run", Skill: "deploy", Message: "script vanished", ExitCode: 127}
		assert.Equal(t, `tool "run" in skill "deploy" failed: script vanished (exit code: 127)`, err.Error())
	})

	t.Run("without exit code", func(t *testing.T) {
		err := &ExecutionError{Tool: "run", Skill: "deploy", Message: "spawn failed"}
		assert.Equal(t, `tool "run" in skill "deploy" failed: spawn failed`, err.Error())
	})
}

func TestErrorsAsTaxonomy(t *testing.T) {
	wrapped := errors.Wrap(&ToolNotFoundError{Tool: "t", Skill: "s"}, "execute")

	var toolErr *ToolNotFoundError
	require.True(t, errors.As(wrapped, &toolErr))
	assert.Equal(t, "t", toolErr.Tool)

	var notFound *NotFoundError
	assert.False(t, errors.As(wrapped, &notFound))
}
