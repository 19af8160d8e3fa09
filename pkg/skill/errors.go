package skill

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no bundle with the requested name exists in
// any searched root.
type NotFoundError struct {
	Name          string
	SearchedRoots []string
}

func (e *NotFoundError) Error() string {
	if len(e.SearchedRoots) == 0 {
		return fmt.Sprintf("skill %q not found", e.Name)
	}
	return fmt.Sprintf("skill %q not found in paths: %s", e.Name, strings.Join(e.SearchedRoots, ", "))
}

// ToolNotFoundError indicates a loaded skill doesn't declare the
// requested tool.
type ToolNotFoundError struct {
	Tool  string
	Skill string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found in skill %q", e.Tool, e.Skill)
}

// ResourceNotFoundError indicates a resource is undeclared or its
// backing file is missing.
type ResourceNotFoundError struct {
	Resource string
	Skill    string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found in skill %q", e.Resource, e.Skill)
}

// ValidationError carries every constraint violation found in a
// bundle's metadata.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Problems)+1)
	lines = append(lines, fmt.Sprintf("skill validation failed for %q:", e.Path))
	for _, p := range e.Problems {
		lines = append(lines, "  - "+p)
	}
	return strings.Join(lines, "\n")
}

// ParseError indicates a SKILL.md manifest could not be read or its
// structure is unusable.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse SKILL.md at %q: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExecutionError indicates a tool invocation failed for an
// infrastructural reason (refused by policy, unreadable script, spawn
// failure) rather than the tool itself reporting failure.
type ExecutionError struct {
	Tool     string
	Skill    string
	Message  string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("tool %q in skill %q failed: %s", e.Tool, e.Skill, e.Message)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	return msg
}
