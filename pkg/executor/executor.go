// Package executor runs skill tools as child processes. Input travels
// as one JSON document on stdin, output is captured and decoded into an
// ExecutionResult, and a wall-clock timeout bounds every run. Expected
// tool failures (non-zero exit, timeout, rejected input) come back as
// failed results; only infrastructure faults are returned as errors.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/jingkaihe/skillet/pkg/skill"
)

const (
	// DefaultTimeout bounds a tool run when no override is given.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxOutputSize caps captured stdout and stderr.
	DefaultMaxOutputSize = 100 * 1024
)

// interpreters maps script extensions to the command that runs them.
// Unmapped extensions are executed directly.
var interpreters = map[string]string{
	".py": "python3",
	".js": "node",
	".ts": "ts-node",
	".sh": "bash",
	".rb": "ruby",
	".pl": "perl",
}

// Executor spawns and supervises tool processes.
type Executor struct {
	timeout       time.Duration
	maxOutputSize int
	allowedTools  []glob.Glob
}

// Option configures an Executor.
type Option func(*Executor) error

// WithTimeout sets the default per-run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		e.timeout = timeout
		return nil
	}
}

// WithMaxOutputSize caps how much stdout/stderr is kept per run.
func WithMaxOutputSize(size int) Option {
	return func(e *Executor) error {
		if size <= 0 {
			return errors.New("max output size must be positive")
		}
		e.maxOutputSize = size
		return nil
	}
}

// WithAllowedTools restricts execution to tool names matching one of
// the glob patterns. No patterns means every tool is allowed.
func WithAllowedTools(patterns ...string) Option {
	return func(e *Executor) error {
		globs := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return errors.Wrapf(err, "invalid allowed tool pattern %q", pattern)
			}
			globs = append(globs, g)
		}
		e.allowedTools = globs
		return nil
	}
}

// New creates an Executor with the default timeout and output cap.
func New(opts ...Option) (*Executor, error) {
	e := &Executor{
		timeout:       DefaultTimeout,
		maxOutputSize: DefaultMaxOutputSize,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Execute runs the named tool of a loaded skill with the given input.
// A timeout of 0 uses the executor default. The returned error is nil
// for every outcome the tool itself could cause; inspect the result's
// Success flag for those.
func (e *Executor) Execute(ctx context.Context, s *skill.Skill, toolName string, input map[string]any, timeout time.Duration) (*skill.ExecutionResult, error) {
	tool := s.Tool(toolName)
	if tool == nil {
		return nil, &skill.ToolNotFoundError{Tool: toolName, Skill: s.Name()}
	}

	if info, err := os.Stat(tool.ScriptPath); err != nil || info.IsDir() {
		return nil, &skill.ExecutionError{
			Tool:    toolName,
			Skill:   s.Name(),
			Message: fmt.Sprintf("script not found: %s", tool.ScriptPath),
		}
	}

	if err := e.checkPolicy(s, toolName); err != nil {
		return nil, err
	}

	if input == nil {
		input = map[string]any{}
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, &skill.ExecutionError{
			Tool:    toolName,
			Skill:   s.Name(),
			Message: fmt.Sprintf("failed to encode input: %v", err),
		}
	}

	if tool.InputSchema != nil {
		problems, err := validateAgainstSchema(tool.InputSchema, payload)
		if err != nil {
			return nil, &skill.ExecutionError{
				Tool:    toolName,
				Skill:   s.Name(),
				Message: fmt.Sprintf("invalid input schema: %v", err),
			}
		}
		if len(problems) > 0 {
			return &skill.ExecutionResult{
				Success:  false,
				Error:    "input validation failed: " + strings.Join(problems, "; "),
				ExitCode: -1,
			}, nil
		}
	}

	effective := timeout
	if effective <= 0 {
		effective = e.timeout
	}

	log := logger.G(ctx).WithFields(logrus.Fields{
		"execution_id": uuid.NewString(),
		"skill":        s.Name(),
		"tool":         toolName,
	})
	log.WithField("timeout", effective).Debug("spawning tool process")

	execCtx, cancel := context.WithTimeout(ctx, effective)
	defer cancel()

	name, args := commandFor(tool.ScriptPath)
	cmd := exec.CommandContext(execCtx, name, args...)
	cmd.Dir = filepath.Dir(tool.ScriptPath)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if execCtx.Err() == context.DeadlineExceeded {
		log.WithField("duration", elapsed).Debug("tool process timed out")
		return &skill.ExecutionResult{
			Success:         false,
			Error:           fmt.Sprintf("tool execution timed out after %v", effective),
			ExitCode:        -1,
			ExecutionTimeMS: durationMS(elapsed),
		}, nil
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, &skill.ExecutionError{
				Tool:    toolName,
				Skill:   s.Name(),
				Message: runErr.Error(),
			}
		}
		exitCode = exitErr.ExitCode()
	}

	stdoutText := truncate(stdout.Bytes(), e.maxOutputSize)
	stderrText := truncate(stderr.Bytes(), e.maxOutputSize)
	success, data, errMsg := decodeOutput(stdoutText, stderrText, exitCode)

	log.WithFields(logrus.Fields{
		"exit_code": exitCode,
		"success":   success,
		"duration":  elapsed,
	}).Debug("tool process finished")

	return &skill.ExecutionResult{
		Success:         success,
		Data:            data,
		Error:           errMsg,
		Stdout:          stdoutText,
		Stderr:          stderrText,
		ExitCode:        exitCode,
		ExecutionTimeMS: durationMS(elapsed),
	}, nil
}

// ValidateTool checks that a tool could run right now: it exists, its
// script is readable, and its interpreter resolves on PATH. Nothing is
// spawned.
func (e *Executor) ValidateTool(s *skill.Skill, toolName string) (bool, string) {
	tool := s.Tool(toolName)
	if tool == nil {
		return false, fmt.Sprintf("tool %q not found", toolName)
	}

	info, err := os.Stat(tool.ScriptPath)
	if err != nil || info.IsDir() {
		return false, fmt.Sprintf("script not found: %s", tool.ScriptPath)
	}

	f, err := os.Open(tool.ScriptPath)
	if err != nil {
		return false, fmt.Sprintf("script not readable: %s", tool.ScriptPath)
	}
	f.Close()

	if interp := interpreterFor(tool.ScriptPath); interp != "" {
		if _, err := exec.LookPath(interp); err != nil {
			return false, fmt.Sprintf("interpreter %q not found in PATH", interp)
		}
	}

	return true, ""
}

// checkPolicy enforces the executor allowlist and the skill's own
// declared allowed_tools. Both must admit the tool.
func (e *Executor) checkPolicy(s *skill.Skill, toolName string) error {
	if len(e.allowedTools) > 0 && !matchAny(e.allowedTools, toolName) {
		return &skill.ExecutionError{
			Tool:    toolName,
			Skill:   s.Name(),
			Message: "tool is not permitted by the executor allowlist",
		}
	}

	if declared := s.Metadata.AllowedTools; len(declared) > 0 {
		allowed := false
		for _, pattern := range declared {
			if matchesPattern(pattern, toolName) {
				allowed = true
				break
			}
		}
		if !allowed {
			return &skill.ExecutionError{
				Tool:    toolName,
				Skill:   s.Name(),
				Message: "tool is not listed in the skill's allowed_tools",
			}
		}
	}

	return nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// matchesPattern treats an uncompilable pattern as a literal name so a
// bad pattern in a bundle's frontmatter cannot open the allowlist.
func matchesPattern(pattern, name string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return pattern == name
	}
	return g.Match(name)
}

func validateAgainstSchema(schema map[string]any, payload []byte) ([]string, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, err
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		problems = append(problems, resultErr.String())
	}
	return problems, nil
}

func commandFor(scriptPath string) (string, []string) {
	if interp := interpreterFor(scriptPath); interp != "" {
		return interp, []string{scriptPath}
	}
	return scriptPath, nil
}

func interpreterFor(scriptPath string) string {
	return interpreters[strings.ToLower(filepath.Ext(scriptPath))]
}

func truncate(output []byte, limit int) string {
	if limit > 0 && len(output) > limit {
		return string(output[:limit]) + "\n\n[TRUNCATED - output exceeded size limit]"
	}
	return string(output)
}

func durationMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
