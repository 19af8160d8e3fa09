// Package adapter turns skills into framework-agnostic agent tools.
// Each skill tool becomes an executable Tool backed by the client's
// sandbox, and each skill additionally exposes an instructions Tool so
// an agent can pull the full usage guide on demand.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/skill"
)

// Tool is the capability surface a framework binding compiles against.
// Input is a JSON object encoded as a string; output is the rendered
// tool result.
type Tool interface {
	Name() string
	Description() string
	GenerateSchema() *jsonschema.Schema
	ValidateInput(input string) error
	Execute(ctx context.Context, input string) (string, error)
	TracingKVs(input string) ([]attribute.KeyValue, error)
}

// Adapter registers skills with a target framework.
type Adapter interface {
	RegisterSkill(ctx context.Context, s *skill.Skill) []Tool
	RegisterAll(ctx context.Context) ([]Tool, error)
}

// Binder is the generic Adapter implementation. It wraps a client so
// every emitted tool goes through the same caching and sandboxing as
// direct API use.
type Binder struct {
	client *client.Client
}

// NewBinder creates a Binder over an existing client.
func NewBinder(c *client.Client) *Binder {
	return &Binder{client: c}
}

// RegisterSkill emits one execution tool per skill tool plus the
// skill's instructions tool.
func (b *Binder) RegisterSkill(ctx context.Context, s *skill.Skill) []Tool {
	tools := make([]Tool, 0, len(s.Tools)+1)
	for i := range s.Tools {
		tools = append(tools, newExecutionTool(b.client, s.Name(), s.Tools[i]))
	}
	tools = append(tools, &instructionsTool{
		client:    b.client,
		skillName: s.Name(),
		skillDesc: s.Description(),
	})
	return tools
}

// RegisterAll discovers every skill and registers each of them.
func (b *Binder) RegisterAll(ctx context.Context) ([]Tool, error) {
	skills, _ := b.client.DiscoverSkills(ctx)

	var tools []Tool
	for _, s := range skills {
		tools = append(tools, b.RegisterSkill(ctx, s)...)
	}
	return tools, nil
}

// executionTool runs one script tool of one skill.
type executionTool struct {
	client    *client.Client
	skillName string
	tool      skill.Tool
	schema    *jsonschema.Schema
}

func newExecutionTool(c *client.Client, skillName string, tool skill.Tool) *executionTool {
	return &executionTool{
		client:    c,
		skillName: skillName,
		tool:      tool,
		schema:    schemaFor(tool),
	}
}

func (t *executionTool) Name() string {
	return fmt.Sprintf("%s_%s", t.skillName, t.tool.Name)
}

func (t *executionTool) Description() string {
	return t.tool.Description
}

func (t *executionTool) GenerateSchema() *jsonschema.Schema {
	return t.schema
}

func (t *executionTool) ValidateInput(input string) error {
	_, err := decodeInput(input)
	return err
}

func (t *executionTool) Execute(ctx context.Context, input string) (string, error) {
	decoded, err := decodeInput(input)
	if err != nil {
		return "", err
	}

	result, err := t.client.ExecuteTool(ctx, t.skillName, t.tool.Name, decoded, 0)
	if err != nil {
		return "", err
	}
	if !result.Success {
		if result.Error != "" {
			return "", errors.New(result.Error)
		}
		return "", errors.Errorf("tool execution failed with exit code %d", result.ExitCode)
	}
	return renderData(result.Data)
}

func (t *executionTool) TracingKVs(_ string) ([]attribute.KeyValue, error) {
	return []attribute.KeyValue{
		attribute.String("tool.type", "skill"),
		attribute.String("skill.name", t.skillName),
		attribute.String("tool.name", t.tool.Name),
	}, nil
}

// instructionsTool returns a skill's full manifest body so an agent can
// load the guide only when it decides the skill is relevant.
type instructionsTool struct {
	client    *client.Client
	skillName string
	skillDesc string
}

type instructionsInput struct{}

func (t *instructionsTool) Name() string {
	return fmt.Sprintf("%s_instructions", t.skillName)
}

func (t *instructionsTool) Description() string {
	return fmt.Sprintf("Load the full usage instructions for the %s skill. %s", t.skillName, t.skillDesc)
}

func (t *instructionsTool) GenerateSchema() *jsonschema.Schema {
	return generateSchema[instructionsInput]()
}

func (t *instructionsTool) ValidateInput(string) error {
	return nil
}

func (t *instructionsTool) Execute(ctx context.Context, _ string) (string, error) {
	instructions, err := t.client.GetInstructions(ctx, t.skillName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# Skill: %s\n\n%s", t.skillName, instructions), nil
}

func (t *instructionsTool) TracingKVs(_ string) ([]attribute.KeyValue, error) {
	return []attribute.KeyValue{
		attribute.String("tool.type", "skill_instructions"),
		attribute.String("skill.name", t.skillName),
	}, nil
}

func generateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// schemaFor converts a tool's declared input schema, falling back to a
// permissive object schema when none is declared or it does not
// convert.
func schemaFor(tool skill.Tool) *jsonschema.Schema {
	if tool.InputSchema == nil {
		return &jsonschema.Schema{Type: "object"}
	}

	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	return &schema
}

func decodeInput(input string) (map[string]any, error) {
	if strings.TrimSpace(input) == "" {
		return map[string]any{}, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(input), &decoded); err != nil {
		return nil, errors.Wrap(err, "input must be a JSON object")
	}
	return decoded, nil
}

func renderData(data any) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		rendered, err := json.Marshal(v)
		if err != nil {
			return "", errors.Wrap(err, "failed to render tool output")
		}
		return string(rendered), nil
	}
}
