// Package client is the programmatic surface of the library: a cached,
// synchronous orchestrator over bundle discovery, manifest parsing, and
// tool execution.
package client

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillet/pkg/discovery"
	"github.com/jingkaihe/skillet/pkg/executor"
	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/jingkaihe/skillet/pkg/parser"
	"github.com/jingkaihe/skillet/pkg/skill"
)

// Client owns the search roots, the discovery walker, the parser, the
// executor, and two caches: loaded skills by name and the last metadata
// scan. The caches belong to one instance; callers needing concurrent
// access must serialize it themselves.
type Client struct {
	roots     []string
	parser    *parser.Parser
	discovery *discovery.Discovery
	executor  *executor.Executor

	executorOpts []executor.Option

	skills   map[string]*skill.Skill
	metadata []*skill.Metadata
	scanned  bool
}

// Option is a function that configures a Client.
type Option func(*Client) error

// WithSkillDirs sets explicit search roots, replacing the defaults
// entirely.
func WithSkillDirs(dirs ...string) Option {
	return func(c *Client) error {
		if len(dirs) == 0 {
			return errors.New("at least one skill directory is required")
		}
		c.roots = dirs
		return nil
	}
}

// WithParser makes the client use a shared parser instance.
func WithParser(p *parser.Parser) Option {
	return func(c *Client) error {
		if p == nil {
			return errors.New("parser must not be nil")
		}
		c.parser = p
		return nil
	}
}

// WithExecutorOptions configures the execution sandbox.
func WithExecutorOptions(opts ...executor.Option) Option {
	return func(c *Client) error {
		c.executorOpts = append(c.executorOpts, opts...)
		return nil
	}
}

// New creates a Client. Without options it searches the default roots
// resolved from the process environment.
func New(opts ...Option) (*Client, error) {
	c := &Client{skills: make(map[string]*skill.Skill)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.parser == nil {
		c.parser = parser.New()
	}
	if c.roots == nil {
		c.roots = discovery.DefaultRoots(discovery.OSEnvironment())
	}
	c.discovery = discovery.New(
		discovery.WithRoots(c.roots...),
		discovery.WithParser(c.parser),
	)

	e, err := executor.New(c.executorOpts...)
	if err != nil {
		return nil, err
	}
	c.executor = e

	return c, nil
}

// NewFromViper builds a Client from configuration: skill_dirs,
// executor.timeout, executor.allowed_tools, executor.max_output_size.
func NewFromViper(ctx context.Context) (*Client, error) {
	var opts []Option

	if dirs := viper.GetStringSlice("skill_dirs"); len(dirs) > 0 {
		opts = append(opts, WithSkillDirs(dirs...))
	}

	var execOpts []executor.Option
	if timeout := viper.GetDuration("executor.timeout"); timeout > 0 {
		execOpts = append(execOpts, executor.WithTimeout(timeout))
	}
	if allowed := viper.GetStringSlice("executor.allowed_tools"); len(allowed) > 0 {
		execOpts = append(execOpts, executor.WithAllowedTools(allowed...))
	}
	if size := viper.GetInt("executor.max_output_size"); size > 0 {
		execOpts = append(execOpts, executor.WithMaxOutputSize(size))
	}
	if len(execOpts) > 0 {
		opts = append(opts, WithExecutorOptions(execOpts...))
	}

	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("skill_dirs", c.roots).Debug("skill client configured")
	return c, nil
}

// SkillDirs returns the search roots in priority order.
func (c *Client) SkillDirs() []string {
	return c.roots
}

// LoadSkill returns the named skill, parsing its bundle on first use.
// Repeated calls return the identical cached instance until
// ReloadSkills clears the cache.
func (c *Client) LoadSkill(ctx context.Context, name string) (*skill.Skill, error) {
	if s, ok := c.skills[name]; ok {
		return s, nil
	}

	path, ok := c.discovery.FindSkillPath(ctx, name)
	if !ok {
		return nil, &skill.NotFoundError{Name: name, SearchedRoots: c.roots}
	}

	s, err := c.parser.Parse(path)
	if err != nil {
		return nil, err
	}

	c.skills[name] = s
	return s, nil
}

// DiscoverSkills scans all roots, updates the skill cache entry by
// entry, and replaces the metadata cache with the scan's projection.
func (c *Client) DiscoverSkills(ctx context.Context) ([]*skill.Skill, []discovery.Diagnostic) {
	skills, diags := c.discovery.DiscoverSkills(ctx)

	metadata := make([]*skill.Metadata, 0, len(skills))
	for _, s := range skills {
		c.skills[s.Name()] = s
		metadata = append(metadata, &s.Metadata)
	}
	c.metadata = metadata
	c.scanned = true

	return skills, diags
}

// DiscoverMetadata scans all roots and replaces the metadata cache
// outright. The skill cache is left untouched.
func (c *Client) DiscoverMetadata(ctx context.Context) ([]*skill.Metadata, []discovery.Diagnostic) {
	metadata, diags := c.discovery.DiscoverMetadata(ctx)
	c.metadata = metadata
	c.scanned = true
	return metadata, diags
}

// GetMetadata resolves metadata from the skill cache, then the
// metadata cache, then by loading the skill outright.
func (c *Client) GetMetadata(ctx context.Context, name string) (*skill.Metadata, error) {
	if s, ok := c.skills[name]; ok {
		return &s.Metadata, nil
	}
	for _, md := range c.metadata {
		if md.Name == name {
			return md, nil
		}
	}

	s, err := c.LoadSkill(ctx, name)
	if err != nil {
		return nil, err
	}
	return &s.Metadata, nil
}

// GetInstructions returns the named skill's verbatim manifest body.
func (c *Client) GetInstructions(ctx context.Context, name string) (string, error) {
	s, err := c.LoadSkill(ctx, name)
	if err != nil {
		return "", err
	}
	return s.Instructions, nil
}

// ExecuteTool loads the skill and runs one of its tools through the
// execution sandbox.
func (c *Client) ExecuteTool(ctx context.Context, skillName, toolName string, input map[string]any, timeout time.Duration) (*skill.ExecutionResult, error) {
	s, err := c.LoadSkill(ctx, skillName)
	if err != nil {
		return nil, err
	}
	return c.executor.Execute(ctx, s, toolName, input, timeout)
}

// ValidateTool pre-flights a tool without spawning it.
func (c *Client) ValidateTool(ctx context.Context, skillName, toolName string) (bool, string, error) {
	s, err := c.LoadSkill(ctx, skillName)
	if err != nil {
		return false, "", err
	}
	ok, reason := c.executor.ValidateTool(s, toolName)
	return ok, reason, nil
}

// GetResource reads a declared resource's file contents. An undeclared
// resource and a declared one whose backing file disappeared both
// surface as ResourceNotFoundError.
func (c *Client) GetResource(ctx context.Context, skillName, resourceName string) ([]byte, error) {
	s, err := c.LoadSkill(ctx, skillName)
	if err != nil {
		return nil, err
	}

	res := s.Resource(resourceName)
	if res == nil {
		return nil, &skill.ResourceNotFoundError{Resource: resourceName, Skill: skillName}
	}

	content, err := os.ReadFile(res.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &skill.ResourceNotFoundError{Resource: resourceName, Skill: skillName}
		}
		return nil, errors.Wrapf(err, "failed to read resource %q of skill %q", resourceName, skillName)
	}
	return content, nil
}

// SearchSkills filters the metadata cache and fully loads every match,
// dropping matches that no longer load. A never-populated cache is
// filled with a scan first.
func (c *Client) SearchSkills(ctx context.Context, query skill.SearchQuery) []*skill.Skill {
	c.ensureMetadata(ctx)

	var results []*skill.Skill
	for _, md := range c.metadata {
		if !query.Matches(md) {
			continue
		}
		s, err := c.LoadSkill(ctx, md.Name)
		if err != nil {
			logger.G(ctx).WithField("skill", md.Name).WithError(err).Debug("dropping unloadable skill from search results")
			continue
		}
		results = append(results, s)
	}
	return results
}

// ListSkills returns the cached metadata listing, scanning the roots
// the first time it is used.
func (c *Client) ListSkills(ctx context.Context) []*skill.Metadata {
	c.ensureMetadata(ctx)
	return c.metadata
}

// ValidateSkill checks the named skill's bundle and reports every
// problem found. The error is non-nil only when the name does not
// resolve to a bundle at all.
func (c *Client) ValidateSkill(ctx context.Context, name string) (bool, []string, error) {
	path, found := c.discovery.FindSkillPath(ctx, name)
	if !found {
		return false, nil, &skill.NotFoundError{Name: name, SearchedRoots: c.roots}
	}
	ok, problems := c.parser.Validate(path)
	return ok, problems, nil
}

// ReloadSkills drops every cached skill and refreshes the metadata
// cache with a new scan. Instances handed out earlier keep their old
// contents; subsequent loads parse fresh from disk.
func (c *Client) ReloadSkills(ctx context.Context) []discovery.Diagnostic {
	c.skills = make(map[string]*skill.Skill)
	_, diags := c.DiscoverMetadata(ctx)
	return diags
}

func (c *Client) ensureMetadata(ctx context.Context) {
	if !c.scanned {
		c.DiscoverMetadata(ctx)
	}
}
