// Package config loads and validates the site configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/util/sets"
)

// DefaultIgnores are skipped at every tree depth in addition to any names the
// configuration lists. They cover VCS internals and Obsidian's own state.
var DefaultIgnores = []string{".DS_Store", "private", ".obsidian", ".github", ".git", ".gitignore"}

// Config represents the application configuration.
type Config struct {
	// Source is the vault directory holding the Markdown notes.
	Source string `yaml:"source"`
	// Output is where the generated site is written.
	Output string `yaml:"output"`

	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url"`

	// TemplateDir optionally overrides the embedded templates.
	TemplateDir string `yaml:"template_dir,omitempty"`

	// Recent is how many entries the index page and the feeds surface.
	Recent int `yaml:"recent"`

	// UseGitTimes selects version-control history as the timestamp source for
	// pages without frontmatter dates.
	UseGitTimes bool `yaml:"use_git_times"`

	// Ignore extends DefaultIgnores; exact base-name match at any depth.
	Ignore []string `yaml:"ignore,omitempty"`

	// Feeds maps a feed name to a directory segment; each entry produces a
	// {name}.atom.xml scoped to the first matching subtree.
	Feeds map[string]string `yaml:"feeds,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// .env is optional; its variables feed the ${VAR} expansion below.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "./output"
	}
	if c.Title == "" {
		c.Title = "Notes"
	}
	if c.Recent == 0 {
		c.Recent = 15
	}
}

// Validate checks the parts that cannot default.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("config: source directory is required")
	}
	if c.Recent < 0 {
		return fmt.Errorf("config: recent must be positive, got %d", c.Recent)
	}
	for name, dir := range c.Feeds {
		if name == "" || dir == "" {
			return fmt.Errorf("config: feed entries need both a name and a directory")
		}
	}
	return nil
}

// IgnoreSet merges the default and configured ignore names.
func (c *Config) IgnoreSet() sets.Set[string] {
	s := sets.New(DefaultIgnores...)
	for _, name := range c.Ignore {
		s.Add(name)
	}
	return s
}

const starterConfig = `# notesite configuration
source: ~/notes          # vault directory
output: ./output
title: My Notes
base_url: https://notes.example

# how many entries the index page and feeds show
recent: 15

# take created/updated times from git history instead of file metadata
use_git_times: false

# extra names to skip, at any depth (VCS and Obsidian internals are always skipped)
# ignore:
#   - attic

# scoped feeds: one {name}.atom.xml per entry, limited to the named subtree
# feeds:
#   work: Projects
`

// Init writes a starter configuration file, refusing to overwrite an
// existing one unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
