package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigFile is the name of the per-project settings file
const ProjectConfigFile = ".qstudio.yaml"

// ProjectConfig represents a .qstudio.yaml file in a project
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Where and how test files are written
	Export ExportConfig `yaml:"export"`

	// Formatting of generated source
	Format FormatConfig `yaml:"format,omitempty"`

	// Project tree listing
	Tree TreeConfig `yaml:"tree,omitempty"`
}

// ExportConfig holds test file export settings
type ExportConfig struct {
	// Directory under the project root that receives test files
	TestDir string `yaml:"test_dir,omitempty"`

	// Suffix appended to the chosen file name
	FileSuffix string `yaml:"file_suffix,omitempty"`

	// Abort the export when the generated source cannot be formatted
	// instead of writing it unformatted
	StrictFormat bool `yaml:"strict_format,omitempty"`

	// Stage written test files in the project's git index
	GitAdd bool `yaml:"git_add,omitempty"`
}

// FormatConfig holds formatter overrides
type FormatConfig struct {
	IndentSize int `yaml:"indent_size,omitempty"`
}

// TreeConfig holds project tree settings
type TreeConfig struct {
	// Directory names skipped while listing, in addition to hidden ones
	Exclude []string `yaml:"exclude,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version: "1.0",
		Export: ExportConfig{
			TestDir:    "__tests__",
			FileSuffix: ".test.js",
		},
		Format: FormatConfig{
			IndentSize: 2,
		},
		Tree: TreeConfig{
			Exclude: []string{"node_modules", "vendor", "coverage"},
		},
	}
}

// LoadProjectConfig loads a .qstudio.yaml from the given directory
func LoadProjectConfig(projectRoot string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectRoot, ProjectConfigFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = filepath.Join(projectRoot, ".qstudio.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .qstudio.yaml
func SaveProjectConfig(projectRoot string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(projectRoot, ProjectConfigFile), data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Export.TestDir != "" {
		c.Export.TestDir = other.Export.TestDir
	}

	if other.Export.FileSuffix != "" {
		c.Export.FileSuffix = other.Export.FileSuffix
	}

	if other.Export.StrictFormat {
		c.Export.StrictFormat = true
	}

	if other.Export.GitAdd {
		c.Export.GitAdd = true
	}

	if other.Format.IndentSize != 0 {
		c.Format.IndentSize = other.Format.IndentSize
	}

	if len(other.Tree.Exclude) > 0 {
		c.Tree.Exclude = other.Tree.Exclude
	}
}
