package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/splicelang/splice/core/invariant"
)

// DefaultConfigFile is looked up in the working directory when no
// --config flag is given.
const DefaultConfigFile = ".splice.yaml"

// configSchema constrains .splice.yaml before decoding; a schema
// violation names the offending field where a decode error would not.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "requires": {"type": "string"},
    "inputs": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "output": {"type": "string"},
    "format": {"type": "boolean"}
  }
}`

var compiledConfigSchema = compileConfigSchema()

func compileConfigSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	err := compiler.AddResource("schema://splice-config.json", strings.NewReader(configSchema))
	invariant.ExpectNoError(err, "config schema resource")
	schema, err := compiler.Compile("schema://splice-config.json")
	invariant.ExpectNoError(err, "config schema compilation")
	return schema
}

// Config is the project configuration read from .splice.yaml. The
// zero value works: no inputs, formatting on, outputs beside their
// templates.
type Config struct {
	Requires string   `yaml:"requires"` // minimum splice version, e.g. v0.3.0
	Inputs   []string `yaml:"inputs"`   // template globs used when gen gets no arguments
	Output   string   `yaml:"output"`   // directory generated files are written to
	Format   *bool    `yaml:"format"`   // gofmt the output; unset means on
}

// FormatEnabled reports whether generated output goes through gofmt.
func (c *Config) FormatEnabled() bool {
	return c.Format == nil || *c.Format
}

// LoadConfig reads path, or DefaultConfigFile when path is empty. A
// missing default file yields the zero config; a missing explicit
// path is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig validates one config document against the schema,
// decodes it and enforces its version requirement.
func ParseConfig(path string, data []byte) (*Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if raw == nil {
		return &Config{}, nil
	}
	if err := compiledConfigSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.checkRequires(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// checkRequires enforces the config's minimum splice version against
// the running one.
func (c *Config) checkRequires() error {
	if c.Requires == "" {
		return nil
	}
	required := c.Requires
	if !strings.HasPrefix(required, "v") {
		// semver.IsValid requires the "v" prefix (e.g. "v1.2.3")
		required = "v" + required
	}
	if !semver.IsValid(required) {
		return fmt.Errorf("requires %q is not a valid semantic version", c.Requires)
	}
	if semver.Compare(Version, required) < 0 {
		return fmt.Errorf("config requires splice %s or newer, this is %s", required, Version)
	}
	return nil
}
