// Package config loads storylint configuration from YAML, validating it
// against an embedded JSON schema before merging it over the engine defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/storylint/pkg/application"
	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

// DefaultFileName is the config file storylint looks for in the working
// directory.
const DefaultFileName = ".storylint.yaml"

// WebhookEndpoint configures one outgoing notification target.
type WebhookEndpoint struct {
	Name    string `yaml:"name" json:"name"`
	URL     string `yaml:"url" json:"url"`
	Secret  string `yaml:"secret,omitempty" json:"secret,omitempty"`
	Enabled bool   `yaml:"enabled" json:"enabled"`

	// OnlyBelow limits delivery to reports whose readiness rating is below
	// this value. Zero delivers every report.
	OnlyBelow int `yaml:"only_below,omitempty" json:"only_below,omitempty"`
}

// File is the on-disk configuration shape. Every scoring field is optional;
// absent fields keep their engine defaults.
type File struct {
	Scoring  scoringOverrides        `yaml:"scoring" json:"scoring"`
	Webhooks []WebhookEndpoint       `yaml:"webhooks" json:"webhooks"`
	Jira     *application.JiraConfig `yaml:"jira,omitempty" json:"jira,omitempty"`
}

type scoringOverrides struct {
	FormatPattern string `yaml:"format_pattern,omitempty" json:"format_pattern,omitempty"`

	ShortStoryLength *int `yaml:"short_story_length,omitempty" json:"short_story_length,omitempty"`
	LongStoryLength  *int `yaml:"long_story_length,omitempty" json:"long_story_length,omitempty"`
	MaxCriteriaCount *int `yaml:"max_criteria_count,omitempty" json:"max_criteria_count,omitempty"`

	AmbiguousKeywords  []string `yaml:"ambiguous_keywords,omitempty" json:"ambiguous_keywords,omitempty"`
	DependencyKeywords []string `yaml:"dependency_keywords,omitempty" json:"dependency_keywords,omitempty"`
	TechnicalKeywords  []string `yaml:"technical_keywords,omitempty" json:"technical_keywords,omitempty"`
	TestableKeywords   []string `yaml:"testable_keywords,omitempty" json:"testable_keywords,omitempty"`

	Bands []scoring.ReadinessBand `yaml:"bands,omitempty" json:"bands,omitempty"`
}

// schemaJSON constrains the config file shape. Validation runs on the YAML
// converted to JSON, so YAML typos fail loudly instead of silently keeping
// defaults.
const schemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "scoring": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format_pattern": {"type": "string"},
        "short_story_length": {"type": "integer", "minimum": 0},
        "long_story_length": {"type": "integer", "minimum": 0},
        "max_criteria_count": {"type": "integer", "minimum": 1},
        "ambiguous_keywords": {"type": "array", "items": {"type": "string"}},
        "dependency_keywords": {"type": "array", "items": {"type": "string"}},
        "technical_keywords": {"type": "array", "items": {"type": "string"}},
        "testable_keywords": {"type": "array", "items": {"type": "string"}},
        "bands": {
          "type": "array",
          "items": {
            "type": "object",
            "additionalProperties": false,
            "required": ["threshold", "label", "summary"],
            "properties": {
              "threshold": {"type": "integer", "minimum": 0, "maximum": 100},
              "label": {"type": "string"},
              "summary": {"type": "string"}
            }
          }
        }
      }
    },
    "webhooks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "url"],
        "properties": {
          "name": {"type": "string"},
          "url": {"type": "string"},
          "secret": {"type": "string"},
          "enabled": {"type": "boolean"},
          "only_below": {"type": "integer", "minimum": 0, "maximum": 100}
        }
      }
    },
    "jira": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "domain": {"type": "string"},
        "project_key": {"type": "string"},
        "email": {"type": "string"},
        "api_token": {"type": "string"}
      }
    }
  }
}`

// Load reads and validates the config file at path, returning the scoring
// config with overrides applied plus the rest of the file. A missing file is
// not an error: defaults are returned.
func Load(path string) (scoring.Config, *File, error) {
	cfg := scoring.DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, &File{}, nil
		}
		return cfg, nil, fmt.Errorf("read config file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, &File{}, nil
	}

	if err := validate(data); err != nil {
		return cfg, nil, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := apply(&cfg, file.Scoring); err != nil {
		return cfg, nil, err
	}
	return cfg, &file, nil
}

func validate(yamlData []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(yamlData, &doc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func apply(cfg *scoring.Config, o scoringOverrides) error {
	if o.FormatPattern != "" {
		matcher, err := story.NewMatcher(o.FormatPattern)
		if err != nil {
			return fmt.Errorf("invalid format_pattern: %w", err)
		}
		cfg.Matcher = matcher
	}
	if o.ShortStoryLength != nil {
		cfg.ShortStoryLength = *o.ShortStoryLength
	}
	if o.LongStoryLength != nil {
		cfg.LongStoryLength = *o.LongStoryLength
	}
	if o.MaxCriteriaCount != nil {
		cfg.MaxCriteriaCount = *o.MaxCriteriaCount
	}
	if len(o.AmbiguousKeywords) > 0 {
		cfg.AmbiguousKeywords = o.AmbiguousKeywords
	}
	if len(o.DependencyKeywords) > 0 {
		cfg.DependencyKeywords = o.DependencyKeywords
	}
	if len(o.TechnicalKeywords) > 0 {
		cfg.TechnicalKeywords = o.TechnicalKeywords
	}
	if len(o.TestableKeywords) > 0 {
		cfg.TestableKeywords = o.TestableKeywords
	}
	if len(o.Bands) > 0 {
		if o.Bands[len(o.Bands)-1].Threshold != 0 {
			return fmt.Errorf("invalid config: the last readiness band must have threshold 0")
		}
		cfg.Bands = o.Bands
	}
	return nil
}

// WriteDefault writes a commented starter config to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	starter := `# storylint configuration
scoring: {}
  # short_story_length: 25
  # long_story_length: 200
  # max_criteria_count: 7
  # ambiguous_keywords: ["should", "could", "might", "etc.", "and/or"]

webhooks: []
  # - name: team-alerts
  #   url: https://hooks.example.com/storylint
  #   enabled: true
  #   only_below: 71

# jira:
#   domain: your-site.atlassian.net
#   project_key: WEB
#   email: you@example.com
#   api_token: ${JIRA_API_TOKEN}
`
	if err := os.WriteFile(path, []byte(starter), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
