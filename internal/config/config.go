package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full run configuration. Every field has a built-in
// default so a config file is optional; a file overlays only the
// sections it mentions.
type Config struct {
	// Columns maps the logical fields to input column headers.
	Columns ColumnConfig `yaml:"columns"`

	// Activity controls how activity tickets are identified and typed.
	Activity ActivityConfig `yaml:"activity"`

	// Units maps duration unit letters to hour weights. The workday
	// assumption (d=8) lives here so it stays adjustable.
	Units map[string]float64 `yaml:"units"`

	// Output controls sheet names and derived column headers.
	Output OutputConfig `yaml:"output"`
}

// ColumnConfig names the input columns consumed by the pipeline.
// Unrecognized columns are passed through unchanged.
type ColumnConfig struct {
	Key         string `yaml:"key"`
	Parent      string `yaml:"parent"`
	Linked      string `yaml:"linked"`
	WorkType    string `yaml:"work_type"`
	ActivityTag string `yaml:"activity_tag"`
	Duration    string `yaml:"duration"`
	Assignee    string `yaml:"assignee"`
	Mob         string `yaml:"mob"`
}

// ActivityConfig identifies the distinguished activity tickets.
type ActivityConfig struct {
	// KeyPrefix is the identifying key prefix of activity tickets.
	KeyPrefix string `yaml:"key_prefix"`

	// WorkType is the work-type value of activity tickets.
	WorkType string `yaml:"work_type"`

	// SupportTag is the activity tag whose contributors are typed
	// "Support"; every other tag yields "Core".
	SupportTag string `yaml:"support_tag"`
}

// OutputConfig names the output sheets and derived columns.
type OutputConfig struct {
	ResultsSheet     string `yaml:"results_sheet"`
	TransformedSheet string `yaml:"transformed_sheet"`
	SummarySheet     string `yaml:"summary_sheet"`

	DerivedTagColumn   string `yaml:"derived_tag_column"`
	DerivedHoursColumn string `yaml:"derived_hours_column"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Columns: ColumnConfig{
			Key:         "Key",
			Parent:      "Parent",
			Linked:      "Linked Items",
			WorkType:    "Work Type",
			ActivityTag: "Activity",
			Duration:    "Time Spent",
			Assignee:    "Assignee",
			Mob:         "Mob",
		},
		Activity: ActivityConfig{
			KeyPrefix:  "MAP-",
			WorkType:   "Idea",
			SupportTag: "Platform",
		},
		Units: map[string]float64{
			"d": 8,
			"h": 1,
			"m": 1.0 / 60,
		},
		Output: OutputConfig{
			ResultsSheet:       "Results",
			TransformedSheet:   "Transformed Data",
			SummarySheet:       "Project Summary",
			DerivedTagColumn:   "Derived Activity",
			DerivedHoursColumn: "Sum WIP Hours",
		},
	}
}

// Load reads a YAML config file and overlays it onto the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	required := map[string]string{
		"columns.key":       c.Columns.Key,
		"columns.parent":    c.Columns.Parent,
		"columns.linked":    c.Columns.Linked,
		"columns.work_type": c.Columns.WorkType,
		"columns.duration":  c.Columns.Duration,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.Activity.KeyPrefix == "" {
		return fmt.Errorf("activity.key_prefix must not be empty")
	}
	if c.Activity.WorkType == "" {
		return fmt.Errorf("activity.work_type must not be empty")
	}

	if len(c.Units) == 0 {
		return fmt.Errorf("units must define at least one unit")
	}
	for unit, weight := range c.Units {
		if weight <= 0 {
			return fmt.Errorf("unit %q has non-positive weight %v", unit, weight)
		}
	}

	return nil
}
