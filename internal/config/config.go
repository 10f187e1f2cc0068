// Package config loads and validates the study configuration and the
// two source datasets.
//
// The configuration file is YAML for authoring convenience; the
// decoded value is validated against an embedded CUE schema so that a
// malformed file fails loudly at startup instead of surfacing as a
// half-configured study.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// DefaultMaxItems bounds the canonical item list when the
// configuration does not say otherwise.
const DefaultMaxItems = 10

// Study is the full study configuration.
type Study struct {
	// BaselinePath and AdvicePath locate the two JSON source
	// datasets, loaded once at startup.
	BaselinePath string `yaml:"baseline_path" json:"baseline_path"`
	AdvicePath   string `yaml:"advice_path" json:"advice_path"`

	// LogPath locates the append-only judgment log database.
	LogPath string `yaml:"log_path" json:"log_path"`

	// MaxItems truncates the canonical item list.
	MaxItems int `yaml:"max_items" json:"max_items"`

	// Subjects is the optional curated subject allow-list; when set
	// it also fixes item order. Unmatched entries are skipped by the
	// reconciler, not rejected here: some authored lists are known to
	// contain malformed entries.
	Subjects []string `yaml:"subjects,omitempty" json:"subjects,omitempty"`
}

// Load reads, decodes, defaults, and schema-validates the study
// configuration at path.
func Load(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &Error{Code: ErrCodeNotFound, Path: path, Message: "configuration file not found"}
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeParse, Path: path, Message: err.Error()}
	}

	var study Study
	if err := yaml.Unmarshal(data, &study); err != nil {
		return nil, &Error{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("decode yaml: %v", err)}
	}

	if study.MaxItems == 0 {
		study.MaxItems = DefaultMaxItems
	}
	if study.LogPath == "" {
		study.LogPath = "results/judgments.db"
	}

	if err := validate(study); err != nil {
		return nil, &Error{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}
	return &study, nil
}

// validate unifies the configuration with the embedded CUE schema.
func validate(study Study) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.Encode(study)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
