// Package config loads and validates program input files. YAML is the
// primary format; files ending in .json are decoded with goccy/go-json.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/quotetool/towercalc/internal/calculation"
	"github.com/quotetool/towercalc/internal/domain"
)

// InputParser handles parsing of program input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML or JSON file and
// validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var cfg domain.Configuration
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		if err := gojson.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateConfiguration validates a loaded configuration. Incompleteness
// (missing premiums, unresolved dates) is allowed; only structurally
// invalid input is rejected.
func (ip *InputParser) ValidateConfiguration(cfg *domain.Configuration) error {
	structure := &cfg.Program.Structure

	for i, raw := range structure.Tower {
		if err := ip.validateLayer(i, raw); err != nil {
			return fmt.Errorf("layer %d validation failed: %w", i, err)
		}
	}

	tower := calculation.NormalizeTower(structure.Tower)
	if err := calculation.ValidateTower(tower); err != nil {
		return err
	}

	policyTerm := calculation.EffectiveTerm(nil, structure, cfg.Program.Submission)
	blocks := calculation.DateBlocks(tower, policyTerm.Start)
	if err := calculation.ValidateDateBlocks(blocks, policyTerm.End); err != nil {
		return err
	}

	for i, s := range structure.Sublimits {
		if err := ip.validateSublimit(i, s); err != nil {
			return fmt.Errorf("sublimit %d (%s) validation failed: %w", i, s.Coverage, err)
		}
	}
	return nil
}

func (ip *InputParser) validateLayer(index int, raw domain.RawLayer) error {
	if raw.Limit.IsNegative() {
		return fmt.Errorf("limit cannot be negative")
	}
	if raw.QuotaShare != nil && raw.QuotaShare.IsNegative() {
		return fmt.Errorf("quota share cannot be negative")
	}
	if raw.PremiumBasis != "" && !raw.PremiumBasis.Valid() {
		return fmt.Errorf("unknown premium basis %q", raw.PremiumBasis)
	}
	if raw.TermEnd != nil && raw.TermStart == nil {
		return fmt.Errorf("term_end requires term_start")
	}
	if raw.TermStart != nil && raw.TermEnd != nil && !raw.TermEnd.After(*raw.TermStart) {
		return fmt.Errorf("term_end must be after term_start")
	}
	return nil
}

func (ip *InputParser) validateSublimit(index int, s domain.Sublimit) error {
	if s.Coverage == "" {
		return fmt.Errorf("coverage name is required")
	}
	if s.Treatment != "" && !s.Treatment.Valid() {
		return fmt.Errorf("unknown treatment %q", s.Treatment)
	}
	if s.PrimaryLimit.IsNegative() {
		return fmt.Errorf("primary limit cannot be negative")
	}
	return nil
}
