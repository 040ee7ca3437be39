package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fjacquet/finassist/internal/categorizer"
)

// ErrNoRules is returned for a rules file that defines no rules.
var ErrNoRules = errors.New("rules file defines no rules")

// RuleStore loads keyword rule overrides from a YAML file of the form
//
//	rules:
//	  - category: Food & Dining
//	    keywords: [starbucks, bakery]
//
// Rule order in the file is the matching precedence.
type RuleStore struct {
	File string
}

// NewRuleStore creates a RuleStore for file.
func NewRuleStore(file string) *RuleStore {
	return &RuleStore{File: file}
}

type rulesFile struct {
	Rules []categorizer.Rule `yaml:"rules"`
}

// LoadRules reads and validates the rules. An empty File means no override
// and returns nil, nil.
func (s *RuleStore) LoadRules() ([]categorizer.Rule, error) {
	if s == nil || s.File == "" {
		return nil, nil
	}

	path, err := FindFile(s.File)
	if err != nil {
		return nil, &LoadError{Path: s.File, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var parsed rulesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("decode yaml: %w", err)}
	}
	if len(parsed.Rules) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoRules}
	}
	if err := categorizer.ValidateRules(parsed.Rules); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return parsed.Rules, nil
}
