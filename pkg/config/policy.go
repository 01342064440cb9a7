package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"github.com/johndave090909-droid/AutoScheduler/pkg/scheduler"
	"gopkg.in/yaml.v3"
)

// Policy is the YAML form of the solver options
type Policy struct {
	Offsets        []int        `yaml:"offsets" json:"offsets"`
	Days           []models.Day `yaml:"days" json:"days"`
	LeadPolicy     string       `yaml:"lead_policy" json:"lead_policy"`
	LeadMarkers    []string     `yaml:"lead_markers" json:"lead_markers,omitempty"`
	Continuity     string       `yaml:"continuity" json:"continuity"`
	MatchLeadClass *bool        `yaml:"match_lead_class" json:"match_lead_class"`
}

// DefaultPolicy mirrors scheduler.DefaultOptions
func DefaultPolicy() Policy {
	def := scheduler.DefaultOptions()
	match := def.MatchLeadClass
	return Policy{
		Offsets:        def.Offsets,
		Days:           def.Days,
		LeadPolicy:     def.Lead.Name(),
		Continuity:     string(def.Continuity),
		MatchLeadClass: &match,
	}
}

// LoadPolicy reads a policy file. An empty path yields the default policy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML policy data, fills missing keys from the defaults and
// validates the result
func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	def := DefaultPolicy()
	if len(p.Offsets) == 0 {
		p.Offsets = def.Offsets
	}
	if len(p.Days) == 0 {
		p.Days = def.Days
	}
	if p.LeadPolicy == "" {
		p.LeadPolicy = def.LeadPolicy
	}
	if p.Continuity == "" {
		p.Continuity = def.Continuity
	}
	if p.MatchLeadClass == nil {
		p.MatchLeadClass = def.MatchLeadClass
	}
	if err := p.validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) validate() error {
	for _, d := range p.Days {
		if !slices.Contains(models.Week, d) {
			return fmt.Errorf("policy: unknown day %q", d)
		}
	}
	for i, d := range p.Days {
		if slices.Contains(p.Days[:i], d) {
			return fmt.Errorf("policy: day %q listed twice", d)
		}
	}
	switch p.LeadPolicy {
	case "flag", "substring":
	default:
		return fmt.Errorf("policy: lead_policy must be flag or substring, got %q", p.LeadPolicy)
	}
	switch scheduler.Continuity(p.Continuity) {
	case scheduler.ContinuityAllDays, scheduler.ContinuityPartial:
	default:
		return fmt.Errorf("policy: continuity must be all_days or partial, got %q", p.Continuity)
	}
	return nil
}

// Options converts the policy to scheduler options. Days are reordered into week
// order so iteration matches the calendar regardless of how the file lists them.
func (p Policy) Options() scheduler.Options {
	opts := scheduler.DefaultOptions()
	opts.Offsets = append([]int(nil), p.Offsets...)

	var days []models.Day
	for _, d := range models.Week {
		if slices.Contains(p.Days, d) {
			days = append(days, d)
		}
	}
	opts.Days = days

	if p.LeadPolicy == "substring" {
		opts.Lead = scheduler.SubstringLeadPolicy{Markers: p.LeadMarkers}
	}
	opts.Continuity = scheduler.Continuity(p.Continuity)
	if p.MatchLeadClass != nil {
		opts.MatchLeadClass = *p.MatchLeadClass
	}
	return opts
}
