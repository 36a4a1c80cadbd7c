// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lead-research pipeline.
package types

import (
	"fmt"
	"strings"
)

// LeadInfo is the prospective contact a research run is about. It is
// constructed once per run and never mutated afterwards.
type LeadInfo struct {
	// Name is the decision maker's full name.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Email is the contact address; it is appended to the person query.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// Company is the company name as the lead entered it.
	Company string `json:"company" yaml:"company" mapstructure:"company"`

	// Domain disambiguates the company query (e.g. "tna.associates").
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty" mapstructure:"domain"`

	// Position is the lead's stated role at the company.
	Position string `json:"position" yaml:"position" mapstructure:"position"`

	// Revenue is the self-reported revenue bracket (e.g. "more_than_$1m/yr").
	Revenue string `json:"revenue" yaml:"revenue" mapstructure:"revenue"`

	// TeamSize is the self-reported team size bracket (e.g. "5-25").
	TeamSize string `json:"team_size" yaml:"team_size" mapstructure:"team_size"`

	// AINeeds is the free-text description of what the lead wants built.
	AINeeds string `json:"ai_needs" yaml:"ai_needs" mapstructure:"ai_needs"`

	IsMarketingAgency bool `json:"is_marketing_agency" yaml:"is_marketing_agency" mapstructure:"is_marketing_agency"`
}

// DefaultLead returns the demo lead used when no lead file or config
// section is supplied.
func DefaultLead() LeadInfo {
	return LeadInfo{
		Name:              "Nicholas Delgado",
		Email:             "Nicholas@tna.associates",
		Company:           "TNA associates",
		Domain:            "tna.associates",
		Position:          "Owner",
		Revenue:           "more_than_$1m/yr",
		TeamSize:          "5-25",
		AINeeds:           "Integrate with our PM system to expedite the delivery of assets from inception to deployment",
		IsMarketingAgency: true,
	}
}

// Validate reports the first missing required field. Name and Company
// drive the two search queries and must be present.
func (l LeadInfo) Validate() error {
	var missing []string
	if strings.TrimSpace(l.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(l.Company) == "" {
		missing = append(missing, "company")
	}
	if len(missing) > 0 {
		return fmt.Errorf("lead is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// String renders the lead as an indented field list for the analysis prompt.
func (l LeadInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- name: %s\n", l.Name)
	fmt.Fprintf(&b, "- email: %s\n", l.Email)
	fmt.Fprintf(&b, "- company: %s\n", l.Company)
	if l.Domain != "" {
		fmt.Fprintf(&b, "- domain: %s\n", l.Domain)
	}
	fmt.Fprintf(&b, "- position: %s\n", l.Position)
	fmt.Fprintf(&b, "- revenue: %s\n", l.Revenue)
	fmt.Fprintf(&b, "- team_size: %s\n", l.TeamSize)
	fmt.Fprintf(&b, "- ai_needs: %s\n", l.AINeeds)
	fmt.Fprintf(&b, "- is_marketing_agency: %t", l.IsMarketingAgency)
	return b.String()
}
