// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/lead-research/pkg/types"
)

// Banner precedes the report in the run output.
const Banner = "=== LEAD RESEARCH REPORT ==="

// Outcome records every intermediate value of one run.
type Outcome struct {
	Lead    types.LeadInfo
	Company Context
	Person  Context
	Report  Report
}

// Run researches lead end to end and writes the report under Banner to w.
// Lookup failures never short-circuit the analysis; the only error Run
// returns is an invalid lead or a failed write to w.
func Run(ctx context.Context, r *Researcher, lead types.LeadInfo, w io.Writer) (Outcome, error) {
	if err := lead.Validate(); err != nil {
		return Outcome{}, err
	}

	company := r.ResearchCompany(ctx, lead.Company, lead.Domain)
	person := r.ResearchPerson(ctx, lead.Name, lead.Company, lead.Email)
	report := r.AnalyzeResearch(ctx, company, person, lead)

	out := Outcome{
		Lead:    lead,
		Company: company,
		Person:  person,
		Report:  report,
	}

	if _, err := fmt.Fprintf(w, "\n%s\n\n%s\n", Banner, report.String()); err != nil {
		return out, fmt.Errorf("writing report: %w", err)
	}
	return out, nil
}
