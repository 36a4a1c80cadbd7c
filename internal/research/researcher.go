// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers search context about a lead and synthesizes a
// sales-lead report from it.
//
// A run is strictly sequential: company lookup, person lookup, analysis.
// Each step captures its own failure in the value it returns, so a failed
// lookup degrades the analysis input instead of aborting the run.
package research

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lead-research/internal/completion"
	"github.com/pdiddy/lead-research/pkg/types"
)

const (
	companyMaxResults = 7
	personMaxResults  = 5

	analysisTemperature = 0.4
	analysisMaxTokens   = 4000
)

// Error prefixes used when a step's failure is rendered as text.
const (
	CompanyErrorPrefix  = "Error retrieving company information: "
	PersonErrorPrefix   = "Error retrieving person information: "
	AnalysisErrorPrefix = "Error analyzing research data: "
)

// SearchClient is the search capability the researcher depends on.
// *tavily.Client satisfies it.
type SearchClient interface {
	CompanyInfo(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error)
	SearchContext(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error)
}

// Context is the outcome of one lookup: either the payload returned by the
// search service, or the error that replaced it.
type Context struct {
	Payload string
	Err     error

	prefix string
}

// Degraded reports whether the lookup failed.
func (c Context) Degraded() bool { return c.Err != nil }

// String returns the payload, or the prefixed error text for a failed lookup.
func (c Context) String() string {
	if c.Err != nil {
		return c.prefix + c.Err.Error()
	}
	return c.Payload
}

// Report is the outcome of the analysis step.
type Report struct {
	Text string
	Err  error
}

// Degraded reports whether the analysis failed.
func (r Report) Degraded() bool { return r.Err != nil }

// String returns the report text, or the prefixed error text on failure.
func (r Report) String() string {
	if r.Err != nil {
		return AnalysisErrorPrefix + r.Err.Error()
	}
	return r.Text
}

// Options configures a Researcher. Zero values are usable.
type Options struct {
	// Model names the chat model; empty defers to the completer's default.
	Model string

	// Out receives progress lines. Nil discards them.
	Out io.Writer

	// Logger receives structured diagnostics. Nil disables them.
	Logger *zap.Logger
}

// Researcher runs the three research operations. It holds only read-only
// references to its clients.
type Researcher struct {
	search    SearchClient
	completer completion.Completer
	model     string
	out       io.Writer
	log       *zap.Logger
}

// NewResearcher returns a Researcher using the given clients.
func NewResearcher(search SearchClient, completer completion.Completer, opts Options) *Researcher {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Researcher{
		search:    search,
		completer: completer,
		model:     opts.Model,
		out:       out,
		log:       log,
	}
}

// ResearchCompany looks up companyName, disambiguated by domain when given.
func (r *Researcher) ResearchCompany(ctx context.Context, companyName, domain string) Context {
	query := companyQuery(companyName, domain)
	fmt.Fprintf(r.out, "Researching company: %s...\n", companyName)

	start := time.Now()
	payload, err := r.search.CompanyInfo(ctx, query, types.DepthAdvanced, companyMaxResults)
	log := r.log.With(zap.String("step", "company"), zap.String("query", query), zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		fmt.Fprintf(r.out, "Error researching company: %v\n", err)
		log.Warn("company lookup failed", zap.Error(err))
		return Context{Err: err, prefix: CompanyErrorPrefix}
	}
	log.Debug("company lookup complete", zap.Int("bytes", len(payload)))
	return Context{Payload: payload, prefix: CompanyErrorPrefix}
}

// ResearchPerson looks up name, narrowed by company and email when given.
func (r *Researcher) ResearchPerson(ctx context.Context, name, company, email string) Context {
	query := personQuery(name, company, email)
	fmt.Fprintf(r.out, "Researching person: %s...\n", name)

	start := time.Now()
	payload, err := r.search.SearchContext(ctx, query, types.DepthAdvanced, personMaxResults)
	log := r.log.With(zap.String("step", "person"), zap.String("query", query), zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		fmt.Fprintf(r.out, "Error researching person: %v\n", err)
		log.Warn("person lookup failed", zap.Error(err))
		return Context{Err: err, prefix: PersonErrorPrefix}
	}
	log.Debug("person lookup complete", zap.Int("bytes", len(payload)))
	return Context{Payload: payload, prefix: PersonErrorPrefix}
}

// AnalyzeResearch asks the completer for a report built from both contexts
// and the lead. Degraded contexts are embedded as their error text.
func (r *Researcher) AnalyzeResearch(ctx context.Context, company, person Context, lead types.LeadInfo) Report {
	report := r.analyze(ctx, company, person, lead)
	if report.Err != nil {
		fmt.Fprintf(r.out, "%s\n", report.String())
		r.log.Warn("analysis failed", zap.Error(report.Err))
	}
	return report
}

func (r *Researcher) analyze(ctx context.Context, company, person Context, lead types.LeadInfo) Report {
	prompt, err := renderPrompt(lead, company.String(), person.String())
	if err != nil {
		return Report{Err: fmt.Errorf("rendering prompt: %w", err)}
	}

	fmt.Fprintln(r.out, "Analyzing research data...")

	start := time.Now()
	text, err := r.completer.Complete(ctx, completion.Request{
		Model:       r.model,
		Messages:    []completion.Message{{Role: completion.RoleUser, Content: prompt}},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return Report{Err: err}
	}
	r.log.Debug("analysis complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("report_bytes", len(text)))
	return Report{Text: text}
}

// companyQuery builds "Information about {name}" with " ({domain})" appended
// when domain is non-empty.
func companyQuery(name, domain string) string {
	q := "Information about " + name
	if domain != "" {
		q += " (" + domain + ")"
	}
	return q
}

// personQuery builds "Information about {name}", then " at {company}" and
// " {email}", each only when non-empty.
func personQuery(name, company, email string) string {
	q := "Information about " + name
	if company != "" {
		q += " at " + company
	}
	if email != "" {
		q += " " + email
	}
	return q
}
