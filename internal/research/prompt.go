// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/lead-research/pkg/types"
)

// analysisPromptTmpl is the single user message sent for analysis. The
// decision maker and stated needs come from the lead record.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`You are a business development analyst tasked with analyzing a new lead. Using the provided context and lead information,
create a comprehensive research report that will help in understanding and approaching this potential client.

Lead Information:
{{.Lead}}

Company Research Context:
{{.CompanyContext}}

Person Research Context:
{{.PersonContext}}

Please provide a structured analysis with the following sections:
1. Company Overview
   - Company background (founding date, location, legal status)
   - Services/Products (be specific about what they offer)
   - Market position (based on revenue, team size, and market presence)
   - Online presence (only include verifiable information like website, active social profiles)
   - Notable clients or projects (if found in the research data)

2. Decision Maker Profile ({{.Lead.Name}})
   - Professional background (verified roles and experience)
   - Role and responsibilities at the company
   - Online presence (only include active, verified profiles with meaningful information)
   - Notable achievements or mentions (only include if found in research data)

3. Opportunity Analysis
   - Alignment with provided needs ({{if .Lead.AINeeds}}{{.Lead.AINeeds}}{{else}}not stated{{end}})
   - Potential pain points based on company size and industry
   - Specific value propositions
   - Potential challenges or competitors

4. Recommended Approach
   - Key talking points
   - Specific solutions to propose
   - Relevant case studies or examples to reference

5. Risk Assessment
   - Potential obstacles
   - Competition analysis
   - Budget considerations

Important Guidelines:
- Only include information that is directly supported by the research data
- For online presence, focus on active and verifiable profiles/websites
- Do not make assumptions about social media engagement or reach
- If certain information is not found, state that it's not available rather than making assumptions

Format the response in a clear, professional manner with bullet points where appropriate.
Include relevant URLs or sources at the end of each section, but only if they are working links found in the research data.
`))

// renderPrompt executes the analysis template. Both contexts are embedded
// verbatim.
func renderPrompt(lead types.LeadInfo, companyContext, personContext string) (string, error) {
	var buf bytes.Buffer
	err := analysisPromptTmpl.Execute(&buf, struct {
		Lead           types.LeadInfo
		CompanyContext string
		PersonContext  string
	}{
		Lead:           lead,
		CompanyContext: companyContext,
		PersonContext:  personContext,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
