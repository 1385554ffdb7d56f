// Package report renders a decided review as a markdown decision worksheet,
// with optional HTML conversion for hosting tooling. Rendering rounds for
// display only; the underlying result stays exact.
package report

import (
	"fmt"
	"strings"

	"gopanel/domain/committee"
	"gopanel/internal/aggregate"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Worksheet pairs a review's inputs with its derived result for rendering
type Worksheet struct {
	Subject string
	Input   *committee.ReviewInput
	Result  *aggregate.Result
}

// RenderMarkdown writes the decision worksheet as markdown
func RenderMarkdown(w Worksheet) string {
	var b strings.Builder
	r := w.Result

	fmt.Fprintf(&b, "# Decision Worksheet: %s\n\n", w.Subject)
	fmt.Fprintf(&b, "- Review level: %s (%s)\n", r.Level, r.Method)
	fmt.Fprintf(&b, "- Experts: %d\n", r.N)
	fmt.Fprintf(&b, "- Correlation class: %s", r.Correlation)
	if r.CorrelationDefaulted {
		b.WriteString(" (defaulted)")
	}
	b.WriteString("\n\n")

	b.WriteString("## Scores\n\n")
	b.WriteString("| Expert | Domain | Angle | Score |\n")
	b.WriteString("|--------|--------|-------|-------|\n")
	for _, s := range w.Input.Scores {
		domain := committee.DomainCategory("")
		if e, ok := w.Input.ExpertByID(s.ExpertID); ok {
			domain = e.Domain
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", s.ExpertID, domain, s.AngleID, s.RawScore)
	}
	b.WriteString("\n")

	b.WriteString("## Derived statistics\n\n")
	b.WriteString("| Quantity | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| Weighted mean S | %.2f |\n", r.WeightedMean)
	fmt.Fprintf(&b, "| Sigma (biased) | %.2f |\n", r.SigmaBiased)
	fmt.Fprintf(&b, "| Sigma (corrected) | %.2f |\n", r.SigmaCorrected)
	fmt.Fprintf(&b, "| Enhanced score | %.2f |\n", r.EnhancedScore)
	fmt.Fprintf(&b, "| Standard error | %.2f |\n", r.StandardError)
	fmt.Fprintf(&b, "| 95%% CI | [%.2f, %.2f] |\n", r.CI.Low, r.CI.High)
	fmt.Fprintf(&b, "| Information sufficiency | %.2f |\n", r.InformationSufficiency)
	fmt.Fprintf(&b, "| Score range | %.0f |\n", r.Diagnostics.ScoreRange)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Verdict: %s\n\n", r.Verdict.Display())
	fmt.Fprintf(&b, "Rule fired: `%s`\n", r.RuleFired)

	if len(r.Dissents) > 0 {
		b.WriteString("\n## Dissent\n\n")
		for _, d := range r.Dissents {
			fmt.Fprintf(&b, "- Expert %s (%s): mean %.2f, deviation %+.2f from committee mean\n",
				d.ExpertID, d.Domain, d.MeanScore, d.Deviation)
		}
	}

	fmt.Fprintf(&b, "\n---\n\nTables: %s | Fingerprint: `%s`\n", r.TableVersion, r.Fingerprint)
	return b.String()
}

// RenderHTML converts the markdown worksheet to a standalone HTML fragment
func RenderHTML(w Worksheet) []byte {
	md := RenderMarkdown(w)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
