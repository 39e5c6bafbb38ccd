package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

// ReturnSummary is the view the console reporter renders.
type ReturnSummary struct {
	Session           domain.Session
	RequiredDocuments []domain.DocumentType
	Schedules         []domain.ScheduleTotals
	Findings          []domain.ValidationResult
	Aggregate         domain.Form1040Aggregate
}

// Reporter outputs return summaries to the console in a formatted text form.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(summary *ReturnSummary) error {
	tmpl := `
Return summary for session {{.Session.ID}} (tax year {{.Session.TaxYear}})
Step: {{.Session.Step}}  Catalog: {{.Session.CatalogVersion}}

Required documents:
{{range .RequiredDocuments}}  - {{.}}
{{else}}  (none)
{{end}}
{{range .Schedules}}
=== {{.Schedule}} ===
Gross income:   {{printf "%.2f" .GrossIncome}}
Total expenses: {{printf "%.2f" .TotalExpenses}}
Net:            {{printf "%.2f" .Net}}
{{if .SETax}}SE tax:         {{printf "%.2f" .SETax}}
{{end}}{{end}}
=== Form 1040 ===
Total income:          {{printf "%.2f" .Aggregate.TotalIncome}}
Self-employment tax:   {{printf "%.2f" .Aggregate.SelfEmploymentTax}}
Adjustments:           {{printf "%.2f" .Aggregate.Adjustments}}
Adjusted gross income: {{printf "%.2f" .Aggregate.AdjustedGrossIncome}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
