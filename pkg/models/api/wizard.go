package api

type Session struct {
	ID             string `json:"id"`
	TaxYear        int    `json:"tax_year"`
	CatalogVersion string `json:"catalog_version"`
	Step           string `json:"step"`
}

type Question struct {
	ID        string   `json:"id"`
	Prompt    string   `json:"prompt"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	Options   []string `json:"options,omitempty"`
	Documents []string `json:"documents,omitempty"`
}

type RequirementsDelta struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

type QuestionnaireState struct {
	Visible           []Question         `json:"visible"`
	RequiredDocuments []string           `json:"required_documents"`
	StepComplete      bool               `json:"step_complete"`
	Pending           *RequirementsDelta `json:"pending,omitempty"`
}

type RequirementsState struct {
	Snapshot []string           `json:"snapshot"`
	Current  []string           `json:"current"`
	Pending  *RequirementsDelta `json:"pending,omitempty"`
}

type FieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Schedule string         `json:"schedule"`
	Section  string         `json:"section"`
	IsValid  bool           `json:"is_valid"`
	Errors   []FieldMessage `json:"errors,omitempty"`
	Warnings []FieldMessage `json:"warnings,omitempty"`
}

type CapitalTotals struct {
	Proceeds  float64 `json:"proceeds"`
	CostBasis float64 `json:"cost_basis"`
	GainLoss  float64 `json:"gain_loss"`
}

type PropertyTotals struct {
	Address   string  `json:"address"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
}

type ScheduleTotals struct {
	Schedule      string           `json:"schedule"`
	GrossIncome   float64          `json:"gross_income"`
	TotalExpenses float64          `json:"total_expenses"`
	Net           float64          `json:"net"`
	SETaxBase     float64          `json:"se_tax_base,omitempty"`
	SETax         float64          `json:"se_tax,omitempty"`
	ShortTerm     *CapitalTotals   `json:"short_term,omitempty"`
	LongTerm      *CapitalTotals   `json:"long_term,omitempty"`
	Properties    []PropertyTotals `json:"properties,omitempty"`
}

type Form1040 struct {
	TaxYear             int     `json:"tax_year"`
	BusinessIncome      float64 `json:"business_income"`
	CapitalGainLoss     float64 `json:"capital_gain_loss"`
	RentalIncome        float64 `json:"rental_income"`
	FarmIncome          float64 `json:"farm_income"`
	TotalIncome         float64 `json:"total_income"`
	SelfEmploymentTax   float64 `json:"self_employment_tax"`
	Adjustments         float64 `json:"adjustments"`
	AdjustedGrossIncome float64 `json:"adjusted_gross_income"`
	Finalized           bool    `json:"finalized"`
}

type ScheduleState struct {
	Totals     ScheduleTotals     `json:"totals"`
	Validation []ValidationResult `json:"validation"`
	Aggregate  Form1040           `json:"aggregate"`
}

type StepState struct {
	Step         string   `json:"step"`
	StepComplete bool     `json:"step_complete"`
	Aggregate    Form1040 `json:"aggregate"`
}

type Error struct {
	Error string `json:"error"`
}
