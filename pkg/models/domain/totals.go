package domain

// CapitalTotals is the elementwise sum over a transaction collection.
type CapitalTotals struct {
	Proceeds  float64
	CostBasis float64
	GainLoss  float64
}

type PropertyTotals struct {
	Address   string
	Income    float64
	Expenses  float64
	NetIncome float64
}

// ScheduleTotals is the derived output of a schedule calculator. It is
// recomputed fully on every change to the owning schedule data, never
// partially patched. Net may be negative; SETax is floored at zero.
type ScheduleTotals struct {
	Schedule      ScheduleType
	GrossIncome   float64
	TotalExpenses float64
	Net           float64
	SETaxBase     float64
	SETax         float64

	// Schedule D only.
	ShortTerm *CapitalTotals
	LongTerm  *CapitalTotals

	// Schedule E only.
	Properties []PropertyTotals
}

// TaxConstants are the standard constants pinned per tax year.
type TaxConstants struct {
	TaxYear             int
	StandardMileageRate float64
	SENetEarningsFactor float64
	SETaxRate           float64
}

// Form1040Aggregate rolls the active schedules' net results into the
// return-level figures. Finalized is set when the user reaches review;
// a finalized aggregate rejects further schedule mutations until the
// user navigates back.
type Form1040Aggregate struct {
	TaxYear             int
	BusinessIncome      float64
	CapitalGainLoss     float64
	RentalIncome        float64
	FarmIncome          float64
	TotalIncome         float64
	SelfEmploymentTax   float64
	Adjustments         float64
	AdjustedGrossIncome float64
	Finalized           bool
}
