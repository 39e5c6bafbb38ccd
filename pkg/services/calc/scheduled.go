package calc

import (
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

type scheduleD struct{}

// NewScheduleD builds the Schedule D (capital gains) calculator.
func NewScheduleD() Calculator {
	return &scheduleD{}
}

func (c *scheduleD) ScheduleType() domain.ScheduleType { return domain.ScheduleD }

func (c *scheduleD) Calculate(data domain.ScheduleData) domain.ScheduleTotals {
	d, ok := data.(*domain.ScheduleDData)
	if !ok {
		panic(fmt.Sprintf("schedule D calculator received %T", data))
	}

	short := collectionTotals(d.ShortTerm)
	long := collectionTotals(d.LongTerm)

	return domain.ScheduleTotals{
		Schedule:      domain.ScheduleD,
		GrossIncome:   short.Proceeds + long.Proceeds,
		TotalExpenses: short.CostBasis + long.CostBasis,
		Net:           short.GainLoss + long.GainLoss,
		ShortTerm:     &short,
		LongTerm:      &long,
	}
}

// collectionTotals sums proceeds, basis, and gain/loss elementwise. An empty
// collection yields all-zero totals.
func collectionTotals(transactions []domain.CapitalTransaction) domain.CapitalTotals {
	var totals domain.CapitalTotals
	for _, t := range transactions {
		totals.Proceeds += t.Proceeds
		totals.CostBasis += t.CostBasis
		totals.GainLoss += t.Proceeds - t.CostBasis
	}
	return totals
}
