package wizard

import (
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

// aggregate rolls the active schedules' net results into the return-level
// figures. Recomputed in full whenever any contributing schedule changes;
// finalized once the session reaches review.
func (c *controller) aggregate(s *domain.Session) domain.Form1040Aggregate {
	agg := domain.Form1040Aggregate{
		TaxYear:   s.TaxYear,
		Finalized: finalized(s.Step),
	}

	for _, data := range s.Schedules.Active() {
		totals, err := c.calc.Calculate(data)
		if err != nil {
			// Active schedules always have a registered calculator; a miss
			// here is a wiring bug surfaced at construction time.
			continue
		}
		switch totals.Schedule {
		case domain.ScheduleC:
			agg.BusinessIncome = totals.Net
			agg.SelfEmploymentTax += totals.SETax
		case domain.ScheduleD:
			agg.CapitalGainLoss = totals.Net
		case domain.ScheduleE:
			agg.RentalIncome = totals.Net
		case domain.ScheduleF:
			agg.FarmIncome = totals.Net
			agg.SelfEmploymentTax += totals.SETax
		}
	}

	agg.TotalIncome = agg.BusinessIncome + agg.CapitalGainLoss + agg.RentalIncome + agg.FarmIncome
	// Deduction for one-half of self-employment tax.
	agg.Adjustments = agg.SelfEmploymentTax / 2
	agg.AdjustedGrossIncome = agg.TotalIncome - agg.Adjustments
	return agg
}
