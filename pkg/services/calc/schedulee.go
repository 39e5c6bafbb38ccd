package calc

import (
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

type scheduleE struct{}

// NewScheduleE builds the Schedule E (rental income) calculator.
func NewScheduleE() Calculator {
	return &scheduleE{}
}

func (c *scheduleE) ScheduleType() domain.ScheduleType { return domain.ScheduleE }

func (c *scheduleE) Calculate(data domain.ScheduleData) domain.ScheduleTotals {
	d, ok := data.(*domain.ScheduleEData)
	if !ok {
		panic(fmt.Sprintf("schedule E calculator received %T", data))
	}

	totals := domain.ScheduleTotals{Schedule: domain.ScheduleE}
	for _, p := range d.Properties {
		income := sumItems(p.Income)
		expenses := sumItems(p.Expenses)
		totals.Properties = append(totals.Properties, domain.PropertyTotals{
			Address:   p.Address,
			Income:    income,
			Expenses:  expenses,
			NetIncome: income - expenses,
		})
		totals.GrossIncome += income
		totals.TotalExpenses += expenses
	}
	totals.Net = totals.GrossIncome - totals.TotalExpenses
	return totals
}
