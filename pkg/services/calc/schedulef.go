package calc

import (
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

type scheduleF struct {
	constants ConstantsProvider
}

// NewScheduleF builds the Schedule F (farm income) calculator.
func NewScheduleF(constants ConstantsProvider) Calculator {
	return &scheduleF{constants: constants}
}

func (c *scheduleF) ScheduleType() domain.ScheduleType { return domain.ScheduleF }

func (c *scheduleF) Calculate(data domain.ScheduleData) domain.ScheduleTotals {
	d, ok := data.(*domain.ScheduleFData)
	if !ok {
		panic(fmt.Sprintf("schedule F calculator received %T", data))
	}
	consts := c.constants.Constants(d.TaxYear)

	income := sumItems(d.Income) +
		d.CooperativeDistributions +
		d.AgriculturalPayments +
		d.CommodityPayments +
		d.CropInsurance

	// Inventory adjustment per Schedule F Part III: accrual income includes
	// ending inventory less beginning inventory. Cash-method income is
	// recognized on receipt, so no adjustment applies.
	if d.AccountingMethod == domain.MethodAccrual {
		income += d.EndingInventory - d.BeginningInventory
	}

	expenses := sumItems(d.Expenses)
	net := income - expenses
	base, tax := seTax(net, consts)

	return domain.ScheduleTotals{
		Schedule:      domain.ScheduleF,
		GrossIncome:   income,
		TotalExpenses: expenses,
		Net:           net,
		SETaxBase:     base,
		SETax:         tax,
	}
}
