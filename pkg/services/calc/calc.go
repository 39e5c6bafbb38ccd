package calc

import (
	"errors"
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

var ErrUnknownScheduleType = errors.New("unknown schedule type")

// ConstantsProvider resolves the standard constants (mileage rate, SE tax
// factors) for a tax year. Satisfied by the rule catalog.
type ConstantsProvider interface {
	Constants(taxYear int) domain.TaxConstants
}

// Calculator derives totals from one schedule's raw line items. Calculate is
// a pure, total, idempotent function: any well-typed input yields totals,
// including zero and negative intermediate values. Only the final
// self-employment tax is floored at zero.
type Calculator interface {
	ScheduleType() domain.ScheduleType
	Calculate(data domain.ScheduleData) domain.ScheduleTotals
}

// Registry routes schedule data to the calculator for its type.
type Registry struct {
	calculators map[domain.ScheduleType]Calculator
}

// NewRegistry builds a registry from the given calculators. Duplicate
// schedule types indicate a wiring bug and fail construction.
func NewRegistry(calculators ...Calculator) (*Registry, error) {
	r := &Registry{calculators: make(map[domain.ScheduleType]Calculator)}
	for _, c := range calculators {
		st := c.ScheduleType()
		if _, exists := r.calculators[st]; exists {
			return nil, fmt.Errorf("duplicate calculator for schedule type: %s", st)
		}
		r.calculators[st] = c
	}
	if len(r.calculators) == 0 {
		return nil, fmt.Errorf("at least one calculator must be provided")
	}
	return r, nil
}

// DefaultRegistry wires all four schedule calculators.
func DefaultRegistry(constants ConstantsProvider) (*Registry, error) {
	return NewRegistry(
		NewScheduleC(constants),
		NewScheduleD(),
		NewScheduleE(),
		NewScheduleF(constants),
	)
}

// Calculate routes on the data's own schedule type.
func (r *Registry) Calculate(data domain.ScheduleData) (domain.ScheduleTotals, error) {
	c, ok := r.calculators[data.Schedule()]
	if !ok {
		return domain.ScheduleTotals{}, fmt.Errorf("%w: %s", ErrUnknownScheduleType, data.Schedule())
	}
	return c.Calculate(data), nil
}

// Supported returns the registered schedule types.
func (r *Registry) Supported() []domain.ScheduleType {
	out := make([]domain.ScheduleType, 0, len(r.calculators))
	for st := range r.calculators {
		out = append(out, st)
	}
	return out
}

func sumItems(items []domain.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// seTax applies the IRS net-earnings factor and floors the tax at zero: a
// loss produces no self-employment tax, not a negative one.
func seTax(net float64, consts domain.TaxConstants) (base, tax float64) {
	base = net * consts.SENetEarningsFactor
	if base > 0 {
		tax = base * consts.SETaxRate
	}
	return base, tax
}
