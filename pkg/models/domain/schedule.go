package domain

// ScheduleType identifies a supplementary tax schedule.
type ScheduleType string

const (
	ScheduleC ScheduleType = "schedule_c"
	ScheduleD ScheduleType = "schedule_d"
	ScheduleE ScheduleType = "schedule_e"
	ScheduleF ScheduleType = "schedule_f"
)

type AccountingMethod string

const (
	MethodCash    AccountingMethod = "cash"
	MethodAccrual AccountingMethod = "accrual"
)

// ScheduleData is implemented by the per-schedule data records. Calculators
// and the validator are read-only consumers; the wizard controller owns the
// records and mutates them field by field as the user edits.
type ScheduleData interface {
	Schedule() ScheduleType
}

// LineItem is a single categorized amount on a schedule.
type LineItem struct {
	Category    string
	Description string
	Amount      float64
}

type BusinessProfile struct {
	Name     string
	OwnerSSN string
	EIN      string
	Activity string
	Address  string
}

// VehicleExpense holds the standard-mileage-vs-actual election.
// BusinessUsePercent is expressed 0-100.
type VehicleExpense struct {
	UsingStandardMileage bool
	BusinessMiles        float64
	ActualExpenses       []LineItem
	BusinessUsePercent   float64
}

type HomeOffice struct {
	BusinessSquareFeet float64
	TotalSquareFeet    float64
	Expenses           []LineItem
}

type ScheduleCData struct {
	TaxYear        int
	Business       BusinessProfile
	GrossReceipts  float64
	Returns        float64
	OtherIncome    float64
	CostOfGoods    []LineItem
	Expenses       []LineItem
	Vehicle        *VehicleExpense
	HomeOffice     *HomeOffice
}

func (*ScheduleCData) Schedule() ScheduleType { return ScheduleC }

type CapitalTransaction struct {
	Description  string
	DateAcquired string
	DateSold     string
	Proceeds     float64
	CostBasis    float64
}

type ScheduleDData struct {
	TaxYear   int
	ShortTerm []CapitalTransaction
	LongTerm  []CapitalTransaction
}

func (*ScheduleDData) Schedule() ScheduleType { return ScheduleD }

type RentalProperty struct {
	Address      string
	PropertyType string
	Income       []LineItem
	Expenses     []LineItem
}

type ScheduleEData struct {
	TaxYear    int
	Properties []RentalProperty
}

func (*ScheduleEData) Schedule() ScheduleType { return ScheduleE }

type ScheduleFData struct {
	TaxYear                  int
	AccountingMethod         AccountingMethod
	Income                   []LineItem
	CooperativeDistributions float64
	AgriculturalPayments     float64
	CommodityPayments        float64
	CropInsurance            float64
	BeginningInventory       float64
	EndingInventory          float64
	Expenses                 []LineItem
}

func (*ScheduleFData) Schedule() ScheduleType { return ScheduleF }
