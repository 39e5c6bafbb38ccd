package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var questionsYAML []byte

//go:embed data/rules.yaml
var rulesYAML []byte

//go:embed data/constants.yaml
var constantsYAML []byte

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownRuleSet  = errors.New("unknown schedule section")
)

// Catalog is the read-only, versioned rule table backing a wizard session.
// Sessions pin the catalog version at creation so a catalog update never
// invalidates a return mid-completion.
type Catalog struct {
	version    string
	questions  []domain.QuestionDefinition
	byID       map[string]int
	rules      map[string]domain.RuleSet
	mileage    map[int]float64
	latestYear int
	seFactor   float64
	seRate     float64
}

type questionsFile struct {
	Version   string `yaml:"version"`
	Questions []struct {
		ID          string   `yaml:"id"`
		Prompt      string   `yaml:"prompt"`
		Type        string   `yaml:"type"`
		Required    bool     `yaml:"required"`
		Options     []string `yaml:"options"`
		Min         *float64 `yaml:"min"`
		Max         *float64 `yaml:"max"`
		Documents   []string `yaml:"documents"`
		TriggerOn   []string `yaml:"trigger_on"`
		VisibleWhen *struct {
			Question string `yaml:"question"`
			Operator string `yaml:"operator"`
			Value    any    `yaml:"value"`
		} `yaml:"visible_when"`
	} `yaml:"questions"`
}

type rulesFile struct {
	Rules []struct {
		Schedule string `yaml:"schedule"`
		Section  string `yaml:"section"`
		Fields   []struct {
			Field         string   `yaml:"field"`
			Required      bool     `yaml:"required"`
			Min           *float64 `yaml:"min"`
			Max           *float64 `yaml:"max"`
			AllowNegative bool     `yaml:"allow_negative"`
			Pattern       string   `yaml:"pattern"`
		} `yaml:"fields"`
		Cross []struct {
			Left     string `yaml:"left"`
			Operator string `yaml:"operator"`
			Right    string `yaml:"right"`
			Severity string `yaml:"severity"`
			Message  string `yaml:"message"`
		} `yaml:"cross"`
	} `yaml:"rules"`
}

type constantsFile struct {
	SENetEarningsFactor float64         `yaml:"se_net_earnings_factor"`
	SETaxRate           float64         `yaml:"se_tax_rate"`
	MileageRates        map[int]float64 `yaml:"standard_mileage_rates"`
}

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return New(questionsYAML, rulesYAML, constantsYAML)
}

// New parses a catalog from raw YAML documents.
func New(questions, rules, constants []byte) (*Catalog, error) {
	var qf questionsFile
	if err := yaml.Unmarshal(questions, &qf); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(rules, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse validation rules: %w", err)
	}
	var cf constantsFile
	if err := yaml.Unmarshal(constants, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse constants: %w", err)
	}

	c := &Catalog{
		version:  qf.Version,
		byID:     make(map[string]int),
		rules:    make(map[string]domain.RuleSet),
		mileage:  cf.MileageRates,
		seFactor: cf.SENetEarningsFactor,
		seRate:   cf.SETaxRate,
	}

	for _, q := range qf.Questions {
		if _, exists := c.byID[q.ID]; exists {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		def := domain.QuestionDefinition{
			ID:        q.ID,
			Prompt:    q.Prompt,
			Type:      domain.AnswerType(q.Type),
			Required:  q.Required,
			Options:   q.Options,
			Min:       q.Min,
			Max:       q.Max,
			TriggerOn: q.TriggerOn,
		}
		for _, d := range q.Documents {
			def.Documents = append(def.Documents, domain.DocumentType(d))
		}
		if q.VisibleWhen != nil {
			def.VisibleWhen = &domain.VisibilityCondition{
				Question: q.VisibleWhen.Question,
				Operator: domain.ConditionOperator(q.VisibleWhen.Operator),
				Value:    q.VisibleWhen.Value,
			}
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, def)
	}

	// Conditions must reference catalog questions; a dangling reference is a
	// broken catalog, not a runtime condition.
	for _, q := range c.questions {
		if q.VisibleWhen == nil {
			continue
		}
		if _, ok := c.byID[q.VisibleWhen.Question]; !ok {
			return nil, fmt.Errorf("question %q: visibility condition references unknown question %q",
				q.ID, q.VisibleWhen.Question)
		}
	}

	for _, r := range rf.Rules {
		rs := domain.RuleSet{
			Schedule: domain.ScheduleType(r.Schedule),
			Section:  r.Section,
		}
		for _, f := range r.Fields {
			rs.Fields = append(rs.Fields, domain.FieldRule{
				Field:         f.Field,
				Required:      f.Required,
				Min:           f.Min,
				Max:           f.Max,
				AllowNegative: f.AllowNegative,
				Pattern:       f.Pattern,
			})
		}
		for _, x := range r.Cross {
			rs.Cross = append(rs.Cross, domain.CrossRule{
				Left:     x.Left,
				Operator: x.Operator,
				Right:    x.Right,
				Severity: domain.Severity(x.Severity),
				Message:  x.Message,
			})
		}
		key := ruleKey(rs.Schedule, rs.Section)
		if _, exists := c.rules[key]; exists {
			return nil, fmt.Errorf("duplicate rule set for %s", key)
		}
		c.rules[key] = rs
	}

	for year := range c.mileage {
		if year > c.latestYear {
			c.latestYear = year
		}
	}
	if c.latestYear == 0 {
		return nil, errors.New("no standard mileage rates defined")
	}

	return c, nil
}

func (c *Catalog) Version() string { return c.version }

// Question looks up a catalog entry by id.
func (c *Catalog) Question(id string) (domain.QuestionDefinition, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.QuestionDefinition{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return c.questions[idx], nil
}

// Questions returns all catalog entries in catalog order.
func (c *Catalog) Questions() []domain.QuestionDefinition {
	out := make([]domain.QuestionDefinition, len(c.questions))
	copy(out, c.questions)
	return out
}

// ValidationRules returns the rule set for one schedule section.
func (c *Catalog) ValidationRules(schedule domain.ScheduleType, section string) (domain.RuleSet, error) {
	rs, ok := c.rules[ruleKey(schedule, section)]
	if !ok {
		return domain.RuleSet{}, fmt.Errorf("%w: %s", ErrUnknownRuleSet, ruleKey(schedule, section))
	}
	return rs, nil
}

// Sections returns the section ids with validation rules for a schedule.
func (c *Catalog) Sections(schedule domain.ScheduleType) []string {
	var out []string
	for _, rs := range c.rules {
		if rs.Schedule == schedule {
			out = append(out, rs.Section)
		}
	}
	return out
}

// Constants resolves the standard constants for a tax year. A year without a
// published mileage rate falls back to the latest year in the catalog.
func (c *Catalog) Constants(taxYear int) domain.TaxConstants {
	rate, ok := c.mileage[taxYear]
	if !ok {
		rate = c.mileage[c.latestYear]
	}
	return domain.TaxConstants{
		TaxYear:             taxYear,
		StandardMileageRate: rate,
		SENetEarningsFactor: c.seFactor,
		SETaxRate:           c.seRate,
	}
}

func ruleKey(schedule domain.ScheduleType, section string) string {
	return fmt.Sprintf("%s/%s", schedule, section)
}
