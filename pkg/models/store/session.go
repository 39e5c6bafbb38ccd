package store

import "github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"

// SessionSnapshot is the persisted form of a wizard session. The engine
// treats persistence as opaque get/set; this type pins the serialized shape
// so reloading a snapshot reproduces the session bit-identically.
type SessionSnapshot struct {
	ID             string            `json:"id"`
	CatalogVersion string            `json:"catalog_version"`
	TaxYear        int               `json:"tax_year"`
	Step           string            `json:"step"`
	Answers        map[string]any    `json:"answers,omitempty"`
	Schedules      ScheduleSnapshot  `json:"schedules"`
	Documents      map[string]string `json:"documents,omitempty"`
	Requirements   []string          `json:"requirements,omitempty"`
}

type ScheduleSnapshot struct {
	C *domain.ScheduleCData `json:"schedule_c,omitempty"`
	D *domain.ScheduleDData `json:"schedule_d,omitempty"`
	E *domain.ScheduleEData `json:"schedule_e,omitempty"`
	F *domain.ScheduleFData `json:"schedule_f,omitempty"`
}
