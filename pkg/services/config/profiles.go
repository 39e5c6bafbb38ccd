package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile carries preparer defaults applied when a session is created:
// the tax year being filed and where CLI snapshots live.
type Profile struct {
	Name       string
	TaxYear    int
	Preparer   string
	SessionDir string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads preparer profiles from an ini file (one section per
// profile).
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (*Profile, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	taxYear, err := section.Key("tax_year").Int()
	if err != nil {
		return nil, fmt.Errorf("profile %s has an invalid tax_year: %w", profile, err)
	}

	return &Profile{
		Name:       profile,
		TaxYear:    taxYear,
		Preparer:   section.Key("preparer").String(),
		SessionDir: section.Key("session_dir").String(),
	}, nil
}
