package service

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"gopkg.in/yaml.v3"
)

//go:embed companies.yaml
var companiesYAML []byte

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type InterviewRound struct {
	Round    string `yaml:"round" json:"round"`
	Duration string `yaml:"duration" json:"duration"`
	Tips     string `yaml:"tips" json:"tips"`
}

type RequiredSkill struct {
	Skill string `yaml:"skill" json:"skill"`
	Level string `yaml:"level" json:"level"`
}

type PreparationResource struct {
	Resource string `yaml:"resource" json:"resource"`
	Type     string `yaml:"type" json:"type"`
	Priority string `yaml:"priority" json:"priority"`
}

// CompanyProfile is the static insight page of an employer
type CompanyProfile struct {
	Name            string                `yaml:"name" json:"name"`
	CEO             string                `yaml:"ceo" json:"ceo"`
	Founded         string                `yaml:"founded" json:"founded"`
	Employees       string                `yaml:"employees" json:"employees"`
	Mission         string                `yaml:"mission" json:"mission"`
	About           string                `yaml:"about" json:"about"`
	PPORate         string                `yaml:"ppoRate" json:"ppoRate"`
	AvgStipend      string                `yaml:"avgStipend" json:"avgStipend"`
	FAQs            []FAQ                 `yaml:"faqs" json:"faqs"`
	InterviewRounds []InterviewRound      `yaml:"interviewRounds" json:"interviewRounds"`
	RequiredSkills  []RequiredSkill       `yaml:"requiredSkills" json:"requiredSkills"`
	Preparation     []PreparationResource `yaml:"preparation" json:"preparation"`
}

// Companies serves the read-only company directory
type Companies struct {
	profiles []CompanyProfile
	byName   map[string]*CompanyProfile
}

// NewCompanies loads the embedded company directory
func NewCompanies() (*Companies, error) {
	return ParseCompanies(companiesYAML)
}

// ParseCompanies builds a directory from a YAML list of profiles
func ParseCompanies(data []byte) (*Companies, error) {
	var profiles []CompanyProfile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse company profiles: %w", err)
	}

	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	c := &Companies{
		profiles: profiles,
		byName:   make(map[string]*CompanyProfile, len(profiles)),
	}
	for i := range profiles {
		name := profiles[i].Name
		if name == "" {
			return nil, fmt.Errorf("company profile %d has no name", i)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate company profile %q", name)
		}
		c.byName[name] = &profiles[i]
	}

	return c, nil
}

func (c *Companies) List() []CompanyProfile {
	return c.profiles
}

func (c *Companies) Get(name string) (*CompanyProfile, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "company not found")
	}
	return p, nil
}
