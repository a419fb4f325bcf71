package approval

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role names used in the approval chain
const (
	RoleHR                = "HR"
	RoleDisciplineManager = "Discipline Manager"
	RoleDeptManagerMOE    = "Department Manager (MOE)"
	RoleDeptManagerMOP    = "Department Manager (MOP)"
	RoleOperationManager  = "Operation Manager"
	RoleCEO               = "CEO"
)

// PathKind tags which approval chain a position classifies into
type PathKind string

const (
	PathSenior  PathKind = "senior"
	PathRegular PathKind = "regular"
)

// Workflow holds the role hierarchy and the two approval chains. It is
// normally the built-in default but can be overridden from a YAML file.
type Workflow struct {
	RoleLevels     map[string]int `yaml:"role_levels"`
	SeniorKeywords []string       `yaml:"senior_keywords"`
	SeniorPath     []string       `yaml:"senior_path"`
	RegularPath    []string       `yaml:"regular_path"`
}

// DefaultWorkflow returns the built-in role hierarchy and approval chains
func DefaultWorkflow() *Workflow {
	return &Workflow{
		RoleLevels: map[string]int{
			RoleHR:                1,
			RoleDisciplineManager: 2,
			RoleDeptManagerMOE:    3,
			RoleDeptManagerMOP:    3,
			RoleOperationManager:  4,
			RoleCEO:               5,
		},
		SeniorKeywords: []string{"discipline manager", "project manager"},
		SeniorPath:     []string{RoleDeptManagerMOE, RoleOperationManager, RoleCEO},
		RegularPath:    []string{RoleDisciplineManager, RoleDeptManagerMOE, RoleOperationManager},
	}
}

// LoadWorkflow reads a workflow override from a YAML file. A missing path
// (or empty string) yields the default workflow; a present but unparsable
// file is an error.
func LoadWorkflow(path string) (*Workflow, error) {
	if path == "" {
		return DefaultWorkflow(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultWorkflow(), nil
		}
		return nil, fmt.Errorf("read workflow config: %w", err)
	}

	w := DefaultWorkflow()
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("parse workflow config: %w", err)
	}
	if len(w.SeniorPath) == 0 || len(w.RegularPath) == 0 {
		return nil, fmt.Errorf("workflow config: approval paths must not be empty")
	}
	return w, nil
}

// Classify tags a position title by seniority. The match is a
// case-insensitive substring check against the senior keywords, isolating
// the fuzzy policy from the state machine.
func (w *Workflow) Classify(position string) PathKind {
	p := strings.ToLower(position)
	for _, kw := range w.SeniorKeywords {
		if strings.Contains(p, kw) {
			return PathSenior
		}
	}
	return PathRegular
}

// PathForPosition returns the ordered approval chain for a position
func (w *Workflow) PathForPosition(position string) []string {
	if w.Classify(position) == PathSenior {
		return w.SeniorPath
	}
	return w.RegularPath
}

// RoleLevel returns the authority level for a role, 0 when unknown
func (w *Workflow) RoleLevel(role string) int {
	for name, level := range w.RoleLevels {
		if strings.EqualFold(name, role) {
			return level
		}
	}
	return 0
}

// CanonicalRole collapses the interchangeable Department Manager variants to
// one path identifier. All path comparisons go through this, so MOE/MOP
// never needs special-casing at the call sites.
func CanonicalRole(role string) string {
	r := strings.TrimSpace(role)
	if strings.EqualFold(r, RoleDeptManagerMOP) {
		return RoleDeptManagerMOE
	}
	return r
}

// RolesEquivalent reports whether two roles occupy the same path position
func RolesEquivalent(a, b string) bool {
	return strings.EqualFold(CanonicalRole(a), CanonicalRole(b))
}

// roleIndex finds a role's position in a path, -1 when absent
func roleIndex(path []string, role string) int {
	for i, r := range path {
		if RolesEquivalent(r, role) {
			return i
		}
	}
	return -1
}
