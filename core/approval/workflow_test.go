package approval_test

import (
	"os"
	"path/filepath"
	"testing"

	"talent-track/core/approval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	w := approval.DefaultWorkflow()

	assert.Equal(t, approval.PathSenior, w.Classify("Discipline Manager - Piping"))
	assert.Equal(t, approval.PathSenior, w.Classify("Senior Project Manager"))
	assert.Equal(t, approval.PathSenior, w.Classify("discipline MANAGER"))
	assert.Equal(t, approval.PathRegular, w.Classify("SP3D Designer"))
	assert.Equal(t, approval.PathRegular, w.Classify(""))
}

func TestPathForPosition(t *testing.T) {
	w := approval.DefaultWorkflow()

	senior := w.PathForPosition("Discipline Manager - Civil")
	assert.Equal(t, []string{approval.RoleDeptManagerMOE, approval.RoleOperationManager, approval.RoleCEO}, senior)

	regular := w.PathForPosition("SP3D Designer")
	assert.Equal(t, []string{approval.RoleDisciplineManager, approval.RoleDeptManagerMOE, approval.RoleOperationManager}, regular)
}

func TestCanonicalRole(t *testing.T) {
	assert.Equal(t, approval.RoleDeptManagerMOE, approval.CanonicalRole(approval.RoleDeptManagerMOP))
	assert.Equal(t, approval.RoleDeptManagerMOE, approval.CanonicalRole(" Department Manager (MOP) "))
	assert.Equal(t, approval.RoleCEO, approval.CanonicalRole(approval.RoleCEO))
}

func TestRolesEquivalent(t *testing.T) {
	assert.True(t, approval.RolesEquivalent(approval.RoleDeptManagerMOE, approval.RoleDeptManagerMOP))
	assert.True(t, approval.RolesEquivalent("department manager (moe)", approval.RoleDeptManagerMOE))
	assert.False(t, approval.RolesEquivalent(approval.RoleCEO, approval.RoleOperationManager))
}

func TestRoleLevel(t *testing.T) {
	w := approval.DefaultWorkflow()

	assert.Equal(t, 1, w.RoleLevel(approval.RoleHR))
	assert.Equal(t, 3, w.RoleLevel(approval.RoleDeptManagerMOE))
	assert.Equal(t, 3, w.RoleLevel(approval.RoleDeptManagerMOP))
	assert.Equal(t, 5, w.RoleLevel("ceo"))
	assert.Equal(t, 0, w.RoleLevel("Intern"))
}

func TestLoadWorkflow_EmptyAndMissingPathYieldDefault(t *testing.T) {
	w, err := approval.LoadWorkflow("")
	require.NoError(t, err)
	assert.Equal(t, approval.DefaultWorkflow(), w)

	w, err = approval.LoadWorkflow(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, approval.DefaultWorkflow(), w)
}

func TestLoadWorkflow_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	content := `senior_keywords:
  - "lead"
senior_path:
  - "Operation Manager"
  - "CEO"
regular_path:
  - "Discipline Manager"
  - "Operation Manager"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w, err := approval.LoadWorkflow(path)
	require.NoError(t, err)

	assert.Equal(t, approval.PathSenior, w.Classify("Lead Engineer"))
	assert.Equal(t, []string{approval.RoleOperationManager, approval.RoleCEO}, w.SeniorPath)
	assert.Equal(t, 2, len(w.RegularPath))
	// Fields absent from the override keep the defaults
	assert.Equal(t, 5, w.RoleLevel(approval.RoleCEO))
}

func TestLoadWorkflow_UnparsableFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	_, err := approval.LoadWorkflow(path)
	assert.Error(t, err)
}

func TestLoadWorkflow_EmptyPathsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("senior_path: []\n"), 0o644))

	_, err := approval.LoadWorkflow(path)
	assert.Error(t, err)
}
