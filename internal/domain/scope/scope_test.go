package scope_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// ──────────────────────────────────────────────────────────────────────────────
// Directorio de agentes en memoria para los tests
// ──────────────────────────────────────────────────────────────────────────────

type fakeDirectory struct {
	byUser map[string]*entity.Agent
	agents []*entity.Agent
	err    error
}

func (d *fakeDirectory) GetByUserID(_ context.Context, userID string) (*entity.Agent, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.byUser[userID], nil
}

func (d *fakeDirectory) ListByParent(_ context.Context, parentID string) ([]*entity.Agent, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []*entity.Agent
	for _, a := range d.agents {
		if a.ParentID != nil && *a.ParentID == parentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func ptr(s string) *string { return &s }

// jerarquía de prueba: owner → manager M y manager M2; bajo M los leaf A y C;
// bajo A un "nieto" artificial G para verificar que el subtree es de un nivel.
func buildDirectory() *fakeDirectory {
	agents := []*entity.Agent{
		{ID: "ag-owner", UserID: "u-owner", CompanyID: "co-1", Level: entity.LevelOwner},
		{ID: "ag-m", UserID: "u-m", CompanyID: "co-1", Level: entity.LevelManager, ParentID: ptr("ag-owner")},
		{ID: "ag-m2", UserID: "u-m2", CompanyID: "co-1", Level: entity.LevelManager, ParentID: ptr("ag-owner")},
		{ID: "ag-a", UserID: "u-a", CompanyID: "co-1", Level: entity.LevelAdmission, ParentID: ptr("ag-m")},
		{ID: "ag-c", UserID: "u-c", CompanyID: "co-1", Level: entity.LevelCounsellor, ParentID: ptr("ag-m")},
		{ID: "ag-g", UserID: "u-g", CompanyID: "co-1", Level: entity.LevelCounsellor, ParentID: ptr("ag-a")},
	}
	byUser := make(map[string]*entity.Agent, len(agents))
	for _, a := range agents {
		byUser[a.UserID] = a
	}
	return &fakeDirectory{byUser: byUser, agents: agents}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve por rol y nivel
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_AdminSinRestriccion(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "cualquiera", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, scope.KindAll, d.Kind)
	assert.True(t, d.Covers("ag-x", "co-x"), "admin ve cualquier registro")
}

func TestResolve_OwnerVeTodaLaEmpresa(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-owner", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, scope.KindCompany, d.Kind)
	assert.Equal(t, "co-1", d.CompanyID)
	// dos aplicaciones de la misma empresa son visibles sin importar el agente
	assert.True(t, d.Covers("ag-a", "co-1"))
	assert.True(t, d.Covers("ag-m2", "co-1"))
	assert.False(t, d.Covers("ag-z", "co-2"), "otra empresa queda fuera")
}

func TestResolve_ManagerSubtreeUnSoloNivel(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, scope.KindSubtree, d.Kind)
	// exactamente {él mismo} ∪ {hijos directos}: nunca nietos
	assert.ElementsMatch(t, []string{"ag-m", "ag-a", "ag-c"}, d.AgentIDs)
	assert.True(t, d.Covers("ag-a", "co-1"))
	assert.False(t, d.Covers("ag-g", "co-1"), "el nieto no entra en el subtree")
	assert.False(t, d.Covers("ag-m2", "co-1"), "otro manager de la misma empresa queda fuera")
}

func TestResolve_AdmissionYCounsellorSoloPropio(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	for _, userID := range []string{"u-a", "u-c"} {
		d, err := r.Resolve(context.Background(), scope.Caller{UserID: userID, Role: entity.RoleAgent})
		require.NoError(t, err)
		assert.Equal(t, scope.KindSelfOnly, d.Kind)
		assert.True(t, d.Covers(d.AgentID, "co-1"))
		assert.False(t, d.Covers("ag-m", "co-1"), "el superior no es visible")
	}
}

func TestResolve_RolEstudianteDeniega(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-s", Role: entity.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, scope.KindDeny, d.Kind)
	assert.False(t, d.Covers("ag-a", "co-1"))
}

func TestResolve_NivelDesconocidoDeniega(t *testing.T) {
	dir := buildDirectory()
	dir.byUser["u-raro"] = &entity.Agent{ID: "ag-raro", UserID: "u-raro", CompanyID: "co-1", Level: "supervisor"}
	r := scope.NewResolver(dir)
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-raro", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, scope.KindDeny, d.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de resolución
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_AgenteSinPerfilEsNotFound(t *testing.T) {
	// identidad válida pero sin registro de jerarquía: error de NotFound,
	// no de permisos
	r := scope.NewResolver(buildDirectory())
	d, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-fantasma", Role: entity.RoleAgent})
	require.ErrorIs(t, err, domain.ErrAgentNotFound)
	assert.Equal(t, scope.KindDeny, d.Kind)
}

func TestResolve_ErrorDeDirectorioSePropaga(t *testing.T) {
	boom := errors.New("db caída")
	r := scope.NewResolver(&fakeDirectory{err: boom})
	_, err := r.Resolve(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent})
	require.ErrorIs(t, err, boom)
}

func TestResolveAgent_DevuelvePerfilDelCaller(t *testing.T) {
	r := scope.NewResolver(buildDirectory())
	ag, err := r.ResolveAgent(context.Background(), scope.Caller{UserID: "u-a", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, "ag-a", ag.ID)

	_, err = r.ResolveAgent(context.Background(), scope.Caller{UserID: "u-a", Role: entity.RoleStudent})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
