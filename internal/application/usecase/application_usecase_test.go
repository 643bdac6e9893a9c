package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/lifecycle"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAppRepo struct {
	byID     map[string]*entity.Application
	lastPred *query.Predicate
	created  int
	dupCodes int // fuerza ErrDuplicate en los primeros N Create
}

func (r *fakeAppRepo) Create(_ context.Context, app *entity.Application) error {
	if r.created < r.dupCodes {
		r.created++
		return domain.ErrDuplicate
	}
	r.created++
	if r.byID == nil {
		r.byID = make(map[string]*entity.Application)
	}
	r.byID[app.ID] = app
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id string) (*entity.Application, error) {
	return r.byID[id], nil
}

func (r *fakeAppRepo) GetByCode(_ context.Context, code string) (*entity.Application, error) {
	for _, a := range r.byID {
		if a.ApplicationCode == code {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAppRepo) Update(_ context.Context, app *entity.Application) error {
	r.byID[app.ID] = app
	return nil
}

func (r *fakeAppRepo) List(_ context.Context, pred *query.Predicate, _ query.Page) ([]*entity.Application, int, error) {
	r.lastPred = pred
	return nil, 0, nil
}

func (r *fakeAppRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeStudentRepo struct {
	byID map[string]*entity.Student
}

func (r *fakeStudentRepo) Create(_ context.Context, s *entity.Student) error { return nil }
func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*entity.Student, error) {
	return r.byID[id], nil
}
func (r *fakeStudentRepo) Update(_ context.Context, s *entity.Student) error { return nil }
func (r *fakeStudentRepo) List(_ context.Context, _ *query.Predicate, _ query.Page) ([]*entity.Student, int, error) {
	return nil, 0, nil
}

type fakeAgentRepo struct {
	byID   map[string]*entity.Agent
	byUser map[string]*entity.Agent
}

func (r *fakeAgentRepo) Create(_ context.Context, a *entity.Agent) error {
	r.byID[a.ID] = a
	r.byUser[a.UserID] = a
	return nil
}
func (r *fakeAgentRepo) GetByID(_ context.Context, id string) (*entity.Agent, error) {
	return r.byID[id], nil
}
func (r *fakeAgentRepo) GetByUserID(_ context.Context, userID string) (*entity.Agent, error) {
	return r.byUser[userID], nil
}
func (r *fakeAgentRepo) ListByParent(_ context.Context, parentID string) ([]*entity.Agent, error) {
	var out []*entity.Agent
	for _, a := range r.byID {
		if a.ParentID != nil && *a.ParentID == parentID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAgentRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Agent, error) {
	return nil, nil
}
func (r *fakeAgentRepo) Update(_ context.Context, a *entity.Agent) error { return nil }

type fakeProgrammeRepo struct {
	byID map[string]*entity.Programme
}

func (r *fakeProgrammeRepo) Create(_ context.Context, p *entity.Programme) error { return nil }
func (r *fakeProgrammeRepo) GetByID(_ context.Context, id string) (*entity.Programme, error) {
	return r.byID[id], nil
}
func (r *fakeProgrammeRepo) Update(_ context.Context, p *entity.Programme) error { return nil }
func (r *fakeProgrammeRepo) List(_ context.Context, _ *query.Predicate, _ query.Page) ([]*entity.Programme, int, error) {
	return nil, 0, nil
}

type fakeNotifier struct {
	sent []ports.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, notif ports.Notification) {
	n.sent = append(n.sent, notif)
}

type fakeMailer struct {
	sent []string // destinatarios
}

func (m *fakeMailer) Send(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc       *usecase.ApplicationUseCase
	apps     *fakeAppRepo
	agents   *fakeAgentRepo
	notifier *fakeNotifier
	mailer   *fakeMailer
}

func strPtr(s string) *string { return &s }

// dos agentes hoja (X e Y) bajo el mismo manager M, todos en co-1.
func buildEnv() *testEnv {
	agents := map[string]*entity.Agent{
		"ag-m": {ID: "ag-m", UserID: "u-m", CompanyID: "co-1", Level: entity.LevelManager, IsActive: true},
		"ag-x": {ID: "ag-x", UserID: "u-x", CompanyID: "co-1", Level: entity.LevelAdmission, ParentID: strPtr("ag-m"), IsActive: true},
		"ag-y": {ID: "ag-y", UserID: "u-y", CompanyID: "co-1", Level: entity.LevelAdmission, ParentID: strPtr("ag-m"), IsActive: true},
	}
	byUser := make(map[string]*entity.Agent, len(agents))
	for _, a := range agents {
		byUser[a.UserID] = a
	}
	agentRepo := &fakeAgentRepo{byID: agents, byUser: byUser}

	studentRepo := &fakeStudentRepo{byID: map[string]*entity.Student{
		"st-1": {ID: "st-1", CompanyID: "co-1", AgentID: "ag-x", FirstName: "Lina", LastName: "Rojas", Email: "lina@example.com"},
	}}
	progRepo := &fakeProgrammeRepo{byID: map[string]*entity.Programme{
		"pr-1": {ID: "pr-1", UniversityID: "uni-1", Name: "CS", Level: entity.ProgrammeBachelor, IsActive: true},
	}}

	apps := &fakeAppRepo{byID: make(map[string]*entity.Application)}
	notifier := &fakeNotifier{}
	mailer := &fakeMailer{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	uc := usecase.NewApplicationUseCase(apps, studentRepo, agentRepo, progRepo,
		scope.NewResolver(agentRepo), notifier, mailer, log)
	return &testEnv{uc: uc, apps: apps, agents: agentRepo, notifier: notifier, mailer: mailer}
}

func createReq() dto.CreateApplicationRequest {
	return dto.CreateApplicationRequest{
		StudentID:       "st-1",
		ProgrammeIDs:    []string{"pr-1"},
		PriorityMapping: []entity.ProgrammePriority{{ProgrammeID: "pr-1", Priority: 1}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplicationCreate_InicializaCicloDeVida(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.ApplicationCode, "ADM-"))
	assert.Equal(t, "ag-x", out.AgentID)
	assert.Equal(t, "co-1", out.CompanyID)
	assert.Equal(t, lifecycle.InitialStatus(), out.Status)
	assert.Equal(t, lifecycle.InitialStage(), out.CurrentStage)
	assert.Len(t, out.StageStatus, len(lifecycle.Stages), "una entrada por cada etapa conocida")
	assert.False(t, out.IsWithdrawn)

	// el agente crea para sí mismo: no se notifica a sí mismo, sí va correo
	assert.Empty(t, env.notifier.sent)
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "lina@example.com", env.mailer.sent[0])
}

func TestApplicationCreate_ReintentaAnteColisionDeCodigo(t *testing.T) {
	env := buildEnv()
	env.apps.dupCodes = 2

	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.ApplicationCode, "ADM-"))
	assert.Equal(t, 3, env.apps.created)
}

func TestApplicationCreate_AdminRequiereAgentID(t *testing.T) {
	env := buildEnv()
	_, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-admin", Role: entity.RoleAdmin}, createReq())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := createReq()
	req.AgentID = "ag-y"
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-admin", Role: entity.RoleAdmin}, req)
	require.NoError(t, err)
	assert.Equal(t, "ag-y", out.AgentID)
}

func TestApplicationCreate_PrioridadFueraDeRango(t *testing.T) {
	env := buildEnv()
	req := createReq()
	req.PriorityMapping = []entity.ProgrammePriority{{ProgrammeID: "pr-1", Priority: 4}}
	_, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura acotada por alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestApplicationGetByID_OtroAgenteDenegado(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	// Y es hoja: no cubre lo de X aunque compartan manager
	_, err = env.uc.GetByID(context.Background(), scope.Caller{UserID: "u-y", Role: entity.RoleAgent}, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// el manager sí cubre a ambos
	got, err := env.uc.GetByID(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent}, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestApplicationGetByCode_RespetaAlcance(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	got, err := env.uc.GetByCode(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, out.ApplicationCode)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	_, err = env.uc.GetByCode(context.Background(), scope.Caller{UserID: "u-y", Role: entity.RoleAgent}, out.ApplicationCode)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.uc.GetByCode(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, "ADM-NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationList_ManagerFiltraPorSubarbol(t *testing.T) {
	env := buildEnv()
	_, err := env.uc.List(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent}, dto.ApplicationFilters{}, query.Page{})
	require.NoError(t, err)

	require.NotNil(t, env.apps.lastPred)
	where, args := env.apps.lastPred.Where()
	assert.Equal(t, "WHERE agent_id = ANY($1)", where)
	require.Len(t, args, 1)
	assert.ElementsMatch(t, []string{"ag-m", "ag-x", "ag-y"}, args[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones de etapa y retiro
// ──────────────────────────────────────────────────────────────────────────────

func TestApplicationToggleStage_NotificaAlDuenoCuandoActuaOtro(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	// el manager completa una etapa de la aplicación de X
	_, err = env.uc.ToggleStage(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent},
		out.ID, lifecycle.InitialStage(), dto.ToggleStageRequest{Done: true})
	require.NoError(t, err)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "u-x", env.notifier.sent[0].RecipientID)
	assert.Equal(t, entity.NotifyStageUpdated, env.notifier.sent[0].Type)
}

func TestApplicationToggleStage_EtapaDesconocida(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	_, err = env.uc.ToggleStage(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent},
		out.ID, "etapa_inventada", dto.ToggleStageRequest{Done: true})
	assert.ErrorIs(t, err, domain.ErrUnknownStage)
}

func TestApplicationWithdraw_IdempotenteYCongela(t *testing.T) {
	env := buildEnv()
	caller := scope.Caller{UserID: "u-x", Role: entity.RoleAgent}
	out, err := env.uc.Create(context.Background(), caller, createReq())
	require.NoError(t, err)

	first, err := env.uc.Withdraw(context.Background(), caller, out.ID)
	require.NoError(t, err)
	assert.True(t, first.IsWithdrawn)

	// segundo retiro: éxito sin efecto
	second, err := env.uc.Withdraw(context.Background(), caller, out.ID)
	require.NoError(t, err)
	assert.True(t, second.IsWithdrawn)

	// la aplicación retirada rechaza mutaciones de etapa
	_, err = env.uc.ToggleStage(context.Background(), caller, out.ID, lifecycle.InitialStage(), dto.ToggleStageRequest{Done: true})
	assert.ErrorIs(t, err, domain.ErrApplicationWithdrawn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Override de admin
// ──────────────────────────────────────────────────────────────────────────────

func TestApplicationOverride_SoloAdmin(t *testing.T) {
	env := buildEnv()
	out, err := env.uc.Create(context.Background(), scope.Caller{UserID: "u-x", Role: entity.RoleAgent}, createReq())
	require.NoError(t, err)

	status := lifecycle.StatusFinalDecision
	_, err = env.uc.Override(context.Background(), scope.Caller{UserID: "u-m", Role: entity.RoleAgent},
		out.ID, dto.OverrideRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := env.uc.Override(context.Background(), scope.Caller{UserID: "u-admin", Role: entity.RoleAdmin},
		out.ID, dto.OverrideRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusFinalDecision, got.Status)

	// decisión final: notificación al dueño y correo al estudiante
	require.NotEmpty(t, env.notifier.sent)
	assert.Equal(t, entity.NotifyFinalDecision, env.notifier.sent[len(env.notifier.sent)-1].Type)
	assert.Contains(t, env.mailer.sent, "lina@example.com")
}
