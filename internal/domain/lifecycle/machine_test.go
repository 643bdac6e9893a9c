package lifecycle_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/lifecycle"
)

func newApp(t *testing.T) *entity.Application {
	t.Helper()
	app := &entity.Application{
		ID:        "app-1",
		StudentID: "st-1",
		AgentID:   "ag-1",
		CompanyID: "co-1",
	}
	lifecycle.Initialize(app, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_EstadoInicialCompleto(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, lifecycle.Statuses[0], app.Status, "status arranca en el primer miembro del enum")
	assert.Equal(t, lifecycle.Stages[0], app.CurrentStage, "la etapa actual arranca en la primera canónica")
	assert.False(t, app.IsWithdrawn)
	assert.Empty(t, app.StageHistory)

	// el checklist completo debe existir desde el inicio, todo en no-hecho
	require.Len(t, app.StageStatus, len(lifecycle.Stages))
	for _, stage := range lifecycle.Stages {
		state, ok := app.StageStatus[stage]
		require.True(t, ok, "falta la etapa %s", stage)
		assert.False(t, state.Done)
	}
}

func TestNewApplicationCode_Formato(t *testing.T) {
	re := regexp.MustCompile(`^ADM-[A-Z2-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := lifecycle.NewApplicationCode()
		assert.Regexp(t, re, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "los códigos deben ser prácticamente únicos")
}

// ──────────────────────────────────────────────────────────────────────────────
// ToggleStage
// ──────────────────────────────────────────────────────────────────────────────

func TestToggleStage_MarcaHechoYAuditaYAvanza(t *testing.T) {
	app := newApp(t)
	before := app.UpdatedAt
	now := before.Add(time.Hour)
	first := lifecycle.Stages[0]

	err := lifecycle.ToggleStage(app, first, true, "perfil ok", nil, "u-admin", now)
	require.NoError(t, err)

	state := app.StageStatus[first]
	assert.True(t, state.Done)
	require.NotNil(t, state.DoneAt)
	assert.Equal(t, now, *state.DoneAt)
	assert.Equal(t, "u-admin", state.DoneBy)

	require.Len(t, app.StageHistory, 1)
	assert.Equal(t, first, app.StageHistory[0].Stage)
	assert.True(t, !app.StageHistory[0].CompletedAt.Before(before), "completedAt >= updatedAt previo")

	// al completar la etapa actual, avanza a la siguiente incompleta
	assert.Equal(t, lifecycle.Stages[1], app.CurrentStage)
}

func TestToggleStage_AvanzaSaltandoEtapasYaHechas(t *testing.T) {
	app := newApp(t)
	now := app.UpdatedAt.Add(time.Hour)

	// la segunda etapa ya está hecha de antemano
	require.NoError(t, lifecycle.ToggleStage(app, lifecycle.Stages[1], true, "", nil, "u1", now))
	require.NoError(t, lifecycle.ToggleStage(app, lifecycle.Stages[0], true, "", nil, "u1", now))

	assert.Equal(t, lifecycle.Stages[2], app.CurrentStage, "salta la etapa ya completada")
}

func TestToggleStage_DesmarcarNoRetrocedeLaEtapaActual(t *testing.T) {
	app := newApp(t)
	now := app.UpdatedAt.Add(time.Hour)
	first := lifecycle.Stages[0]

	require.NoError(t, lifecycle.ToggleStage(app, first, true, "", nil, "u1", now))
	current := app.CurrentStage

	// desmarcar audita pero el avance automático es solo hacia adelante
	require.NoError(t, lifecycle.ToggleStage(app, first, false, "se reabre", nil, "u1", now.Add(time.Minute)))
	assert.Equal(t, current, app.CurrentStage)
	assert.False(t, app.StageStatus[first].Done)
	assert.Nil(t, app.StageStatus[first].DoneAt)
	assert.Len(t, app.StageHistory, 2, "ambas direcciones se auditan")
}

func TestToggleStage_EtapaDesconocidaEsBadRequestSinHistorial(t *testing.T) {
	app := newApp(t)
	err := lifecycle.ToggleStage(app, "etapa_inventada", true, "", nil, "u1", time.Now())
	require.ErrorIs(t, err, domain.ErrUnknownStage)
	assert.Empty(t, app.StageHistory, "un toggle rechazado no deja rastro")
	assert.Len(t, app.StageStatus, len(lifecycle.Stages), "no se crean etapas nuevas en silencio")
}

func TestToggleStage_RetiradaCongelaTodo(t *testing.T) {
	app := newApp(t)
	lifecycle.Withdraw(app, time.Now())
	snapshotStage := app.CurrentStage
	snapshotStatus := app.Status

	err := lifecycle.ToggleStage(app, lifecycle.Stages[0], true, "", nil, "u1", time.Now())
	require.ErrorIs(t, err, domain.ErrApplicationWithdrawn)
	assert.Equal(t, snapshotStage, app.CurrentStage)
	assert.Equal(t, snapshotStatus, app.Status)
	assert.Empty(t, app.StageHistory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Override y Withdraw
// ──────────────────────────────────────────────────────────────────────────────

func TestOverride_SobrescribeSinAutoavance(t *testing.T) {
	app := newApp(t)
	now := app.UpdatedAt.Add(time.Hour)
	status := lifecycle.StatusFinalDecision
	stage := lifecycle.Stages[5]

	require.NoError(t, lifecycle.Override(app, &status, &stage, "decisión directa", now))
	assert.Equal(t, status, app.Status)
	assert.Equal(t, stage, app.CurrentStage)
	require.Len(t, app.StageHistory, 1, "el cambio de etapa deja una entrada")
}

func TestOverride_SinCambioDeEtapaNoAudita(t *testing.T) {
	app := newApp(t)
	status := lifecycle.StatusPendingDocuments
	stage := app.CurrentStage

	require.NoError(t, lifecycle.Override(app, &status, &stage, "", time.Now()))
	assert.Empty(t, app.StageHistory)
}

func TestOverride_StatusInvalido(t *testing.T) {
	app := newApp(t)
	bad := "estado_inventado"
	err := lifecycle.Override(app, &bad, nil, "", time.Now())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOverride_RetiradaFalla(t *testing.T) {
	app := newApp(t)
	lifecycle.Withdraw(app, time.Now())
	status := lifecycle.StatusFinalDecision
	err := lifecycle.Override(app, &status, nil, "", time.Now())
	require.ErrorIs(t, err, domain.ErrApplicationWithdrawn)
}

func TestWithdraw_Idempotente(t *testing.T) {
	app := newApp(t)
	now := time.Now()

	already := lifecycle.Withdraw(app, now)
	assert.False(t, already)
	assert.True(t, app.IsWithdrawn)

	// retirar dos veces produce el mismo estado final y no es un error
	already = lifecycle.Withdraw(app, now.Add(time.Hour))
	assert.True(t, already)
	assert.True(t, app.IsWithdrawn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Prioridades
// ──────────────────────────────────────────────────────────────────────────────

func TestValidatePriorities(t *testing.T) {
	ok := []entity.ProgrammePriority{{ProgrammeID: "p1", Priority: 1}, {ProgrammeID: "p2", Priority: 2}}
	assert.NoError(t, lifecycle.ValidatePriorities(ok))

	// los empates se aceptan: el dominio no deduplica ni reordena
	ties := []entity.ProgrammePriority{{ProgrammeID: "p1", Priority: 1}, {ProgrammeID: "p2", Priority: 1}}
	assert.NoError(t, lifecycle.ValidatePriorities(ties))

	assert.ErrorIs(t, lifecycle.ValidatePriorities(nil), domain.ErrInvalidInput)
	bad := []entity.ProgrammePriority{{ProgrammeID: "p1", Priority: 4}}
	assert.ErrorIs(t, lifecycle.ValidatePriorities(bad), domain.ErrInvalidInput)
	zero := []entity.ProgrammePriority{{ProgrammeID: "p1", Priority: 0}}
	assert.ErrorIs(t, lifecycle.ValidatePriorities(zero), domain.ErrInvalidInput)
}
