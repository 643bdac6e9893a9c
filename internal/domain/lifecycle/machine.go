package lifecycle

import (
	"crypto/rand"
	"time"

	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

const (
	codePrefix   = "ADM-"
	codeLength   = 8
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // sin 0/O ni 1/I
)

// NewApplicationCode genera un código legible para compartir: prefijo fijo +
// 8 caracteres alfanuméricos. La unicidad global la garantiza el índice único
// de la DB; el caso de uso reintenta ante colisión.
func NewApplicationCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand no falla en la práctica; un código degradado es
		// preferible a abortar la creación.
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (i * 7))
		}
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return codePrefix + string(buf)
}

// Initialize deja una aplicación recién creada en su estado inicial: primer
// status, primera etapa, checklist completo en no-hecho e historial vacío.
func Initialize(app *entity.Application, now time.Time) {
	app.ApplicationCode = NewApplicationCode()
	app.Status = InitialStatus()
	app.CurrentStage = InitialStage()
	app.StageStatus = make(map[string]entity.StageState, len(Stages))
	for _, stage := range Stages {
		app.StageStatus[stage] = entity.StageState{Done: false}
	}
	app.StageHistory = nil
	app.IsWithdrawn = false
	app.CreatedAt = now
	app.UpdatedAt = now
}

// ToggleStage marca o desmarca una etapa del checklist y anexa la entrada de
// auditoría correspondiente (ambas direcciones se auditan).
//
// Reglas:
//   - aplicación retirada → ErrApplicationWithdrawn, sin cambios.
//   - etapa fuera del conjunto cerrado → ErrUnknownStage, sin historial.
//   - al marcar hecha la etapa actual, CurrentStage avanza a la siguiente
//     etapa incompleta en el orden canónico.
//   - al desmarcar, CurrentStage nunca retrocede automáticamente: el avance
//     automático es solo hacia adelante y la reasignación manual es una
//     operación explícita aparte (Override).
func ToggleStage(app *entity.Application, stage string, done bool, notes string, attachments []string, actor string, now time.Time) error {
	if app.IsWithdrawn {
		return domain.ErrApplicationWithdrawn
	}
	if !ValidStage(stage) {
		return domain.ErrUnknownStage
	}

	state := entity.StageState{
		Done:        done,
		DoneBy:      actor,
		Notes:       notes,
		Attachments: attachments,
	}
	if done {
		at := now
		state.DoneAt = &at
	}
	app.StageStatus[stage] = state

	app.StageHistory = append(app.StageHistory, entity.StageEvent{
		Stage:       stage,
		Done:        done,
		Notes:       notes,
		CompletedAt: now,
	})

	if done && stage == app.CurrentStage {
		app.CurrentStage = nextIncompleteStage(app)
	}
	app.UpdatedAt = now
	return nil
}

// Override sobrescritura directa de status y/o etapa actual (solo admin).
// No auto-avanza; registra historial únicamente si la etapa actual cambió.
func Override(app *entity.Application, status, currentStage *string, notes string, now time.Time) error {
	if app.IsWithdrawn {
		return domain.ErrApplicationWithdrawn
	}
	if status != nil {
		if !ValidStatus(*status) {
			return domain.ErrInvalidInput
		}
		app.Status = *status
	}
	if currentStage != nil {
		if !ValidStage(*currentStage) {
			return domain.ErrUnknownStage
		}
		if *currentStage != app.CurrentStage {
			app.StageHistory = append(app.StageHistory, entity.StageEvent{
				Stage:       *currentStage,
				Done:        false,
				Notes:       notes,
				CompletedAt: now,
			})
		}
		app.CurrentStage = *currentStage
	}
	app.UpdatedAt = now
	return nil
}

// Withdraw marca la aplicación como retirada. Es idempotente: retirar dos
// veces es un éxito sin efecto, no un error. Devuelve true si ya lo estaba.
func Withdraw(app *entity.Application, now time.Time) (already bool) {
	if app.IsWithdrawn {
		return true
	}
	app.IsWithdrawn = true
	app.UpdatedAt = now
	return false
}

// nextIncompleteStage primera etapa no completada siguiendo el orden
// canónico a partir de la etapa actual; si todo lo posterior está completo,
// se queda en la última etapa del checklist.
func nextIncompleteStage(app *entity.Application) string {
	start := stageIndex[app.CurrentStage]
	for i := start + 1; i < len(Stages); i++ {
		if !app.StageStatus[Stages[i]].Done {
			return Stages[i]
		}
	}
	return Stages[len(Stages)-1]
}

// ValidatePriorities verifica que el mapeo de prioridades sea no vacío y que
// cada prioridad esté en [1,3]. No deduplica ni reordena empates.
func ValidatePriorities(mapping []entity.ProgrammePriority) error {
	if len(mapping) == 0 {
		return domain.ErrInvalidInput
	}
	for _, pp := range mapping {
		if pp.ProgrammeID == "" || pp.Priority < 1 || pp.Priority > 3 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
