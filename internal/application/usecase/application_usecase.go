package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/lifecycle"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

// createCodeRetries reintentos ante colisión del código compartible.
const createCodeRetries = 3

// ApplicationUseCase orquesta el ciclo de vida de aplicaciones: creación,
// listado acotado, toggles de etapa, overrides de admin, retiro y borrado.
// El notificador y el mailer se inyectan por constructor y son best-effort:
// su fallo nunca revierte la mutación.
type ApplicationUseCase struct {
	appRepo       repository.ApplicationRepository
	studentRepo   repository.StudentRepository
	agentRepo     repository.AgentRepository
	programmeRepo repository.ProgrammeRepository
	resolver      *scope.Resolver
	notifier      ports.Notifier
	mailer        ports.Mailer
	log           *logger.Logger
}

// NewApplicationUseCase construye el caso de uso con sus puertos.
func NewApplicationUseCase(
	appRepo repository.ApplicationRepository,
	studentRepo repository.StudentRepository,
	agentRepo repository.AgentRepository,
	programmeRepo repository.ProgrammeRepository,
	resolver *scope.Resolver,
	notifier ports.Notifier,
	mailer ports.Mailer,
	log *logger.Logger,
) *ApplicationUseCase {
	return &ApplicationUseCase{
		appRepo:       appRepo,
		studentRepo:   studentRepo,
		agentRepo:     agentRepo,
		programmeRepo: programmeRepo,
		resolver:      resolver,
		notifier:      notifier,
		mailer:        mailer,
		log:           log,
	}
}

// Create da de alta una aplicación: agente para sí mismo, admin en nombre de
// cualquier agente. Valida estudiante, programas y prioridades; inicializa la
// máquina de etapas y genera el código compartible (reintenta ante colisión).
func (uc *ApplicationUseCase) Create(ctx context.Context, caller scope.Caller, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	agent, err := uc.creatingAgent(ctx, caller, in.AgentID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.ValidatePriorities(in.PriorityMapping); err != nil {
		return nil, err
	}
	if len(in.ProgrammeIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	student, err := uc.studentRepo.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrNotFound
	}
	if student.CompanyID != agent.CompanyID {
		return nil, domain.ErrForbidden
	}

	for _, pid := range in.ProgrammeIDs {
		p, err := uc.programmeRepo.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}

	app := &entity.Application{
		ID:              uuid.New().String(),
		StudentID:       student.ID,
		AgentID:         agent.ID,
		CompanyID:       agent.CompanyID, // siempre el del agente creador, inmutable
		ProgrammeIDs:    in.ProgrammeIDs,
		PriorityMapping: in.PriorityMapping,
	}
	lifecycle.Initialize(app, time.Now())

	// el índice único de application_code resuelve la carrera de códigos
	for attempt := 0; ; attempt++ {
		err = uc.appRepo.Create(ctx, app)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicate) && attempt < createCodeRetries {
			app.ApplicationCode = lifecycle.NewApplicationCode()
			continue
		}
		return nil, err
	}

	uc.dispatch(ctx, caller, agent, ports.Notification{
		RecipientID: agent.UserID,
		Type:        entity.NotifyAppCreated,
		Title:       "Nueva aplicación",
		Message:     fmt.Sprintf("Se creó la aplicación %s para %s %s", app.ApplicationCode, student.FirstName, student.LastName),
		Data:        map[string]any{"application_id": app.ID, "application_code": app.ApplicationCode},
	})
	uc.mail(student.Email, "Tu aplicación fue registrada",
		fmt.Sprintf("<p>Hola %s,</p><p>Tu aplicación <b>%s</b> fue registrada y está en curso.</p>", student.FirstName, app.ApplicationCode))

	out := toApplicationResponse(app)
	return &out, nil
}

// List aplicaciones visibles, con filtros que solo estrechan el alcance.
func (uc *ApplicationUseCase) List(ctx context.Context, caller scope.Caller, filters dto.ApplicationFilters, page query.Page) (*dto.ApplicationListResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	page.Normalize()

	pred := query.New().Scope(d)
	pred.Text(query.ApplicationTextColumns, filters.Search)
	if filters.StudentID != "" {
		pred.Eq("student_id", filters.StudentID)
	}
	if filters.Status != "" {
		pred.Eq("status", filters.Status)
	}
	if filters.Stage != "" {
		pred.Eq("current_stage", filters.Stage)
	}
	if filters.AgentID != "" {
		pred.Eq("agent_id", filters.AgentID)
	}
	if filters.Withdrawn != nil {
		pred.Eq("is_withdrawn", *filters.Withdrawn)
	}

	apps, total, err := uc.appRepo.List(ctx, pred, page)
	if err != nil {
		return nil, err
	}
	out := &dto.ApplicationListResponse{
		Items: make([]dto.ApplicationResponse, 0, len(apps)),
		Page: dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: query.TotalPages(total, page.Limit),
		},
	}
	for _, a := range apps {
		out.Items = append(out.Items, toApplicationResponse(a))
	}
	return out, nil
}

// GetByID obtiene una aplicación si el alcance la cubre. Un agente que pide
// por ID la aplicación de otro agente recibe acceso denegado.
func (uc *ApplicationUseCase) GetByID(ctx context.Context, caller scope.Caller, id string) (*dto.ApplicationResponse, error) {
	app, _, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	out := toApplicationResponse(app)
	return &out, nil
}

// GetByCode busca una aplicación por su código compartible (ADM-XXXXXXXX).
// Aplica las mismas reglas de alcance que la lectura por id.
func (uc *ApplicationUseCase) GetByCode(ctx context.Context, caller scope.Caller, code string) (*dto.ApplicationResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	app, err := uc.appRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Covers(app.AgentID, app.CompanyID) {
		return nil, domain.ErrForbidden
	}
	out := toApplicationResponse(app)
	return &out, nil
}

// ToggleStage marca o desmarca una etapa del checklist. La validación y el
// avance de etapa viven en el dominio (lifecycle); aquí se persiste y se
// notifica al agente dueño cuando el actor es otro.
func (uc *ApplicationUseCase) ToggleStage(ctx context.Context, caller scope.Caller, id, stage string, in dto.ToggleStageRequest) (*dto.ApplicationResponse, error) {
	app, _, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ToggleStage(app, stage, in.Done, in.Notes, in.Attachments, caller.UserID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if owner, err := uc.agentRepo.GetByID(ctx, app.AgentID); err == nil && owner != nil {
		verb := "completada"
		if !in.Done {
			verb = "reabierta"
		}
		uc.dispatch(ctx, caller, owner, ports.Notification{
			RecipientID: owner.UserID,
			Type:        entity.NotifyStageUpdated,
			Title:       "Etapa actualizada",
			Message:     fmt.Sprintf("La etapa %s de %s fue %s", stage, app.ApplicationCode, verb),
			Data:        map[string]any{"application_id": app.ID, "stage": stage, "done": in.Done},
		})
	}

	out := toApplicationResponse(app)
	return &out, nil
}

// Override sobrescritura directa de status/etapa; el router la restringe a
// admin. Notifica al agente dueño y, en decisión final, avisa al estudiante
// por correo.
func (uc *ApplicationUseCase) Override(ctx context.Context, caller scope.Caller, id string, in dto.OverrideRequest) (*dto.ApplicationResponse, error) {
	app, d, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if d.Kind != scope.KindAll {
		return nil, domain.ErrForbidden
	}

	if err := lifecycle.Override(app, in.Status, in.CurrentStage, in.Notes, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if owner, err := uc.agentRepo.GetByID(ctx, app.AgentID); err == nil && owner != nil {
		notifType := entity.NotifyStatusUpdated
		if app.Status == lifecycle.StatusFinalDecision {
			notifType = entity.NotifyFinalDecision
		}
		uc.dispatch(ctx, caller, owner, ports.Notification{
			RecipientID: owner.UserID,
			Type:        notifType,
			Title:       "Aplicación actualizada",
			Message:     fmt.Sprintf("La aplicación %s pasó a %s", app.ApplicationCode, app.Status),
			Data:        map[string]any{"application_id": app.ID, "status": app.Status, "current_stage": app.CurrentStage},
		})
	}
	if app.Status == lifecycle.StatusFinalDecision {
		if student, err := uc.studentRepo.GetByID(ctx, app.StudentID); err == nil && student != nil {
			uc.mail(student.Email, "Decisión final disponible",
				fmt.Sprintf("<p>Hola %s,</p><p>Hay una decisión final para tu aplicación <b>%s</b>. Contacta a tu asesor.</p>", student.FirstName, app.ApplicationCode))
		}
	}

	out := toApplicationResponse(app)
	return &out, nil
}

// Withdraw marca la aplicación como retirada (terminal e idempotente:
// retirar dos veces es un éxito sin efecto).
func (uc *ApplicationUseCase) Withdraw(ctx context.Context, caller scope.Caller, id string) (*dto.ApplicationResponse, error) {
	app, _, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if already := lifecycle.Withdraw(app, time.Now()); !already {
		if err := uc.appRepo.Update(ctx, app); err != nil {
			return nil, err
		}
		if owner, err := uc.agentRepo.GetByID(ctx, app.AgentID); err == nil && owner != nil {
			uc.dispatch(ctx, caller, owner, ports.Notification{
				RecipientID: owner.UserID,
				Type:        entity.NotifyAppWithdrawn,
				Title:       "Aplicación retirada",
				Message:     fmt.Sprintf("La aplicación %s fue retirada", app.ApplicationCode),
				Data:        map[string]any{"application_id": app.ID},
			})
		}
	}

	out := toApplicationResponse(app)
	return &out, nil
}

// Delete borrado físico, distinto del retiro; el router lo restringe a admin.
func (uc *ApplicationUseCase) Delete(ctx context.Context, caller scope.Caller, id string) error {
	if caller.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return domain.ErrNotFound
	}
	return uc.appRepo.Delete(ctx, id)
}

// authorized carga la aplicación y verifica cobertura del alcance.
func (uc *ApplicationUseCase) authorized(ctx context.Context, caller scope.Caller, id string) (*entity.Application, scope.Descriptor, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, d, err
	}
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, d, err
	}
	if app == nil {
		return nil, d, domain.ErrNotFound
	}
	if !d.Covers(app.AgentID, app.CompanyID) {
		return nil, d, domain.ErrForbidden
	}
	return app, d, nil
}

func (uc *ApplicationUseCase) creatingAgent(ctx context.Context, caller scope.Caller, agentID string) (*entity.Agent, error) {
	if caller.Role == entity.RoleAdmin {
		if agentID == "" {
			return nil, domain.ErrInvalidInput
		}
		agent, err := uc.agentRepo.GetByID(ctx, agentID)
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, domain.ErrAgentNotFound
		}
		return agent, nil
	}
	return uc.resolver.ResolveAgent(ctx, caller)
}

// dispatch entrega la notificación solo cuando afecta a alguien distinto del
// actor. Best-effort por contrato del puerto: nunca falla la mutación.
func (uc *ApplicationUseCase) dispatch(ctx context.Context, caller scope.Caller, recipient *entity.Agent, n ports.Notification) {
	if uc.notifier == nil || recipient.UserID == caller.UserID {
		return
	}
	uc.notifier.Notify(ctx, n)
}

// mail envío best-effort; el error solo se registra.
func (uc *ApplicationUseCase) mail(to, subject, body string) {
	if uc.mailer == nil || to == "" {
		return
	}
	if err := uc.mailer.Send(to, subject, body); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("to", to).Msg("correo transaccional no enviado")
	}
}
