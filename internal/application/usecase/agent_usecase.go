package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
	"golang.org/x/crypto/bcrypt"
)

// TxRunner contrato mínimo de transacción que necesita este paquete.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		agentRepo repository.AgentRepository,
	) error) error
}

// AgentUseCase gestiona la jerarquía de agentes: altas de subordinados,
// listado acotado por alcance y activación/desactivación.
type AgentUseCase struct {
	agentRepo repository.AgentRepository
	userRepo  repository.UserRepository
	resolver  *scope.Resolver
	tx        TxRunner
}

// NewAgentUseCase construye el caso de uso con sus puertos.
func NewAgentUseCase(agentRepo repository.AgentRepository, userRepo repository.UserRepository, resolver *scope.Resolver, tx TxRunner) *AgentUseCase {
	return &AgentUseCase{agentRepo: agentRepo, userRepo: userRepo, resolver: resolver, tx: tx}
}

// CreateSubordinate da de alta un subordinado bajo el caller: cuenta de
// acceso + registro de jerarquía en una sola transacción. Reglas: un owner
// crea managers y hojas; un manager solo hojas bajo sí mismo. El nuevo agente
// hereda el CompanyID del creador (invariante de la cadena de reporte).
func (uc *AgentUseCase) CreateSubordinate(ctx context.Context, caller scope.Caller, in dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	creator, err := uc.resolver.ResolveAgent(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !creator.IsActive {
		return nil, domain.ErrForbidden
	}
	if !levelAllowed(creator.Level, in.Level) {
		return nil, domain.ErrForbidden
	}

	// El padre por defecto es el creador; un owner puede colgar la hoja de
	// un manager de su propia empresa. Se re-valida la existencia del padre
	// dentro de la misma operación lógica (read-then-write).
	parentID := creator.ID
	if in.ParentID != nil && *in.ParentID != creator.ID {
		if creator.Level != entity.LevelOwner {
			return nil, domain.ErrForbidden
		}
		parent, err := uc.agentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.CompanyID != creator.CompanyID || parent.Level != entity.LevelManager {
			return nil, domain.ErrInvalidInput
		}
		parentID = parent.ID
	}

	if existing, err := uc.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    creator.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleAgent,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	agent := &entity.Agent{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CompanyID: creator.CompanyID,
		Level:     in.Level,
		ParentID:  &parentID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.Run(ctx, func(
		_ repository.CompanyRepository,
		userRepo repository.UserRepository,
		agentRepo repository.AgentRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return agentRepo.Create(ctx, agent)
	})
	if err != nil {
		return nil, err
	}

	out := toAgentResponse(agent)
	return &out, nil
}

// List agentes visibles para el caller según su alcance. companyID solo
// aplica para admin (elige el tenant a inspeccionar); el resto lo ignora.
func (uc *AgentUseCase) List(ctx context.Context, caller scope.Caller, companyID string, limit, offset int) (*dto.AgentListResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	var agents []*entity.Agent
	switch d.Kind {
	case scope.KindAll:
		if companyID == "" {
			return nil, domain.ErrInvalidInput
		}
		agents, err = uc.agentRepo.ListByCompany(ctx, companyID, limit, offset)
	case scope.KindCompany:
		agents, err = uc.agentRepo.ListByCompany(ctx, d.CompanyID, limit, offset)
	case scope.KindSubtree:
		agents, err = uc.agentRepo.ListByParent(ctx, d.AgentID)
		if err == nil {
			if self, selfErr := uc.agentRepo.GetByID(ctx, d.AgentID); selfErr == nil && self != nil {
				agents = append([]*entity.Agent{self}, agents...)
			}
		}
	case scope.KindSelfOnly:
		var self *entity.Agent
		self, err = uc.agentRepo.GetByID(ctx, d.AgentID)
		if self != nil {
			agents = []*entity.Agent{self}
		}
	default:
		// defensa en profundidad: listado vacío, no error
		agents = nil
	}
	if err != nil {
		return nil, err
	}

	out := &dto.AgentListResponse{Items: make([]dto.AgentResponse, 0, len(agents))}
	for _, a := range agents {
		out.Items = append(out.Items, toAgentResponse(a))
	}
	return out, nil
}

// GetByID obtiene un agente si el alcance del caller lo cubre.
func (uc *AgentUseCase) GetByID(ctx context.Context, caller scope.Caller, id string) (*dto.AgentResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	a, err := uc.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Covers(a.ID, a.CompanyID) {
		return nil, domain.ErrForbidden
	}
	out := toAgentResponse(a)
	return &out, nil
}

// SetActive activa o desactiva un agente dentro del alcance del caller.
// Un owner nunca se desactiva. La desactivación es un toggle, no un borrado.
func (uc *AgentUseCase) SetActive(ctx context.Context, caller scope.Caller, id string, active bool) (*dto.AgentResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	a, err := uc.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Covers(a.ID, a.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if a.Level == entity.LevelOwner && !active {
		return nil, domain.ErrOwnerImmutable
	}

	a.IsActive = active
	a.UpdatedAt = time.Now()
	if err := uc.agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// Reassign mueve un agente bajo otro padre. Relee agente y nuevo padre en la
// misma operación; la última escritura gana ante carreras concurrentes.
func (uc *AgentUseCase) Reassign(ctx context.Context, caller scope.Caller, id, newParentID string) (*dto.AgentResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	a, err := uc.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Covers(a.ID, a.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if a.Level == entity.LevelOwner {
		return nil, domain.ErrOwnerImmutable
	}

	parent, err := uc.agentRepo.GetByID(ctx, newParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	if parent.CompanyID != a.CompanyID || parent.ID == a.ID {
		return nil, domain.ErrInvalidInput
	}
	if !levelAllowed(parent.Level, a.Level) {
		return nil, domain.ErrInvalidInput
	}

	a.ParentID = &parent.ID
	a.UpdatedAt = time.Now()
	if err := uc.agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

func levelAllowed(creatorLevel, newLevel string) bool {
	for _, l := range entity.SubordinateLevels(creatorLevel) {
		if l == newLevel {
			return true
		}
	}
	return false
}
