package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// StudentUseCase gestiona estudiantes dentro del alcance del caller.
type StudentUseCase struct {
	studentRepo repository.StudentRepository
	agentRepo   repository.AgentRepository
	resolver    *scope.Resolver
}

// NewStudentUseCase construye el caso de uso con sus puertos.
func NewStudentUseCase(studentRepo repository.StudentRepository, agentRepo repository.AgentRepository, resolver *scope.Resolver) *StudentUseCase {
	return &StudentUseCase{studentRepo: studentRepo, agentRepo: agentRepo, resolver: resolver}
}

// Create da de alta un estudiante. Un agente crea bajo su propia identidad;
// un admin puede crear en nombre de cualquier agente (in.AgentID). El
// CompanyID se denormaliza del agente creador y queda fijo.
func (uc *StudentUseCase) Create(ctx context.Context, caller scope.Caller, in dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if in.FirstName == "" {
		return nil, domain.ErrInvalidInput
	}

	agent, err := uc.creatingAgent(ctx, caller, in.AgentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	student := &entity.Student{
		ID:             uuid.New().String(),
		AgentID:        agent.ID,
		CompanyID:      agent.CompanyID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Nationality:    in.Nationality,
		PassportNumber: in.PassportNumber,
		DateOfBirth:    in.DateOfBirth,
		ProfileStatus:  entity.ProfileIncomplete,
		Documents:      []entity.StudentDocument{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	out := toStudentResponse(student)
	return &out, nil
}

// List estudiantes visibles, con filtros que solo estrechan el alcance.
func (uc *StudentUseCase) List(ctx context.Context, caller scope.Caller, filters dto.StudentFilters, page query.Page) (*dto.StudentListResponse, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	page.Normalize()

	pred := query.New().Scope(d)
	pred.Text(query.StudentTextColumns, filters.Search)
	if filters.ProfileStatus != "" {
		pred.Eq("profile_status", filters.ProfileStatus)
	}
	if filters.AgentID != "" {
		pred.Eq("agent_id", filters.AgentID)
	}

	students, total, err := uc.studentRepo.List(ctx, pred, page)
	if err != nil {
		return nil, err
	}
	out := &dto.StudentListResponse{
		Items: make([]dto.StudentResponse, 0, len(students)),
		Page: dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: query.TotalPages(total, page.Limit),
		},
	}
	for _, s := range students {
		out.Items = append(out.Items, toStudentResponse(s))
	}
	return out, nil
}

// GetByID obtiene un estudiante si el alcance lo cubre; pedir por ID un
// registro fuera del alcance es acceso denegado, no un listado vacío.
func (uc *StudentUseCase) GetByID(ctx context.Context, caller scope.Caller, id string) (*dto.StudentResponse, error) {
	s, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	out := toStudentResponse(s)
	return &out, nil
}

// Update edita los campos permitidos de un estudiante cubierto por el
// alcance. AgentID/CompanyID nunca cambian por esta vía.
func (uc *StudentUseCase) Update(ctx context.Context, caller scope.Caller, id string, in dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	s, err := uc.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		s.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		s.LastName = *in.LastName
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Nationality != nil {
		s.Nationality = *in.Nationality
	}
	if in.PassportNumber != nil {
		s.PassportNumber = *in.PassportNumber
	}
	if in.DateOfBirth != nil {
		s.DateOfBirth = in.DateOfBirth
	}
	if in.ProfileStatus != nil {
		switch *in.ProfileStatus {
		case entity.ProfileIncomplete, entity.ProfileComplete, entity.ProfileVerified:
			s.ProfileStatus = *in.ProfileStatus
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	s.UpdatedAt = time.Now()

	if err := uc.studentRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toStudentResponse(s)
	return &out, nil
}

// AddDocument anexa un documento (la URL ya viene de object storage).
// Los documentos nunca se mutan en sitio: solo anexar y borrado lógico.
func (uc *StudentUseCase) AddDocument(ctx context.Context, caller scope.Caller, studentID string, in dto.AddDocumentRequest) (*dto.StudentResponse, error) {
	if in.URL == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.authorized(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}

	docType := in.Type
	if docType == "" {
		docType = "other"
	}
	s.Documents = append(s.Documents, entity.StudentDocument{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Type:       docType,
		URL:        in.URL,
		UploadedBy: caller.UserID,
		UploadedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()

	if err := uc.studentRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toStudentResponse(s)
	return &out, nil
}

// RemoveDocument borrado lógico de un documento (la URL durable permanece
// en storage; aquí solo se marca).
func (uc *StudentUseCase) RemoveDocument(ctx context.Context, caller scope.Caller, studentID, documentID string) (*dto.StudentResponse, error) {
	s, err := uc.authorized(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range s.Documents {
		if s.Documents[i].ID == documentID && !s.Documents[i].IsDeleted {
			s.Documents[i].IsDeleted = true
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	s.UpdatedAt = time.Now()

	if err := uc.studentRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toStudentResponse(s)
	return &out, nil
}

// authorized carga el estudiante y verifica que el alcance del caller lo cubra.
func (uc *StudentUseCase) authorized(ctx context.Context, caller scope.Caller, id string) (*entity.Student, error) {
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	s, err := uc.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Covers(s.AgentID, s.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// creatingAgent resuelve el agente al que se atribuye una creación: el
// propio caller si es agente, o el agente indicado si el caller es admin.
func (uc *StudentUseCase) creatingAgent(ctx context.Context, caller scope.Caller, agentID string) (*entity.Agent, error) {
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
