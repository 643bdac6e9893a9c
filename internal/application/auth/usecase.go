package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta un grupo de escrituras como unidad atómica: todo commitea
// junto o se revierte completo. Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		agentRepo repository.AgentRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro de agencia y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          TxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tx: tx, jwtCfg: jwtCfg}
}

// RegisterCompany da de alta una agencia: Company + cuenta de acceso +
// agente owner, los tres dentro de una misma transacción. Si cualquier paso
// falla no queda nada persistido; el fallo sube al caller sin retry.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if in.CompanyName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.companyRepo.GetByName(ctx, in.CompanyName); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
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
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		Country:   in.Country,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.OwnerName,
		Role:         entity.RoleAgent,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	owner := &entity.Agent{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CompanyID: company.ID,
		Level:     entity.LevelOwner,
		ParentID:  nil,
		Name:      in.OwnerName,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.Run(ctx, func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		agentRepo repository.AgentRepository,
	) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return agentRepo.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterCompanyResponse{
		Company: toCompanyResponse(company),
		Owner:   toAgentResponse(owner),
		User:    toUserResponse(user),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Country:   c.Country,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAgentResponse(a *entity.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		CompanyID: a.CompanyID,
		Level:     a.Level,
		ParentID:  a.ParentID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
