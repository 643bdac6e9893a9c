// Package scope resuelve la visibilidad de un caller sobre estudiantes y
// aplicaciones a partir de su rol y su posición en la jerarquía de agentes.
// Toda ruta de lectura/escritura consume este resolver en vez de re-derivar
// la lógica de roles por operación.
package scope

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// Kind clase de alcance resuelto.
type Kind string

const (
	KindAll      Kind = "all"       // admin: sin restricción
	KindCompany  Kind = "company"   // owner: todo el tenant
	KindSubtree  Kind = "subtree"   // manager: él mismo + hijos directos
	KindSelfOnly Kind = "self_only" // admission/counsellor: solo lo propio
	KindDeny     Kind = "deny"      // rol o nivel no reconocido
)

// Caller identidad verificada de la petición entrante (la aporta el JWT).
type Caller struct {
	UserID string
	Role   string // admin, agent, student
}

// Descriptor límite de visibilidad resuelto. Los campos poblados dependen de
// Kind: CompanyID para company, AgentIDs para subtree, AgentID para self_only.
type Descriptor struct {
	Kind      Kind
	CompanyID string
	AgentIDs  []string
	AgentID   string
}

// Covers indica si un registro (agentID creador, companyID tenant) cae dentro
// del descriptor. Se usa en lecturas por ID directo; los listados aplican el
// descriptor vía el query builder.
func (d Descriptor) Covers(agentID, companyID string) bool {
	switch d.Kind {
	case KindAll:
		return true
	case KindCompany:
		return companyID == d.CompanyID
	case KindSubtree:
		for _, id := range d.AgentIDs {
			if id == agentID {
				return true
			}
		}
		return false
	case KindSelfOnly:
		return agentID == d.AgentID
	default:
		return false
	}
}

// AgentDirectory contrato mínimo de lectura sobre la jerarquía de agentes.
// Lo implementa el repositorio de agentes; la interfaz evita acoplar el
// dominio a la capa de persistencia.
type AgentDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Agent, error)
	ListByParent(ctx context.Context, parentID string) ([]*entity.Agent, error)
}

// Resolver calcula descriptores de alcance consultando la jerarquía.
type Resolver struct {
	dir AgentDirectory
}

// NewResolver construye el resolver con el directorio de agentes.
func NewResolver(dir AgentDirectory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve calcula el descriptor para el caller:
//   - admin                  → all
//   - agent owner            → company (todo el tenant)
//   - agent manager          → subtree: él mismo + hijos directos (un solo
//     nivel, nunca nietos)
//   - agent admission/counsellor → self_only
//   - cualquier otro rol o nivel → deny
//
// Un agente cuyo registro de jerarquía no existe produce ErrAgentNotFound:
// la identidad es válida pero su perfil falta, no es un problema de permisos.
func (r *Resolver) Resolve(ctx context.Context, caller Caller) (Descriptor, error) {
	if caller.Role == entity.RoleAdmin {
		return Descriptor{Kind: KindAll}, nil
	}
	if caller.Role != entity.RoleAgent {
		return Descriptor{Kind: KindDeny}, nil
	}

	ag, err := r.dir.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return Descriptor{Kind: KindDeny}, err
	}
	if ag == nil {
		return Descriptor{Kind: KindDeny}, domain.ErrAgentNotFound
	}

	switch ag.Level {
	case entity.LevelOwner:
		return Descriptor{Kind: KindCompany, CompanyID: ag.CompanyID}, nil
	case entity.LevelManager:
		children, err := r.dir.ListByParent(ctx, ag.ID)
		if err != nil {
			return Descriptor{Kind: KindDeny}, err
		}
		ids := make([]string, 0, len(children)+1)
		ids = append(ids, ag.ID)
		for _, child := range children {
			ids = append(ids, child.ID)
		}
		return Descriptor{Kind: KindSubtree, CompanyID: ag.CompanyID, AgentIDs: ids, AgentID: ag.ID}, nil
	case entity.LevelAdmission, entity.LevelCounsellor:
		return Descriptor{Kind: KindSelfOnly, CompanyID: ag.CompanyID, AgentID: ag.ID}, nil
	default:
		return Descriptor{Kind: KindDeny}, nil
	}
}

// ResolveAgent devuelve el registro de jerarquía del caller (para flujos de
// creación que necesitan agentID/companyID del creador). Falla con
// ErrAgentNotFound si el perfil no existe.
func (r *Resolver) ResolveAgent(ctx context.Context, caller Caller) (*entity.Agent, error) {
	if caller.Role != entity.RoleAgent {
		return nil, domain.ErrForbidden
	}
	ag, err := r.dir.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if ag == nil {
		return nil, domain.ErrAgentNotFound
	}
	return ag, nil
}
