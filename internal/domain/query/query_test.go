package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cláusulas derivadas del alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestPredicate_ScopeAllNoAportaClausula(t *testing.T) {
	where, args := query.New().Scope(scope.Descriptor{Kind: scope.KindAll}).Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestPredicate_ScopeCompany(t *testing.T) {
	d := scope.Descriptor{Kind: scope.KindCompany, CompanyID: "co-1"}
	where, args := query.New().Scope(d).Where()
	assert.Equal(t, "WHERE company_id = $1", where)
	assert.Equal(t, []any{"co-1"}, args)
}

func TestPredicate_ScopeSubtree(t *testing.T) {
	d := scope.Descriptor{Kind: scope.KindSubtree, AgentIDs: []string{"ag-m", "ag-a"}}
	where, args := query.New().Scope(d).Where()
	assert.Equal(t, "WHERE agent_id = ANY($1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, []string{"ag-m", "ag-a"}, args[0])
}

func TestPredicate_ScopeSelfOnly(t *testing.T) {
	d := scope.Descriptor{Kind: scope.KindSelfOnly, AgentID: "ag-a"}
	where, args := query.New().Scope(d).Where()
	assert.Equal(t, "WHERE agent_id = $1", where)
	assert.Equal(t, []any{"ag-a"}, args)
}

func TestPredicate_ScopeDenyNoMatcheaNada(t *testing.T) {
	where, args := query.New().Scope(scope.Descriptor{Kind: scope.KindDeny}).Where()
	assert.Equal(t, "WHERE FALSE", where)
	assert.Empty(t, args)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros: solo estrechan, nunca sustituyen el alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestPredicate_FiltrosSeAnexanConAND(t *testing.T) {
	d := scope.Descriptor{Kind: scope.KindCompany, CompanyID: "co-1"}
	p := query.New().Scope(d).Eq("student_id", "st-9").Eq("status", "pending_documents")
	where, args := p.Where()
	// la cláusula de alcance siempre va primero y los filtros en AND después
	assert.Equal(t, "WHERE company_id = $1 AND student_id = $2 AND status = $3", where)
	assert.Equal(t, []any{"co-1", "st-9", "pending_documents"}, args)
}

func TestPredicate_FiltroSobreDenySigueSinMatchear(t *testing.T) {
	p := query.New().Scope(scope.Descriptor{Kind: scope.KindDeny}).Eq("student_id", "st-9")
	where, _ := p.Where()
	assert.Contains(t, where, "FALSE", "un filtro nunca reabre un alcance denegado")
}

func TestPredicate_TextoLibreILIKESobreColumnasPermitidas(t *testing.T) {
	p := query.New().Text(query.StudentTextColumns, "garcía")
	where, args := p.Where()
	assert.Equal(t, "WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR passport_number ILIKE $1)", where)
	assert.Equal(t, []any{"%garcía%"}, args)
}

func TestPredicate_TextoVacioNoAportaClausula(t *testing.T) {
	where, args := query.New().Text(query.StudentTextColumns, "   ").Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestPredicate_NextArgNumeraDespuesDelWhere(t *testing.T) {
	p := query.New().Scope(scope.Descriptor{Kind: scope.KindSelfOnly, AgentID: "ag-a"}).Eq("status", "x")
	assert.Equal(t, 3, p.NextArg(), "LIMIT/OFFSET del repo siguen la numeración")
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPage_DefaultsYOffset(t *testing.T) {
	p := query.Page{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = query.Page{Page: 3, Limit: 25}
	p.Normalize()
	assert.Equal(t, 50, p.Offset())

	p = query.Page{Page: 1, Limit: 5000}
	p.Normalize()
	assert.Equal(t, 100, p.Limit, "el límite se acota a 100")
}

func TestTotalPages_Ceil(t *testing.T) {
	assert.Equal(t, 0, query.TotalPages(0, 10))
	assert.Equal(t, 1, query.TotalPages(1, 10))
	assert.Equal(t, 1, query.TotalPages(10, 10))
	assert.Equal(t, 2, query.TotalPages(11, 10))
	assert.Equal(t, 4, query.TotalPages(31, 10))
}
