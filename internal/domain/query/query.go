// Package query construye predicados SQL canónicos combinando un descriptor
// de alcance con filtros del caller. La cláusula de alcance siempre va en AND
// con los filtros: un filtro puede estrechar el resultado pero nunca ampliar
// lo que el alcance permite.
package query

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// Columnas permitidas para búsqueda de texto libre por entidad. El caller
// nunca aporta nombres de columna: solo texto, que se aplica contra esta
// lista fija (evita inyección de operadores arbitrarios).
var (
	StudentTextColumns     = []string{"first_name", "last_name", "email", "passport_number"}
	ApplicationTextColumns = []string{"application_code"}
	UniversityTextColumns  = []string{"name", "country", "city"}
	ProgrammeTextColumns   = []string{"name", "level"}
)

// Predicate acumula condiciones y argumentos posicionales para pgx.
// Las condiciones se unen con AND en el orden en que se añaden.
type Predicate struct {
	conds []string
	args  []any
}

// New crea un predicado vacío.
func New() *Predicate {
	return &Predicate{}
}

// Scope añade la cláusula derivada del descriptor de alcance. Debe llamarse
// antes que cualquier filtro; deny produce FALSE (no matchea nada).
func (p *Predicate) Scope(d scope.Descriptor) *Predicate {
	switch d.Kind {
	case scope.KindAll:
		// sin cláusula
	case scope.KindCompany:
		p.add("company_id = %s", d.CompanyID)
	case scope.KindSubtree:
		p.add("agent_id = ANY(%s)", d.AgentIDs)
	case scope.KindSelfOnly:
		p.add("agent_id = %s", d.AgentID)
	default:
		p.conds = append(p.conds, "FALSE")
	}
	return p
}

// Eq añade una igualdad exacta sobre una columna fija del repositorio.
func (p *Predicate) Eq(column string, value any) *Predicate {
	p.add(column+" = %s", value)
	return p
}

// NotEq añade una desigualdad sobre una columna fija.
func (p *Predicate) NotEq(column string, value any) *Predicate {
	p.add(column+" <> %s", value)
	return p
}

// Text añade una búsqueda de subcadena case-insensitive sobre las columnas
// permitidas (OR entre columnas, AND con el resto del predicado). Un texto
// vacío no añade nada.
func (p *Predicate) Text(columns []string, text string) *Predicate {
	if strings.TrimSpace(text) == "" || len(columns) == 0 {
		return p
	}
	p.args = append(p.args, "%"+strings.TrimSpace(text)+"%")
	n := len(p.args)
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, n))
	}
	p.conds = append(p.conds, "("+strings.Join(parts, " OR ")+")")
	return p
}

// Where devuelve la cláusula WHERE completa (o cadena vacía si no hay
// condiciones) y los argumentos posicionales acumulados.
func (p *Predicate) Where() (string, []any) {
	if len(p.conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(p.conds, " AND "), p.args
}

// NextArg índice del siguiente placeholder posicional (para que el
// repositorio pueda anexar LIMIT/OFFSET con la numeración correcta).
func (p *Predicate) NextArg() int {
	return len(p.args) + 1
}

func (p *Predicate) add(format string, value any) {
	p.args = append(p.args, value)
	p.conds = append(p.conds, fmt.Sprintf(format, fmt.Sprintf("$%d", len(p.args))))
}

// Page parámetros de paginación de listados.
type Page struct {
	Page  int
	Limit int
}

// Normalize aplica los valores por defecto (page=1, limit=10) y acota el
// límite a 100.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset filas a saltar: (page-1)*limit.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages número de páginas para un total dado: ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
