package usecase

import (
	"context"
	"strings"

	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// searchLimit tope de resultados por colección en la búsqueda global.
const searchLimit = 10

// SearchUseCase búsqueda combinada sobre estudiantes y aplicaciones,
// siempre acotada por el alcance del caller.
type SearchUseCase struct {
	studentRepo repository.StudentRepository
	appRepo     repository.ApplicationRepository
	resolver    *scope.Resolver
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(studentRepo repository.StudentRepository, appRepo repository.ApplicationRepository, resolver *scope.Resolver) *SearchUseCase {
	return &SearchUseCase{studentRepo: studentRepo, appRepo: appRepo, resolver: resolver}
}

// Search consulta ambas colecciones con el mismo término. El término vacío
// es entrada inválida; cada colección se limita a searchLimit resultados.
func (uc *SearchUseCase) Search(ctx context.Context, caller scope.Caller, term string) (*dto.SearchResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.resolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	page := query.Page{Page: 1, Limit: searchLimit}

	studentPred := query.New().Scope(d)
	studentPred.Text(query.StudentTextColumns, term)
	students, _, err := uc.studentRepo.List(ctx, studentPred, page)
	if err != nil {
		return nil, err
	}

	appPred := query.New().Scope(d)
	appPred.Text(query.ApplicationTextColumns, term)
	apps, _, err := uc.appRepo.List(ctx, appPred, page)
	if err != nil {
		return nil, err
	}

	out := &dto.SearchResponse{
		Students:     make([]dto.StudentResponse, 0, len(students)),
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
	}
	for _, s := range students {
		out.Students = append(out.Students, toStudentResponse(s))
	}
	for _, a := range apps {
		out.Applications = append(out.Applications, toApplicationResponse(a))
	}
	return out, nil
}
