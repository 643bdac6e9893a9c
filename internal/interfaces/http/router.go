package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/auth"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AgentUC        *usecase.AgentUseCase
	StudentUC      *usecase.StudentUseCase
	ApplicationUC  *usecase.ApplicationUseCase
	UniversityUC   *usecase.UniversityUseCase
	ProgrammeUC    *usecase.ProgrammeUseCase
	SearchUC       *usecase.SearchUseCase
	NotificationUC *usecase.NotificationUseCase
	Storage        ports.FileStorage
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.RegisterCompany)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Agentes (protegido)
	agents := protected.Group("/agents")
	agentHandler := NewAgentHandler(deps.AgentUC)
	agents.Post("/", agentHandler.Create)
	agents.Get("/", agentHandler.List)
	agents.Get("/:id", agentHandler.GetByID)
	agents.Patch("/:id/active", agentHandler.SetActive)
	agents.Patch("/:id/parent", agentHandler.Reassign)

	// Estudiantes y documentos (protegido)
	students := protected.Group("/students")
	studentHandler := NewStudentHandler(deps.StudentUC, deps.Storage)
	students.Post("/", studentHandler.Create)
	students.Get("/", studentHandler.List)
	students.Get("/:id", studentHandler.GetByID)
	students.Put("/:id", studentHandler.Update)
	students.Post("/:id/documents", studentHandler.UploadDocument)
	students.Delete("/:id/documents/:docID", studentHandler.RemoveDocument)

	// Aplicaciones (protegido; override y delete solo admin)
	applications := protected.Group("/applications")
	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	applications.Post("/", applicationHandler.Create)
	applications.Get("/", applicationHandler.List)
	applications.Get("/code/:code", applicationHandler.GetByCode)
	applications.Get("/:id", applicationHandler.GetByID)
	applications.Patch("/:id/stages/:stage", applicationHandler.ToggleStage)
	applications.Patch("/:id/override", RequireRole(entity.RoleAdmin), applicationHandler.Override)
	applications.Post("/:id/withdraw", applicationHandler.Withdraw)
	applications.Delete("/:id", RequireRole(entity.RoleAdmin), applicationHandler.Delete)

	// Catálogo de universidades y programas (lectura autenticada, escritura admin)
	universities := protected.Group("/universities")
	universityHandler := NewUniversityHandler(deps.UniversityUC)
	universities.Get("/", universityHandler.List)
	universities.Get("/:id", universityHandler.GetByID)
	universities.Post("/", RequireRole(entity.RoleAdmin), universityHandler.Create)
	universities.Put("/:id", RequireRole(entity.RoleAdmin), universityHandler.Update)

	programmes := protected.Group("/programmes")
	programmeHandler := NewProgrammeHandler(deps.ProgrammeUC)
	programmes.Get("/", programmeHandler.List)
	programmes.Get("/:id", programmeHandler.GetByID)
	programmes.Post("/", RequireRole(entity.RoleAdmin), programmeHandler.Create)
	programmes.Put("/:id", RequireRole(entity.RoleAdmin), programmeHandler.Update)

	// Búsqueda global (protegido)
	searchHandler := NewSearchHandler(deps.SearchUC)
	protected.Get("/search", searchHandler.Search)

	// Notificaciones del caller (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
}
