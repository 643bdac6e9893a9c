// Package lifecycle modela la máquina de estados de una aplicación:
// status administrativo, etapa actual y checklist de etapas con auditoría.
package lifecycle

// Status administrativo global de una aplicación, en orden de avance.
// El primer valor es el inicial al crear.
const (
	StatusSubmittedToPortal      = "submitted_to_portal"
	StatusPendingDocuments       = "pending_documents"
	StatusSubmittedToInstitution = "submitted_to_institution"
	StatusInstitutionQuery       = "institution_query"
	StatusFinalDecision          = "final_decision"
	StatusRespondToOffer         = "respond_to_offer"
)

// Statuses enumeración cerrada de status, en orden.
var Statuses = []string{
	StatusSubmittedToPortal,
	StatusPendingDocuments,
	StatusSubmittedToInstitution,
	StatusInstitutionQuery,
	StatusFinalDecision,
	StatusRespondToOffer,
}

// Stages checklist canónico de hitos, agrupado por fases. El orden importa:
// CurrentStage avanza hacia la siguiente etapa incompleta en este orden.
// La primera etapa es la inicial al crear.
var Stages = []string{
	// Fase 1: perfil y recolección de documentos
	"profile_created",
	"personal_details_completed",
	"education_history_completed",
	"test_scores_recorded",
	"documents_requested",
	"documents_collected",
	"documents_verified",

	// Fase 2: búsqueda y selección de programas
	"programme_shortlist_prepared",
	"programme_selected",

	// Fase 3: envío a la institución
	"application_form_completed",
	"application_submitted",
	"institution_acknowledged",

	// Fase 4: decisión
	"institution_assessing",
	"institution_query_resolved",
	"conditional_offer_received",
	"final_decision_received",
	"offer_accepted",

	// Fase 5: visa
	"visa_documents_prepared",
	"visa_application_filed",
	"visa_interview_completed",
	"visa_granted",

	// Fase 6: cierre financiero
	"tuition_deposit_paid",
	"tuition_settled",
	"enrollment_confirmed",
}

var (
	stageIndex  = make(map[string]int, len(Stages))
	statusIndex = make(map[string]int, len(Statuses))
)

func init() {
	for i, s := range Stages {
		stageIndex[s] = i
	}
	for i, s := range Statuses {
		statusIndex[s] = i
	}
}

// InitialStatus primer miembro de la enumeración de status.
func InitialStatus() string { return Statuses[0] }

// InitialStage primera etapa del checklist canónico.
func InitialStage() string { return Stages[0] }

// ValidStage indica si el nombre pertenece al conjunto cerrado de etapas.
func ValidStage(stage string) bool {
	_, ok := stageIndex[stage]
	return ok
}

// ValidStatus indica si el nombre pertenece a la enumeración de status.
func ValidStatus(status string) bool {
	_, ok := statusIndex[status]
	return ok
}
