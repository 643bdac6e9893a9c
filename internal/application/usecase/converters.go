package usecase

import (
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

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

func toStudentResponse(s *entity.Student) dto.StudentResponse {
	docs := make([]entity.StudentDocument, 0, len(s.Documents))
	for _, d := range s.Documents {
		if !d.IsDeleted {
			docs = append(docs, d)
		}
	}
	return dto.StudentResponse{
		ID:             s.ID,
		AgentID:        s.AgentID,
		CompanyID:      s.CompanyID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		Nationality:    s.Nationality,
		PassportNumber: s.PassportNumber,
		DateOfBirth:    s.DateOfBirth,
		ProfileStatus:  s.ProfileStatus,
		Documents:      docs,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toApplicationResponse(a *entity.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:              a.ID,
		ApplicationCode: a.ApplicationCode,
		StudentID:       a.StudentID,
		AgentID:         a.AgentID,
		CompanyID:       a.CompanyID,
		ProgrammeIDs:    a.ProgrammeIDs,
		PriorityMapping: a.PriorityMapping,
		Status:          a.Status,
		CurrentStage:    a.CurrentStage,
		StageStatus:     a.StageStatus,
		StageHistory:    a.StageHistory,
		IsWithdrawn:     a.IsWithdrawn,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toUniversityResponse(u *entity.University) dto.UniversityResponse {
	return dto.UniversityResponse{
		ID:        u.ID,
		Name:      u.Name,
		Country:   u.Country,
		City:      u.City,
		Website:   u.Website,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProgrammeResponse(p *entity.Programme) dto.ProgrammeResponse {
	return dto.ProgrammeResponse{
		ID:             p.ID,
		UniversityID:   p.UniversityID,
		Name:           p.Name,
		Level:          p.Level,
		DurationMonths: p.DurationMonths,
		TuitionFee:     p.TuitionFee,
		Currency:       p.Currency,
		IntakeMonths:   p.IntakeMonths,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
