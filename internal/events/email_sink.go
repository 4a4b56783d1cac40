package events

import (
	"context"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/email"
	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"

	"gorm.io/gorm"
)

// EmailSink пишет заявителю, когда организатор принял или отклонил заявку.
type EmailSink struct {
	db       *gorm.DB
	users    repositories.UserRepository
	castings repositories.CastingRepository
	provider email.Provider
	renderer email.TemplateRenderer
}

func NewEmailSink(db *gorm.DB, users repositories.UserRepository, castings repositories.CastingRepository, provider email.Provider, renderer email.TemplateRenderer) *EmailSink {
	return &EmailSink{db: db, users: users, castings: castings, provider: provider, renderer: renderer}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Deliver(ctx context.Context, change admission.StatusChange) error {
	if change.NewStatus != models.AssignmentStatusActive && change.NewStatus != models.AssignmentStatusRejected {
		return nil
	}

	db := s.db.WithContext(ctx)
	user, err := s.users.FindByID(db, change.UserID)
	if err != nil {
		return err
	}
	casting, err := s.castings.FindByID(db, change.CastingID)
	if err != nil {
		return err
	}

	data := email.TemplateData{
		"Name":         user.Name,
		"CastingTitle": casting.Title,
		"Role":         string(change.Role),
		"StatusLabel":  StatusLabel(change.NewStatus),
	}
	if casting.CastingDate != nil {
		data["CastingDate"] = casting.CastingDate.Format("02.01.2006")
	}

	body, err := s.renderer.Render(email.TemplateAssignmentStatus, data)
	if err != nil {
		return err
	}

	return s.provider.Send(&email.Email{
		To:       []string{user.Email},
		Subject:  "MWork: заявка " + StatusLabel(change.NewStatus),
		HTMLBody: body,
	})
}
