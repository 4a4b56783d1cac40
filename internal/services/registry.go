package services

import (
	"mwork_admission/internal/admission"
	"mwork_admission/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	CastingService      CastingService
	AdmissionService    AdmissionService
	NotificationService NotificationService
}

// NewServiceContainer собирает сервисы поверх координатора и леджера
func NewServiceContainer(
	db *gorm.DB,
	coordinator *admission.Coordinator,
	ledger *admission.Ledger,
	castings admission.CastingLookup,
	castingRepo repositories.CastingRepository,
	notificationRepo repositories.NotificationRepository,
) *ServiceContainer {
	return &ServiceContainer{
		CastingService:      NewCastingService(db, castingRepo),
		AdmissionService:    NewAdmissionService(coordinator, ledger, castings),
		NotificationService: NewNotificationService(db, notificationRepo),
	}
}
