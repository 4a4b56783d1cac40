package validator

import (
	"log"

	"mwork_admission/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила допуска.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-role-tag': роль кастинга (model, photographer, designer, volunteer)
	mustRegister("is-role-tag", validateRoleTag)

	// 'is-assignment-target': статус, в который организатор может перевести заявку
	mustRegister("is-assignment-target", validateAssignmentTarget)
}

func validateRoleTag(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Для пустых значений есть 'required'
	}
	return models.RoleTag(value).Valid()
}

func validateAssignmentTarget(fl validator.FieldLevel) bool {
	switch models.AssignmentStatus(fl.Field().String()) {
	case models.AssignmentStatusActive, models.AssignmentStatusRejected, models.AssignmentStatusRemoved:
		return true
	}
	return false
}
