package admission

import (
	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"
)

// Decision - результат проверки перехода.
type Decision struct {
	From models.AssignmentStatus
	To   models.AssignmentStatus
	// NoOp - заявка уже в целевом состоянии, писать и оповещать нечего
	NoOp bool
	// Delta - изменение числа активных мест роли: +1, -1 или 0
	Delta int
}

// Decide проверяет переход current -> target при active занятых местах из capacity.
// Чистая функция: вызывать только внутри домена кастинга, где active актуален.
func Decide(current, target models.AssignmentStatus, active, capacity int) (Decision, error) {
	d := Decision{From: current, To: target}

	if current == models.AssignmentStatusRemoved || target == models.AssignmentStatusPending || !target.Valid() {
		return d, invalidTransition(current, target)
	}

	if current == target {
		// active -> active и rejected -> rejected идемпотентны; removed отсечен выше
		d.NoOp = true
		return d, nil
	}

	switch target {
	case models.AssignmentStatusActive:
		if active >= capacity {
			return d, apperrors.ErrCapacityExceeded.WithDetails(map[string]int{
				"active":   active,
				"capacity": capacity,
			})
		}
		d.Delta = 1
	case models.AssignmentStatusRejected, models.AssignmentStatusRemoved:
		if current == models.AssignmentStatusActive {
			d.Delta = -1
		}
	}
	return d, nil
}

func invalidTransition(from, to models.AssignmentStatus) error {
	return apperrors.ErrInvalidTransition.WithDetails(map[string]string{
		"from": string(from),
		"to":   string(to),
	})
}
