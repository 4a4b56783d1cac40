package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"mwork_admission/internal/models"
	"mwork_admission/test/helpers"

	"github.com/stretchr/testify/require"
)

// apiError - тело ответа с ошибкой
type apiError struct {
	Error struct {
		Code    string                 `json:"code"`
		Domain  string                 `json:"domain"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

// actor - пользователь и его токен
type actor struct {
	User  *models.User
	Token string
}

func newActor(t *testing.T, ts *TestServer, role models.UserRole) actor {
	user := helpers.CreateUser(t, ts.DB, role)
	return actor{User: user, Token: ts.Token(t, user)}
}

// createCastingViaAPI создает и сразу публикует кастинг через HTTP
func createCastingViaAPI(t *testing.T, ts *TestServer, organizer actor, roles map[string]int, order ...string) models.Casting {
	t.Helper()

	items := make([]map[string]interface{}, 0, len(order))
	for _, role := range order {
		items = append(items, map[string]interface{}{"role": role, "capacity": roles[role]})
	}
	body := map[string]interface{}{
		"title":   "Неделя моды",
		"city":    "Almaty",
		"publish": true,
		"roles":   items,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", organizer.Token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var casting models.Casting
	DecodeJSON(t, bodyStr, &casting)
	return casting
}

func applyViaAPI(t *testing.T, ts *TestServer, applicant actor, castingID string) models.Assignment {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/castings/%s/applications", castingID), applicant.Token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var assignment models.Assignment
	DecodeJSON(t, bodyStr, &assignment)
	return assignment
}

func assignmentURL(id, action string) string {
	return fmt.Sprintf("/api/v1/assignments/%s/%s", id, action)
}
