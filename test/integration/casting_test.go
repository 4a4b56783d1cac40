package integration_test

import (
	"net/http"
	"testing"

	"mwork_admission/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCasting_FullFlow - создание черновика, публикация, закрытие набора
func TestCasting_FullFlow(t *testing.T) {
	t.Parallel() // ✅ Параллельный запуск

	ts := NewTestServer(t)
	employer := newActor(t, ts, models.UserRoleEmployer)
	applicant := newActor(t, ts, models.UserRoleModel)

	// 1. Создаем черновик
	body := map[string]interface{}{
		"title":        "Съемка лукбука",
		"city":         "Almaty",
		"requirements": map[string]interface{}{"height_min": 170},
		"roles": []map[string]interface{}{
			{"role": "model", "capacity": 3},
			{"role": "photographer", "capacity": 1},
		},
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", employer.Token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var casting models.Casting
	DecodeJSON(t, bodyStr, &casting)
	assert.Equal(t, models.CastingStatusDraft, casting.Status)
	assert.Equal(t, employer.User.ID, casting.OrganizerID)
	require.Len(t, casting.Roles, 2)
	assert.Equal(t, models.RoleModel, casting.Roles[0].Role)
	t.Logf("КАСТИНГ: Создание черновика (201) - Успешно.")

	// 2. В черновик откликнуться нельзя
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/applications", applicant.Token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, bodyStr)

	// 3. Публикация
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/publish", employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"active"`)

	// Повторная публикация - неверный статус
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/publish", employer.Token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)

	// 4. Отклик и принятие
	assignment := applyViaAPI(t, ts, applicant, casting.ID)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, assignmentURL(assignment.ID, "accept"), employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// 5. Закрытие набора: новые отклики не принимаются, принятые остаются
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/close", employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	late := newActor(t, ts, models.UserRoleModel)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/applications", late.Token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/castings/"+casting.ID+"/roles/model/ledger", employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"active":1`)
	t.Logf("КАСТИНГ: Закрытие набора (200) - Успешно.")
}

// TestCasting_Access - права на создание и управление кастингом
func TestCasting_Access(t *testing.T) {
	t.Parallel()

	ts := NewTestServer(t)
	employer := newActor(t, ts, models.UserRoleEmployer)
	other := newActor(t, ts, models.UserRoleEmployer)
	talent := newActor(t, ts, models.UserRoleModel)

	body := map[string]interface{}{
		"title": "Кастинг",
		"city":  "Astana",
		"roles": []map[string]interface{}{{"role": "model", "capacity": 1}},
	}

	t.Run("No token", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", "", body)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
	})

	t.Run("Talent cannot create", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", talent.Token, body)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
	})

	t.Run("Invalid roles", func(t *testing.T) {
		bad := map[string]interface{}{
			"title": "Кастинг",
			"city":  "Astana",
			"roles": []map[string]interface{}{
				{"role": "model", "capacity": 1},
				{"role": "model", "capacity": 2},
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", employer.Token, bad)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

		bad["roles"] = []map[string]interface{}{{"role": "dj", "capacity": 1}}
		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings", employer.Token, bad)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	})

	t.Run("Foreign organizer cannot publish", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/castings", employer.Token, body)
		require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
		var casting models.Casting
		DecodeJSON(t, bodyStr, &casting)

		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/castings/"+casting.ID+"/publish", other.Token, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
	})

	t.Run("Unknown casting", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/castings/00000000-0000-0000-0000-000000000000", employer.Token, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
	})
}
