package helpers

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB поднимает изолированную in-memory SQLite с мигрированной схемой.
// Одно соединение: SQLite не допускает параллельных писателей.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	return openSQLite(t, dsn, 1)
}

// OpenPooledTestDB - SQLite в файле в режиме WAL с пулом из conns соединений.
// Транзакции разных соединений читают одновременно, поэтому пул сам по себе
// не упорядочивает конкурентные операции.
func OpenPooledTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "admission.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=deferred", path)
	return openSQLite(t, dsn, conns)
}

func openSQLite(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// CreateUser создает пользователя с заданной ролью
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	id := uuid.NewString()
	user := &models.User{
		Email: id + "@mwork.test",
		Name:  "user-" + id[:8],
		Role:  role,
	}
	require.NoError(t, repositories.NewUserRepository().Create(db, user))
	return user
}

// CreateCasting создает активный кастинг с ролями в порядке объявления
func CreateCasting(t *testing.T, db *gorm.DB, organizerID string, roles ...models.CastingRole) *models.Casting {
	t.Helper()

	date := time.Now().Add(7 * 24 * time.Hour)
	casting := &models.Casting{
		OrganizerID: organizerID,
		Title:       "Показ " + uuid.NewString()[:8],
		City:        "Алматы",
		CastingDate: &date,
		Status:      models.CastingStatusActive,
		Roles:       roles,
	}
	require.NoError(t, repositories.NewCastingRepository().Create(db, casting))
	return casting
}

// Role - короткая запись роли для CreateCasting
func Role(tag models.RoleTag, capacity int) models.CastingRole {
	return models.CastingRole{Role: tag, Capacity: capacity}
}

// CreateAssignment пишет заявку напрямую, минуя координатор
func CreateAssignment(t *testing.T, db *gorm.DB, castingID, userID string, role models.RoleTag, status models.AssignmentStatus) *models.Assignment {
	t.Helper()

	assignment := &models.Assignment{
		CastingID: castingID,
		UserID:    userID,
		Role:      role,
		Status:    status,
	}
	require.NoError(t, repositories.NewAssignmentRepository().Create(db, assignment))
	return assignment
}
