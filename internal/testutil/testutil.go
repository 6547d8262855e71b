package testutil

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/config"
	"sueta_backend/internal/database"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var loggerOnce sync.Once

// Config - конфигурация для тестов: in-memory sqlite, быстрый bcrypt
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Server.PublicBaseURL = "https://event.test"
	cfg.Database.Driver = "sqlite"
	// у каждого теста своя именованная база; одно соединение, чтобы она не пропала
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Security.SecretKey = "test-secret-key"
	cfg.Security.BcryptCost = 4
	cfg.Storage.BasePath = t.TempDir()
	return cfg
}

// NewTestDB открывает чистую базу с примененными миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenDB(t, Config(t))
}

func OpenDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	loggerOnce.Do(func() {
		logger.InitWithWriter("test", io.Discard)
	})

	db, err := database.Open(cfg)
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser создает пользователя; если password не пустой, он хешируется
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, password string) *models.User {
	t.Helper()

	if password != "" {
		hash, err := auth.HashPassword(password, 4)
		require.NoError(t, err)
		user.PasswordHash = hash
	}
	if user.TicketStatus == "" {
		user.TicketStatus = models.TicketStatusNotPaid
	}
	if user.Gender == "" {
		user.Gender = models.GenderFemale
	}
	if user.FirstName == "" {
		user.FirstName = "Айгюн"
	}
	if user.LastName == "" {
		user.LastName = "Алиева"
	}
	if user.MiddleName == "" {
		user.MiddleName = "Рашидовна"
	}
	if user.BirthDate == "" {
		user.BirthDate = "2000-01-01"
	}

	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", user.Username)
	return user
}

// ReloadUser читает актуальное состояние пользователя из базы
func ReloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
