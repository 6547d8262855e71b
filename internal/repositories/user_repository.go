package repositories

import (
	"context"
	"errors"
	"time"

	"sueta_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error

	// UpdateTicketStatus меняет статус одним UPDATE; ErrUserNotFound, если строки нет
	UpdateTicketStatus(ctx context.Context, id uint, status models.TicketStatus) error
	SetAdmin(ctx context.Context, username string, isAdmin bool) error

	// FindByTicketStatus возвращает всех пользователей, если status пустой
	FindByTicketStatus(ctx context.Context, status string) ([]models.User, error)
	CountByTicketStatus(ctx context.Context, status models.TicketStatus) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	// Уникальный индекс все равно может сработать при гонке двух регистраций
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateTicketStatus(ctx context.Context, id uint, status models.TicketStatus) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ticket_status": status,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Updates(map[string]interface{}{
		"is_admin":   isAdmin,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByTicketStatus(ctx context.Context, status string) ([]models.User, error) {
	var users []models.User
	query := r.db.WithContext(ctx).Model(&models.User{})
	if status != "" {
		query = query.Where("ticket_status = ?", status)
	}
	err := query.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountByTicketStatus(ctx context.Context, status models.TicketStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("ticket_status = ?", status).Count(&count).Error
	return count, err
}
