package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/models"
	"sueta_backend/internal/repositories"
	"sueta_backend/internal/services/dto"
	"sueta_backend/internal/storage"
	"sueta_backend/internal/ticketqr"
	"sueta_backend/pkg/apperrors"
)

const birthDateLayout = "2006-01-02"

// TicketConfig - условия продажи билета
type TicketConfig struct {
	Price    int
	Currency string
	Contact  string
	MinAge   int
	MaxAge   int
}

// PriceLabel - "25 AZN"
func (c TicketConfig) PriceLabel() string {
	return fmt.Sprintf("%d %s", c.Price, c.Currency)
}

type TicketService interface {
	BuyTicket(ctx context.Context, user *models.User) (*dto.TicketResult, error)
	ConfirmPayment(ctx context.Context, actor *models.User, userID uint) error
	RejectPayment(ctx context.Context, actor *models.User, userID uint) error
	GetTicketStatus(ctx context.Context, actor *models.User, userID uint) (*models.User, error)
}

type TicketServiceImpl struct {
	userRepo  repositories.UserRepository
	storage   storage.Storage
	generator *ticketqr.Generator
	cfg       TicketConfig
	now       func() time.Time
}

func NewTicketService(
	userRepo repositories.UserRepository,
	store storage.Storage,
	generator *ticketqr.Generator,
	cfg TicketConfig,
) TicketService {
	return &TicketServiceImpl{
		userRepo:  userRepo,
		storage:   store,
		generator: generator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ComputeAge - полных лет на момент now; нераспознанная дата дает 0
func ComputeAge(birthDate string, now time.Time) int {
	birth, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return 0
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// BuyTicket: возраст, затем статус, затем QR. Статус билета здесь не меняется.
func (s *TicketServiceImpl) BuyTicket(ctx context.Context, user *models.User) (*dto.TicketResult, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	age := ComputeAge(user.BirthDate, s.now())
	result := &dto.TicketResult{
		Age:     age,
		MinAge:  s.cfg.MinAge,
		MaxAge:  s.cfg.MaxAge,
		Price:   s.cfg.PriceLabel(),
		Contact: s.cfg.Contact,
	}

	if age < s.cfg.MinAge || age > s.cfg.MaxAge {
		result.Outcome = dto.TicketIneligible
		return result, nil
	}

	if user.TicketStatus == models.TicketStatusPaid {
		result.Outcome = dto.TicketAlreadyPurchased
		return result, nil
	}

	png, err := s.generator.Generate(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	path := ticketqr.ObjectPath(user.ID)
	if err := s.storage.Save(ctx, path, bytes.NewReader(png), "image/png"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "storage", "Не удалось сохранить QR-код", http.StatusInternalServerError)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Ticket QR issued", "user_id", user.ID, "path", path)

	result.Outcome = dto.TicketIssued
	result.QRImageURL = url
	return result, nil
}

func (s *TicketServiceImpl) ConfirmPayment(ctx context.Context, actor *models.User, userID uint) error {
	return s.setStatus(ctx, actor, userID, models.TicketStatusPaid)
}

func (s *TicketServiceImpl) RejectPayment(ctx context.Context, actor *models.User, userID uint) error {
	return s.setStatus(ctx, actor, userID, models.TicketStatusRejected)
}

// setStatus: неизвестный id - не ошибка, ничего не меняется
func (s *TicketServiceImpl) setStatus(ctx context.Context, actor *models.User, userID uint, status models.TicketStatus) error {
	if !auth.CanManagePayments(actor) {
		return apperrors.ErrForbidden
	}

	err := s.userRepo.UpdateTicketStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "Ticket status change for unknown user", "user_id", userID, "status", status)
			return nil
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Ticket status changed", "user_id", userID, "status", status, "admin_id", actor.ID)
	return nil
}

func (s *TicketServiceImpl) GetTicketStatus(ctx context.Context, actor *models.User, userID uint) (*models.User, error) {
	if !auth.CanManagePayments(actor) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
