package services

import (
	"context"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/models"
	"sueta_backend/internal/report"
	"sueta_backend/internal/repositories"
	"sueta_backend/internal/services/dto"
	"sueta_backend/pkg/apperrors"
)

type ReportService interface {
	// ListUsers: пустой фильтр - все; иначе точное совпадение статуса
	ListUsers(ctx context.Context, actor *models.User, statusFilter string) (*dto.UserListView, error)
	ExportReport(ctx context.Context, actor *models.User, statusFilter string) (*dto.ExportFile, error)
}

type ReportServiceImpl struct {
	userRepo repositories.UserRepository
	price    int
}

func NewReportService(userRepo repositories.UserRepository, price int) ReportService {
	return &ReportServiceImpl{userRepo: userRepo, price: price}
}

func (s *ReportServiceImpl) ListUsers(ctx context.Context, actor *models.User, statusFilter string) (*dto.UserListView, error) {
	if !auth.CanViewReports(actor) {
		return nil, apperrors.ErrForbidden
	}

	users, err := s.userRepo.FindByTicketStatus(ctx, statusFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPaid, err := s.userRepo.CountByTicketStatus(ctx, models.TicketStatusPaid)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	paid, revenue := report.Revenue(users, s.price)
	return &dto.UserListView{
		Users:        users,
		StatusFilter: statusFilter,
		PaidCount:    paid,
		Revenue:      revenue,
		TotalPaid:    totalPaid,
	}, nil
}

// ExportReport - та же выборка, что и ListUsers, в виде xlsx
func (s *ReportServiceImpl) ExportReport(ctx context.Context, actor *models.User, statusFilter string) (*dto.ExportFile, error) {
	if !auth.CanViewReports(actor) {
		return nil, apperrors.ErrForbidden
	}

	users, err := s.userRepo.FindByTicketStatus(ctx, statusFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data, err := report.BuildWorkbook(users, s.price)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Users exported", "admin_id", actor.ID, "status", statusFilter, "rows", len(users))
	return &dto.ExportFile{
		Name:        report.FileName,
		ContentType: report.ContentType,
		Data:        data,
	}, nil
}
