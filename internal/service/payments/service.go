package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/domain"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
	"github.com/m04kA/travel-backoffice/internal/integrations/mailer"
	"github.com/m04kA/travel-backoffice/internal/ledger"
	"github.com/m04kA/travel-backoffice/internal/service/payments/models"
)

// Service сервис чтения платежей, отчётов и писем
// Изменения платежей идут через usecase, так как затрагивают итоги бронирования.
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	mailer      Mailer
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	mailer Mailer,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		mailer:      mailer,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListByBooking возвращает платежи бронирования, новые первыми
func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]models.PaymentResponse, error) {
	if _, err := s.getBooking(ctx, "ListByBooking", bookingID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// SendConfirmation отправляет письмо о платеже
// Адрес берётся из запроса, иначе из бронирования.
func (s *Service) SendConfirmation(ctx context.Context, req *models.SendEmailRequest) (*models.MessageResponse, error) {
	s.logger.Info("SendConfirmation: payment id=%d", req.PaymentID)

	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("SendConfirmation: payment id=%d not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("SendConfirmation: repository error for payment id=%d: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: SendConfirmation - get payment: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, "SendConfirmation", payment.BookingID)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(req.RecipientEmail)
	if to == "" || to == domain.NotAssigned {
		to = booking.ContactEmail()
	}
	if to == "" {
		s.logger.Warn("SendConfirmation: no recipient for payment id=%d", payment.ID)
		s.metrics.ObserveEmail("rejected")
		return nil, ErrMissingRecipient
	}

	err = s.mailer.SendPaymentConfirmation(ctx, &mailer.PaymentConfirmation{
		To:            to,
		Subject:       req.Subject,
		Body:          req.Body,
		BookingNumber: booking.BookingNumber,
		ETicket:       booking.ETicket,
		TravelDate:    booking.TravelDate,
		PackagePrice:  booking.PackagePrice,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		PaymentMethod: string(payment.PaymentMethod),
		Reference:     payment.Reference,
		Remaining:     booking.Remaining,
	})
	if err != nil {
		s.metrics.ObserveEmail("failed")
		s.logger.Error("SendConfirmation: failed to send email for payment id=%d: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}

	s.metrics.ObserveEmail("sent")
	s.logger.Info("SendConfirmation: sent confirmation for payment id=%d", payment.ID)
	return &models.MessageResponse{Message: models.MsgEmailSent}, nil
}

// Report отчёт по платежам за период и итоги по всем бронированиям
func (s *Service) Report(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error) {
	period, err := req.ToDomainPeriod()
	if err != nil {
		s.logger.Warn("Report: invalid period: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	byMethod, err := s.paymentRepo.TotalsByMethod(ctx, period)
	if err != nil {
		s.logger.Error("Report: totals by method: %v", err)
		return nil, fmt.Errorf("%w: Report - totals by method: %v", ErrInternal, err)
	}

	monthly, err := s.paymentRepo.TotalsByMonth(ctx, period)
	if err != nil {
		s.logger.Error("Report: totals by month: %v", err)
		return nil, fmt.Errorf("%w: Report - totals by month: %v", ErrInternal, err)
	}

	stats, err := s.bookingRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Report: booking stats: %v", err)
		return nil, fmt.Errorf("%w: Report - booking stats: %v", ErrInternal, err)
	}

	resp := models.NewReportResponse(byMethod, monthly, stats)
	resp.Summary.TotalBookingValue = ledger.RoundMoney(resp.Summary.TotalBookingValue)

	return resp, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
