package service

import (
	"context"
	"errors"
	"net/http"

	bookingserrors "studio/internal/bookings/errors"
	"studio/internal/bookings/repository"
	"studio/internal/bookings/validator"
	"studio/pkg/config"
	mongotx "studio/pkg/db/mongo"
	apperrors "studio/pkg/errors"
	"studio/pkg/model"
	"studio/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MsgCreated   = "Booking request submitted successfully"
	MsgInvalid   = "Invalid booking request"
	MsgDuplicate = "You already have a booking request for this date"
	MsgBusy      = "Another booking request is being processed, please try again"
)

// EventPublisher announces stored bookings. A nil publisher disables announcements.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *model.Booking) error
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	clean := sanitizer.BookingRequest(*req)
	if err := s.validate(&clean); err != nil {
		return nil, err
	}

	booking := model.NewBooking(&clean)
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyDuplication(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if errors.Is(err, mongotx.ErrWriteConflict) {
		s.cfg.Log.Warn("Booking transaction conflicted", "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeConflict, MsgBusy, http.StatusConflict)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"session_type", booking.SessionType,
		"event_date", booking.EventDate,
	)
	s.publish(ctx, booking)
	return booking, nil
}

func (s *bookingService) validate(req *model.BookingRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation(MsgInvalid, verrs.Fields())
	}
	return apperrors.Internal("Failed to validate booking", err)
}

func (s *bookingService) verifyDuplication(ctx context.Context, booking *model.Booking) error {
	exists, err := s.repo.ExistsActive(ctx, booking.Email, booking.EventDate)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if exists {
		s.cfg.Log.Warn("Duplicate booking rejected",
			"event_date", booking.EventDate,
			"error", bookingserrors.ErrDuplicate,
		)
		return apperrors.Wrap(bookingserrors.ErrDuplicate, apperrors.CodeConflict, MsgDuplicate, http.StatusConflict)
	}
	return nil
}

// publish is best effort. The booking is already stored, so a failure is only logged.
func (s *bookingService) publish(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}
