package impl

import (
	"context"
	"log/slog"

	deliverycontext "fixly/internal/delivery/context"
	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	bookingRepo    repository.BookingRepository
	assignmentRepo repository.AssignmentRepository
	providerRepo   repository.ProviderRepository
	logger         *slog.Logger
}

// BookingServiceParams holds dependencies for BookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	BookingRepo    repository.BookingRepository
	AssignmentRepo repository.AssignmentRepository
	ProviderRepo   repository.ProviderRepository
	Logger         *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		bookingRepo:    params.BookingRepo,
		assignmentRepo: params.AssignmentRepo,
		providerRepo:   params.ProviderRepo,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitBooking creates a new pending booking request for a customer.
func (srv *bookingService) SubmitBooking(ctx context.Context, input *usecase.SubmitBookingInput) (*entity.BookingRequest, error) {
	srv.log(ctx).Info("Submitting booking request", slog.Any("customerID", input.CustomerID), slog.Any("category", input.Category))

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown service category")
	}
	if input.TimeSlot != "" && !input.TimeSlot.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown time slot")
	}
	if input.Urgency != "" && !input.Urgency.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown urgency")
	}

	booking := &entity.BookingRequest{
		CustomerID:     input.CustomerID,
		Category:       input.Category,
		ServiceName:    input.ServiceName,
		Description:    input.Description,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		CustomerEmail:  input.CustomerEmail,
		ServiceAddress: input.ServiceAddress,
		PreferredDate:  input.PreferredDate,
		TimeSlot:       input.TimeSlot,
		Urgency:        input.Urgency,
		EstimatedPrice: input.EstimatedPrice,
	}
	booking.ApplyDefaults()

	if err := srv.bookingRepo.Create(ctx, booking); err != nil {
		srv.log(ctx).Error("Failed to create booking request", slog.Any("customerID", input.CustomerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create booking request")
	}

	srv.log(ctx).Debug("Booking request submitted", slog.Any("bookingID", booking.ID))

	return booking, nil
}

// ListCustomerBookings returns the customer's own requests, newest first.
func (srv *bookingService) ListCustomerBookings(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	bookings, err := srv.bookingRepo.ListByCustomer(ctx, customerID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer bookings")
	}

	return bookings, nil
}

// ListOpenBookings returns unassigned requests for admin triage, oldest first.
func (srv *bookingService) ListOpenBookings(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	if err := requireApprovedAdmin(ctx, srv.userRepo, actorID); err != nil {
		return nil, err
	}

	bookings, err := srv.bookingRepo.ListByStatus(ctx, entity.BookingPending, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list open bookings")
	}

	return bookings, nil
}

// ListAvailableProviders returns assignment candidates for a category.
func (srv *bookingService) ListAvailableProviders(ctx context.Context, actorID uuid.UUID, category entity.ServiceCategory, limit, offset int) ([]*entity.ProviderProfile, error) {
	if err := requireApprovedAdmin(ctx, srv.userRepo, actorID); err != nil {
		return nil, err
	}

	if category != "" && !category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown service category")
	}

	providers, err := srv.providerRepo.ListAvailable(ctx, category, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available providers")
	}

	return providers, nil
}

// AssignProvider pairs a pending booking with a provider. The admin check,
// the provider check, the status flip and the assignment insert all run in
// one transaction. The status flip is a compare-and-set on pending, so of two
// concurrent assignments exactly one commits and the other fails loudly.
func (srv *bookingService) AssignProvider(ctx context.Context, input *usecase.AssignProviderInput) (*entity.BookingAssignment, error) {
	srv.log(ctx).Info("Assigning provider", slog.Any("bookingID", input.BookingID), slog.Any("providerID", input.ProviderID), slog.Any("actorID", input.ActorID))

	assignment := &entity.BookingAssignment{
		BookingID:  input.BookingID,
		ProviderID: input.ProviderID,
		AssignedBy: input.ActorID,
		Type:       entity.AssignmentManual,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		bookingRepo := repoFactory.BookingRepo()
		assignmentRepo := repoFactory.AssignmentRepo()
		providerRepo := repoFactory.ProviderRepo()

		if err := requireApprovedAdmin(ctx, userRepo, input.ActorID); err != nil {
			return err
		}

		booking, err := bookingRepo.FindByID(ctx, input.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return errors.Wrap(domainerrors.ErrBookingNotFound, "booking not found")
			}

			return errors.Wrap(err, "failed to load booking")
		}
		if booking.Status != entity.BookingPending {
			return errors.Wrap(domainerrors.ErrBookingAlreadyAssigned, "booking is no longer pending")
		}

		profile, err := providerRepo.FindByUserID(ctx, input.ProviderID)
		if err != nil {
			if errors.Is(err, repository.ErrProviderNotFound) {
				return errors.Wrap(domainerrors.ErrProviderNotFound, "provider profile not found")
			}

			return errors.Wrap(err, "failed to load provider profile")
		}
		if !profile.Available {
			return errors.Wrap(domainerrors.ErrProviderUnavailable, "provider is not accepting assignments")
		}

		providerUser, err := userRepo.FindByID(ctx, input.ProviderID)
		if err != nil {
			return errors.Wrap(err, "failed to load provider user")
		}
		if !providerUser.IsApproved() {
			return errors.Wrap(domainerrors.ErrProviderUnavailable, "provider account is not approved")
		}

		// Compare-and-set on pending. A concurrent assignment that committed
		// first makes this hit zero rows.
		if err := bookingRepo.UpdateStatus(ctx, input.BookingID, entity.BookingPending, entity.BookingAssigned); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return errors.Wrap(domainerrors.ErrBookingAlreadyAssigned, "booking was assigned concurrently")
			}

			return errors.Wrap(err, "failed to mark booking assigned")
		}

		if err := assignmentRepo.Create(ctx, assignment); err != nil {
			return errors.Wrap(err, "failed to create assignment")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to assign provider", slog.Any("bookingID", input.BookingID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Provider assigned", slog.Any("assignmentID", assignment.ID))

	return assignment, nil
}

// UpdateBookingStatus moves an assigned job along its lifecycle. Ownership
// and the transition table are both enforced here; the client's buttons are
// advisory only.
func (srv *bookingService) UpdateBookingStatus(ctx context.Context, input *usecase.UpdateBookingStatusInput) (*entity.BookingRequest, error) {
	srv.log(ctx).Info("Updating booking status", slog.Any("bookingID", input.BookingID), slog.Any("status", input.Status), slog.Any("actorID", input.ActorID))

	if !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown booking status")
	}

	var updated *entity.BookingRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.BookingRepo()
		assignmentRepo := repoFactory.AssignmentRepo()

		booking, err := bookingRepo.FindByID(ctx, input.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return errors.Wrap(domainerrors.ErrBookingNotFound, "booking not found")
			}

			return errors.Wrap(err, "failed to load booking")
		}

		// Only the provider holding the assignment may move the job.
		if _, err := assignmentRepo.FindByBookingAndProvider(ctx, input.BookingID, input.ActorID); err != nil {
			if errors.Is(err, repository.ErrAssignmentNotFound) {
				return errors.Wrap(domainerrors.ErrForbidden, "booking is not assigned to this provider")
			}

			return errors.Wrap(err, "failed to verify job ownership")
		}

		if !booking.Status.CanTransitionTo(input.Status) {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "cannot move booking from %s to %s", booking.Status, input.Status)
		}

		if err := bookingRepo.UpdateStatus(ctx, input.BookingID, booking.Status, input.Status); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return errors.Wrap(domainerrors.ErrInvalidTransition, "booking status changed concurrently")
			}

			return errors.Wrap(err, "failed to update booking status")
		}

		booking.Status = input.Status
		booking.Version++
		updated = booking

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update booking status", slog.Any("bookingID", input.BookingID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// ListProviderJobs returns the bookings assigned to a provider, newest first.
func (srv *bookingService) ListProviderJobs(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	jobs, err := srv.bookingRepo.ListByProvider(ctx, providerID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider jobs")
	}

	return jobs, nil
}
