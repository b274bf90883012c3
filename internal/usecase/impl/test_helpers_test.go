package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fixly/config"
	"fixly/internal/domain/entity"
	"fixly/internal/domain/repository"
	"fixly/internal/domain/service"
	"fixly/internal/infra/auth"
	"fixly/internal/infra/persistence/model"
	"fixly/internal/infra/persistence/postgres"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// serviceFixtures wires the real repositories against an in-memory sqlite
// database, so the use cases run with genuine transactions instead of mocks.
type serviceFixtures struct {
	db               *gorm.DB
	cfg              *config.Config
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	providerRepo     repository.ProviderRepository
	bookingRepo      repository.BookingRepository
	assignmentRepo   repository.AssignmentRepository
	ticketRepo       repository.TicketRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int, adminAllowlist ...string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        bcrypt.MinCost,
			MaxActiveSessions: maxActiveSessions,
			AdminAllowlist:    adminAllowlist,
		},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

func newServiceFixtures(t *testing.T, cfg *config.Config) *serviceFixtures {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	// A single connection keeps every transaction on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.ProviderProfileModel{},
		&model.AuthenticationModel{},
		&model.RefreshTokenModel{},
		&model.BookingRequestModel{},
		&model.BookingAssignmentModel{},
		&model.SupportTicketModel{},
	))

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &serviceFixtures{
		db:               db,
		cfg:              cfg,
		txManager:        postgres.NewTransactionManager(db),
		userRepo:         postgres.NewUserRepository(db),
		authRepo:         postgres.NewAuthRepository(db),
		refreshTokenRepo: postgres.NewRefreshTokenRepository(db),
		providerRepo:     postgres.NewProviderRepository(db),
		bookingRepo:      postgres.NewBookingRepository(db),
		assignmentRepo:   postgres.NewAssignmentRepository(db),
		ticketRepo:       postgres.NewTicketRepository(db),
		hasher:           auth.NewBcryptHasher(cfg),
		tokenService:     tokenService,
		logger:           newDiscardLogger(),
	}
}

func (f *serviceFixtures) newUserService() usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:        f.txManager,
		UserRepo:         f.userRepo,
		AuthRepo:         f.authRepo,
		RefreshTokenRepo: f.refreshTokenRepo,
		Hasher:           f.hasher,
		TokenService:     f.tokenService,
		Config:           f.cfg,
		Logger:           f.logger,
	})
}

func (f *serviceFixtures) newProviderService() usecase.ProviderUsecase {
	return NewProviderService(ProviderServiceParams{
		TxManager:    f.txManager,
		UserRepo:     f.userRepo,
		ProviderRepo: f.providerRepo,
		Hasher:       f.hasher,
		Logger:       f.logger,
	})
}

func (f *serviceFixtures) newBookingService() usecase.BookingUsecase {
	return NewBookingService(BookingServiceParams{
		TxManager:      f.txManager,
		UserRepo:       f.userRepo,
		BookingRepo:    f.bookingRepo,
		AssignmentRepo: f.assignmentRepo,
		ProviderRepo:   f.providerRepo,
		Logger:         f.logger,
	})
}

func (f *serviceFixtures) newTicketService() usecase.TicketUsecase {
	return NewTicketService(TicketServiceParams{
		TxManager:  f.txManager,
		UserRepo:   f.userRepo,
		TicketRepo: f.ticketRepo,
		Logger:     f.logger,
	})
}

// seedUser inserts a user row directly through the repository.
func (f *serviceFixtures) seedUser(t *testing.T, email string, role entity.Role, status entity.ApprovalStatus) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:   "Seeded User",
		Email:  email,
		Role:   role,
		Status: status,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user
}

// seedProvider inserts a provider-role user together with its profile.
func (f *serviceFixtures) seedProvider(t *testing.T, email string, available bool, status entity.ApprovalStatus) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:   "Seeded Provider",
		Email:  email,
		Role:   entity.RoleProvider,
		Status: status,
		ProviderProfile: &entity.ProviderProfile{
			BusinessName: "Seeded Plumbing Co",
			Category:     entity.CategoryPlumber,
			Location:     "Downtown",
			Contact:      "555-0100",
			Available:    available,
		},
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user
}

// seedBooking inserts a pending booking request for the given customer.
func (f *serviceFixtures) seedBooking(t *testing.T, customerID uuid.UUID) *entity.BookingRequest {
	t.Helper()

	booking := &entity.BookingRequest{
		CustomerID:     customerID,
		Category:       entity.CategoryPlumber,
		ServiceName:    "Leaky faucet repair",
		CustomerName:   "Seeded Customer",
		CustomerPhone:  "555-0123",
		ServiceAddress: "42 Main St",
	}
	booking.ApplyDefaults()
	require.NoError(t, f.bookingRepo.Create(context.Background(), booking))

	return booking
}
