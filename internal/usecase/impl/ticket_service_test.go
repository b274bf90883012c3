package impl

import (
	"context"
	"testing"

	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTicket(t *testing.T, svc usecase.TicketUsecase, userID uuid.UUID) *entity.SupportTicket {
	t.Helper()

	ticket, err := svc.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		UserID:      userID,
		Title:       "Booking never confirmed",
		Description: "Submitted a booking three days ago and heard nothing.",
	})
	require.NoError(t, err)

	return ticket
}

func TestTicketService_CreateTicket_AppliesDefaults(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	ticket := createTicket(t, svc, user.ID)

	assert.NotEqual(t, uuid.Nil, ticket.ID)
	assert.Equal(t, entity.TicketOpen, ticket.Status)
	assert.Equal(t, entity.TicketCategoryGeneral, ticket.Category)
	assert.Equal(t, entity.TicketPriorityMedium, ticket.Priority)
}

func TestTicketService_CreateTicket_KeepsExplicitFields(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	ticket, err := svc.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		UserID:      user.ID,
		Title:       "Double charge",
		Description: "Charged twice for one visit.",
		Category:    entity.TicketCategoryPayment,
		Priority:    entity.TicketPriorityUrgent,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TicketCategoryPayment, ticket.Category)
	assert.Equal(t, entity.TicketPriorityUrgent, ticket.Priority)
	// The filer cannot choose a status.
	assert.Equal(t, entity.TicketOpen, ticket.Status)
}

func TestTicketService_CreateTicket_InvalidCategory(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()

	_, err := svc.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		UserID:      uuid.New(),
		Title:       "Bad category",
		Description: "x",
		Category:    entity.TicketCategory("spam"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTicketService_ListUserTickets(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	other := f.seedUser(t, "other@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	createTicket(t, svc, user.ID)
	createTicket(t, svc, user.ID)
	createTicket(t, svc, other.ID)

	tickets, err := svc.ListUserTickets(context.Background(), user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	for _, ticket := range tickets {
		assert.Equal(t, user.ID, ticket.UserID)
	}
}

func TestTicketService_ListTickets_RequiresAdmin(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	customer := f.seedUser(t, "customer@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	_, err := svc.ListTickets(context.Background(), customer.ID, "", 10, 0)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestTicketService_ListTickets_FilterByStatus(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	ctx := context.Background()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	open := createTicket(t, svc, user.ID)
	advanced := createTicket(t, svc, user.ID)
	_, err := svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: advanced.ID,
		Status:   entity.TicketInProgress,
	})
	require.NoError(t, err)

	all, err := svc.ListTickets(ctx, admin.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyOpen, err := svc.ListTickets(ctx, admin.ID, entity.TicketOpen, 10, 0)
	require.NoError(t, err)
	require.Len(t, onlyOpen, 1)
	assert.Equal(t, open.ID, onlyOpen[0].ID)
}

func TestTicketService_ListTickets_InvalidStatus(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)

	_, err := svc.ListTickets(context.Background(), admin.ID, entity.TicketStatus("bogus"), 10, 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTicketService_AdvanceTicket_ForwardOnly(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	ctx := context.Background()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	ticket := createTicket(t, svc, user.ID)

	updated, err := svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketInProgress, updated.Status)

	updated, err = svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketResolved, updated.Status)

	stored, err := f.ticketRepo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketResolved, stored.Status)
}

func TestTicketService_AdvanceTicket_BackwardRejected(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	ctx := context.Background()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	ticket := createTicket(t, svc, user.ID)

	_, err := svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketResolved,
	})
	require.NoError(t, err)

	// Reopening is not a thing; neither is standing still.
	_, err = svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketInProgress,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = svc.AdvanceTicket(ctx, &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketResolved,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestTicketService_AdvanceTicket_ConcurrentMoveLoses(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	ctx := context.Background()
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	ticket := createTicket(t, svc, user.ID)

	// A second admin closes the ticket between this admin's read and write.
	require.NoError(t, f.ticketRepo.UpdateStatus(ctx, ticket.ID, entity.TicketOpen, entity.TicketClosed))

	// The guarded update sees the stale status and refuses to resurrect it.
	err := f.ticketRepo.UpdateStatus(ctx, ticket.ID, entity.TicketOpen, entity.TicketInProgress)
	assert.ErrorIs(t, err, repository.ErrTicketStatusConflict)

	stored, err := f.ticketRepo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketClosed, stored.Status)
}

func TestTicketService_AdvanceTicket_NonAdminForbidden(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	user := f.seedUser(t, "user@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	ticket := createTicket(t, svc, user.ID)

	// Not even the filer may advance their own ticket.
	_, err := svc.AdvanceTicket(context.Background(), &usecase.AdvanceTicketInput{
		ActorID:  user.ID,
		TicketID: ticket.ID,
		Status:   entity.TicketResolved,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestTicketService_AdvanceTicket_NotFound(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newTicketService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)

	_, err := svc.AdvanceTicket(context.Background(), &usecase.AdvanceTicketInput{
		ActorID:  admin.ID,
		TicketID: uuid.New(),
		Status:   entity.TicketClosed,
	})
	assert.ErrorIs(t, err, domainerrors.ErrTicketNotFound)
}
