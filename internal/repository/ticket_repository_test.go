package repository_test

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/internal/testutil"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTicket(t *testing.T, repo repository.TicketRepository, tx repository.Transactor, eventID, typeID, customerID int) *model.Ticket {
	t.Helper()
	var ticket *model.Ticket
	err := tx.WithTx(context.Background(), func(tx pgx.Tx) error {
		var err error
		ticket, err = repo.Create(context.Background(), tx, &model.Ticket{
			EventID: eventID, TicketTypeID: typeID, CustomerID: customerID, Price: 10,
		})
		return err
	})
	require.NoError(t, err)
	return ticket
}

func TestTicketRepository(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewTicketRepository(pool)
	tx := repository.NewTransactor(pool)

	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))
	other := testutil.CreateAccount(t, pool, "otto", string(model.RoleOrganizer))
	carol := testutil.CreateAccount(t, pool, "carol", string(model.RoleAttendee))
	dave := testutil.CreateAccount(t, pool, "dave", string(model.RoleAttendee))
	regular := testutil.CreateTicketType(t, pool, "Regular")

	tomorrow := testutil.CreateEvent(t, pool, owner, "Launch", futureDate(1))
	nextMonth := testutil.CreateEvent(t, pool, other, "Jazz Night", futureDate(30))

	first := createTicket(t, repo, tx, tomorrow, regular, carol)
	createTicket(t, repo, tx, tomorrow, regular, carol)
	createTicket(t, repo, tx, nextMonth, regular, dave)

	assert.True(t, first.IsActive)
	assert.False(t, first.Archived)
	assert.Equal(t, 10.0, first.Price)

	t.Run("List scopes", func(t *testing.T) {
		all, err := repo.List(ctx, model.TicketScope{All: true})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mine, err := repo.List(ctx, model.TicketScope{CustomerID: carol})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		organized, err := repo.List(ctx, model.TicketScope{EventOwnerID: other})
		require.NoError(t, err)
		assert.Len(t, organized, 1)

		none, err := repo.List(ctx, model.TicketScope{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Reminder targets are distinct pairs", func(t *testing.T) {
		targets, err := repo.ListReminderTargets(ctx, futureDate(0), futureDate(1))

		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, model.ReminderTarget{EventID: tomorrow, CustomerID: carol}, targets[0])
	})

	t.Run("Check in once", func(t *testing.T) {
		checked, err := repo.CheckIn(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusCheckedIn, checked.Status())

		_, err = repo.CheckIn(ctx, first.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyCheckedIn)

		targets, err := repo.ListReminderTargets(ctx, futureDate(0), futureDate(1))
		require.NoError(t, err)
		assert.Len(t, targets, 1, "the second ticket still qualifies")
	})

	t.Run("Delete archives", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first.ID))

		archived, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusArchived, archived.Status())

		mine, err := repo.List(ctx, model.TicketScope{CustomerID: carol})
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		assert.ErrorIs(t, repo.Delete(ctx, first.ID), apperrors.ErrTicketNotFound)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}
