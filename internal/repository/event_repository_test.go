package repository_test

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/internal/testutil"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate(days int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func TestEventRepository_Create(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewEventRepository(pool)
	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))

	var created *model.Event
	err := repository.NewTransactor(pool).WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = repo.Create(ctx, tx, &model.Event{
			Name:        "Launch",
			Date:        futureDate(10),
			Time:        "18:30:00",
			Location:    "Hall A",
			Description: "Product launch",
			CreatedBy:   owner,
		})
		return err
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "18:30:00", created.Time)
	assert.True(t, created.IsActive)
	assert.Equal(t, futureDate(10).Format(model.DateLayout), created.Date.Format(model.DateLayout))

	t.Run("Unknown creator", func(t *testing.T) {
		err := repository.NewTransactor(pool).WithTx(ctx, func(tx pgx.Tx) error {
			_, err := repo.Create(ctx, tx, &model.Event{
				Name: "Ghost", Date: futureDate(1), Time: "10:00:00", Location: "x", Description: "x", CreatedBy: 9999,
			})
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})
}

func TestEventRepository_List(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewEventRepository(pool)
	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))
	vip := testutil.CreateTicketType(t, pool, "VIP")
	regular := testutil.CreateTicketType(t, pool, "Regular")

	later := testutil.CreateEvent(t, pool, owner, "Jazz Night", futureDate(20))
	sooner := testutil.CreateEvent(t, pool, owner, "Launch", futureDate(5))
	cancelled := testutil.CreateEvent(t, pool, owner, "Cancelled Show", futureDate(7))
	testutil.CreateOffer(t, pool, later, vip, 120, 10)
	testutil.CreateOffer(t, pool, sooner, regular, 15, 10)
	require.NoError(t, repo.Delete(ctx, cancelled))

	t.Run("Active only, soonest first", func(t *testing.T) {
		events, err := repo.List(ctx, model.EventFilter{})

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, sooner, events[0].ID)
		assert.Equal(t, later, events[1].ID)
	})

	t.Run("By ticket type", func(t *testing.T) {
		events, err := repo.List(ctx, model.EventFilter{TicketTypes: []string{"VIP"}})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, later, events[0].ID)
	})

	t.Run("By price range", func(t *testing.T) {
		priceMax := 20.0
		events, err := repo.List(ctx, model.EventFilter{PriceMax: &priceMax})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, sooner, events[0].ID)
	})

	t.Run("By date range", func(t *testing.T) {
		after := futureDate(10)
		events, err := repo.List(ctx, model.EventFilter{DateAfter: &after})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, later, events[0].ID)
	})

	t.Run("Search matches name and creator", func(t *testing.T) {
		events, err := repo.List(ctx, model.EventFilter{Search: "jazz"})
		require.NoError(t, err)
		assert.Len(t, events, 1)

		events, err = repo.List(ctx, model.EventFilter{Search: "olga"})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}

func TestEventRepository_SearchIsLiteral(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewEventRepository(pool)
	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))
	sale := testutil.CreateEvent(t, pool, owner, "50% Off_Night", futureDate(5))
	testutil.CreateEvent(t, pool, owner, "Launch", futureDate(6))

	cases := []struct {
		search string
		want   []int
	}{
		{"%", []int{sale}},
		{"_", []int{sale}},
		{"50%", []int{sale}},
		{"off_night", []int{sale}},
		{"off night", nil},
		{`\`, nil},
		{"5_%", nil},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			events, err := repo.List(ctx, model.EventFilter{Search: tc.search})
			require.NoError(t, err)

			var ids []int
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewEventRepository(pool)
	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))
	id := testutil.CreateEvent(t, pool, owner, "Launch", futureDate(5))

	require.NoError(t, repo.Delete(ctx, id))

	event, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, event.IsActive)

	assert.ErrorIs(t, repo.Delete(ctx, id), apperrors.ErrEventNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9999), apperrors.ErrEventNotFound)
}

func TestEventRepository_Update(t *testing.T) {
	pool := testutil.DB(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	repo := repository.NewEventRepository(pool)
	owner := testutil.CreateAccount(t, pool, "olga", string(model.RoleOrganizer))
	id := testutil.CreateEvent(t, pool, owner, "Launch", futureDate(5))

	name := "Launch Party"
	start := "20:15:00"
	updated, err := repo.Update(ctx, id, model.UpdateEventParams{Name: &name, Time: &start})

	require.NoError(t, err)
	assert.Equal(t, "Launch Party", updated.Name)
	assert.Equal(t, "20:15:00", updated.Time)
	assert.Equal(t, "Main Hall", updated.Location)

	_, err = repo.Update(ctx, 9999, model.UpdateEventParams{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
