package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockPhotoRepository struct {
	mock.Mock
}

func NewMockPhotoRepository(t *testing.T) *MockPhotoRepository {
	m := &MockPhotoRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPhotoRepository) ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.Photo, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int][]*model.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Create(ctx context.Context, tx pgx.Tx, eventID int, url string) (*model.Photo, error) {
	args := m.Called(ctx, tx, eventID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Photo), args.Error(1)
}
