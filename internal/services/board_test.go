package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"garment-oms/internal/entities"
	"garment-oms/internal/timeline"
)

type staticBoardRepo struct {
	fakeOrderRepo
	orders []entities.Order
}

func (f *staticBoardRepo) GetBoardOrders(ctx context.Context) ([]entities.Order, error) {
	return f.orders, nil
}

func boardOrder(id uint64, number, stage string, enteredAt time.Time, completedAt *time.Time) entities.Order {
	return entities.Order{
		ID:           id,
		OrderNumber:  number,
		ClientID:     20,
		ProductID:    30,
		Quantity:     50,
		CurrentStage: &stage,
		StageHistory: []timeline.HistoryEntry{
			{StageName: stage, EnteredAt: enteredAt, Status: timeline.EntryActive},
		},
		CompletedAt: completedAt,
	}
}

func TestBoardService_GetBoard(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	recentlyDone := now.Add(-23 * time.Hour)
	longDone := now.Add(-25 * time.Hour)

	repo := &staticBoardRepo{orders: []entities.Order{
		boardOrder(1, "CC/ON/ACME/01", "Order Confirmed", now.Add(-time.Hour), nil),
		boardOrder(2, "CC/ON/ACME/02", "Stitching", now.Add(-2*time.Hour), nil),
		boardOrder(3, "CC/ON/ACME/03", "Order Completed", recentlyDone, &recentlyDone),
		boardOrder(4, "CC/ON/ACME/04", "Order Completed", longDone, &longDone),
	}}

	svc := NewBoardService(
		repo,
		timeline.Default(),
		&fakeCache{},
		zap.NewNop(),
		24*time.Hour,
		time.Second,
		func() time.Time { return now },
	)

	board, err := svc.GetBoard(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Columns, 8)

	for i, col := range board.Columns {
		assert.Equal(t, i, col.Ordinal)
	}
	assert.Equal(t, "Order Confirmed", board.Columns[0].Stage)
	assert.Equal(t, "Order Completed", board.Columns[7].Stage)

	require.Len(t, board.Columns[0].Orders, 1)
	assert.Equal(t, "CC/ON/ACME/01", board.Columns[0].Orders[0].OrderNumber)
	assert.Equal(t, 13, board.Columns[0].Orders[0].Progress)

	require.Len(t, board.Columns[4].Orders, 1)
	assert.Equal(t, 63, board.Columns[4].Orders[0].Progress)

	// Only the completion inside the retention window stays visible.
	require.Len(t, board.Columns[7].Orders, 1)
	assert.Equal(t, "CC/ON/ACME/03", board.Columns[7].Orders[0].OrderNumber)

	// Empty columns serialize as empty lists, not null.
	assert.NotNil(t, board.Columns[1].Orders)
	assert.Empty(t, board.Columns[1].Orders)
}

func TestBoardService_DelayedCardFlag(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)

	late := boardOrder(1, "CC/ON/ACME/05", "Packing", now.Add(-time.Hour), nil)
	late.ExpectedDeliveryDate = &past
	shipped := boardOrder(2, "CC/ON/ACME/06", "Shipped", now.Add(-time.Hour), nil)
	shipped.ExpectedDeliveryDate = &past

	repo := &staticBoardRepo{orders: []entities.Order{late, shipped}}
	svc := NewBoardService(
		repo, timeline.Default(), &fakeCache{}, zap.NewNop(),
		24*time.Hour, time.Second, func() time.Time { return now },
	)

	board, err := svc.GetBoard(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Columns[5].Orders, 1)
	assert.True(t, board.Columns[5].Orders[0].IsDelayed)

	require.Len(t, board.Columns[6].Orders, 1)
	assert.False(t, board.Columns[6].Orders[0].IsDelayed)
}
