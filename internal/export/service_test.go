package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SebJones333/Receipt-Scanner/internal/entity"
)

type stubReceipts struct {
	receipts []*entity.Receipt
	from, to *time.Time
}

func (s *stubReceipts) Create(_ context.Context, rec *entity.Receipt) (*entity.Receipt, error) {
	s.receipts = append(s.receipts, rec)
	return rec, nil
}

func (s *stubReceipts) List(_ context.Context, from, to *time.Time) ([]*entity.Receipt, error) {
	s.from, s.to = from, to
	return s.receipts, nil
}

func TestExportReceiptsXLSX(t *testing.T) {
	repo := &stubReceipts{receipts: []*entity.Receipt{
		{
			ID:          uuid.New(),
			Store:       "Kroger",
			TxDate:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Total:       decimal.RequireFromString("45.00"),
			TotalSource: "duplicate-frequency",
			CreatedAt:   time.Date(2024, time.March, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			Store:     "Costco",
			TxDate:    time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			Total:     decimal.RequireFromString("128.75"),
			CreatedAt: time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewService(repo, nil)

	data, err := svc.ExportReceiptsXLSX(context.Background(), nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Receipts"}, f.GetSheetList())

	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Store", "Transaction Date", "Total", "Total Source", "Saved At"}, rows[0])
	assert.Equal(t, "Kroger", rows[1][0])
	assert.Equal(t, "2024-03-01", rows[1][1])
	assert.Equal(t, "45.00", rows[1][2])
	assert.Equal(t, "duplicate-frequency", rows[1][3])
	assert.Equal(t, "Costco", rows[2][0])
	assert.Equal(t, "128.75", rows[2][2])
}

func TestExportReceiptsXLSXEmpty(t *testing.T) {
	svc := NewService(&stubReceipts{}, nil)

	data, err := svc.ExportReceiptsXLSX(context.Background(), nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExportWindowDefaultsToToday(t *testing.T) {
	repo := &stubReceipts{}
	svc := NewService(repo, nil)

	from := time.Date(2024, time.March, 1, 15, 45, 0, 0, time.UTC)
	_, err := svc.ExportReceiptsXLSX(context.Background(), &from, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.from)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *repo.from)
	require.NotNil(t, repo.to)
	today := time.Now().UTC()
	assert.Equal(t, time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), *repo.to)
}
