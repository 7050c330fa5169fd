package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-analysis/internal/config"
	"momo-analysis/internal/models"
	"momo-analysis/internal/storage"
)

func setupTestDB(t *testing.T) (storage.Repository, *SQLiteStorage) {
	t.Helper()

	db, err := NewConnection(&config.Config{DB: config.DBConfig{DBPath: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), db
}

func strPtr(s string) *string {
	return &s
}

func newTx(t *testing.T, repo storage.Repository, category models.Category, amount int64, occurredAt time.Time) *models.Transaction {
	t.Helper()
	ctx := context.Background()

	tt, err := repo.GetTypeByName(ctx, string(category))
	require.NoError(t, err)
	if tt == nil {
		tt, err = repo.CreateType(ctx, string(category), "Transaction type for "+string(category))
		require.NoError(t, err)
	}

	return &models.Transaction{
		TransactionID: fmt.Sprintf("TX-%d-%d", amount, occurredAt.Unix()),
		TypeID:        tt.ID,
		TypeName:      category,
		Direction:     models.DirectionOf(category),
		Amount:        decimal.NewFromInt(amount),
		Fee:           decimal.NewFromInt(10),
		OccurredAt:    occurredAt,
		Status:        models.StatusSuccess,
		RawMessage:    fmt.Sprintf("You have received %d RWF from John Doe", amount),
	}
}

func TestNewConnection_FileDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "momo.db")

	db, err := NewConnection(&config.Config{DB: config.DBConfig{DBPath: dbPath}})
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestTypes_CreateAndGet(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	missing, err := repo.GetTypeByName(ctx, "Bank Deposits")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.CreateType(ctx, "Bank Deposits", "Transaction type for Bank Deposits")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	found, err := repo.GetTypeByName(ctx, "Bank Deposits")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Transaction type for Bank Deposits", found.Description)

	_, err = repo.CreateType(ctx, "Bank Deposits", "duplicate")
	assert.True(t, errors.Is(err, storage.ErrTypeExists))

	types, err := repo.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestSaveTransaction_WithRawMessage(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	balance := decimal.RequireFromString("1234.50")
	tx := newTx(t, repo, models.CategoryIncomingMoney, 5000, time.Date(2024, 5, 10, 16, 30, 51, 0, time.UTC))
	tx.Balance = &balance
	tx.Sender = strPtr("John Doe")
	tx.PhoneNumber = strPtr("*********013")

	msg := &models.RawMessage{
		Body:      tx.RawMessage,
		Timestamp: time.UnixMilli(1715351458724),
		Address:   "M-Money",
	}

	require.NoError(t, repo.SaveTransaction(ctx, msg, tx))
	assert.Positive(t, tx.ID)
	require.NotNil(t, tx.SourceMessageID)
	assert.False(t, tx.CreatedAt.IsZero())

	got, err := repo.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, tx.TransactionID, got.TransactionID)
	assert.Equal(t, models.CategoryIncomingMoney, got.TypeName)
	assert.Equal(t, models.DirectionIncoming, got.Direction)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.Amount))
	assert.True(t, decimal.NewFromInt(10).Equal(got.Fee))
	require.NotNil(t, got.Balance)
	assert.True(t, balance.Equal(*got.Balance))
	assert.Equal(t, "John Doe", *got.Sender)
	assert.Nil(t, got.Recipient)
	assert.Equal(t, tx.OccurredAt, got.OccurredAt)
	assert.Equal(t, *tx.SourceMessageID, *got.SourceMessageID)
}

func TestSaveTransaction_UnknownTypeRejected(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	tx := newTx(t, repo, models.CategoryAirtime, 500, time.Now())
	tx.TypeID = 9999

	err := repo.SaveTransaction(ctx, &models.RawMessage{Body: tx.RawMessage}, tx)
	require.Error(t, err)

	// сообщение не должно остаться без транзакции
	var rawCount int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM raw_sms_messages`).Scan(&rawCount))
	assert.Zero(t, rawCount)
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	got, err := repo.GetTransactionByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveTransaction_DecimalPrecision(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	tx := newTx(t, repo, models.CategoryBankDeposit, 1, time.Date(2024, 5, 11, 18, 43, 49, 0, time.UTC))
	tx.Amount = decimal.RequireFromString("12345678901234567.89")
	tx.Fee = decimal.RequireFromString("0.0000000000000001")
	balance := decimal.RequireFromString("98765432109876543210.5")
	tx.Balance = &balance

	require.NoError(t, repo.SaveTransaction(ctx, nil, tx))

	got, err := repo.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "12345678901234567.89", got.Amount.String())
	assert.Equal(t, "0.0000000000000001", got.Fee.String())
	require.NotNil(t, got.Balance)
	assert.Equal(t, "98765432109876543210.5", got.Balance.String())
}

func TestSaveTransaction_LockedDatabaseSingleAttempt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "locked.db")
	db, err := NewConnection(&config.Config{DB: config.DBConfig{DBPath: dbPath}})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewRepository(db)
	ctx := context.Background()

	tx := newTx(t, repo, models.CategoryAirtime, 500, time.Date(2024, 5, 12, 11, 41, 28, 0, time.UTC))

	// Единственное соединение пула, ожидание блокировки отключено
	_, err = db.DB.ExecContext(ctx, "PRAGMA busy_timeout = 0")
	require.NoError(t, err)

	holder, err := sql.Open("sqlite", buildDSN(dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { holder.Close() })
	conn, err := holder.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
	require.NoError(t, err)

	start := time.Now()
	err = repo.SaveTransaction(ctx, nil, tx)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, isRetryableError(err))
	assert.NotContains(t, err.Error(), "retries")
	assert.Less(t, elapsed, 50*time.Millisecond)
	assert.Zero(t, tx.ID)

	_, err = conn.ExecContext(ctx, "ROLLBACK")
	require.NoError(t, err)

	require.NoError(t, repo.SaveTransaction(ctx, nil, tx))
	assert.Positive(t, tx.ID)
}

func TestListTransactions_Filters(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	may := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	incoming := newTx(t, repo, models.CategoryIncomingMoney, 5000, may)
	airtime := newTx(t, repo, models.CategoryAirtime, 500, june)
	airtime.RawMessage = "Your airtime purchase of 500 RWF"
	big := newTx(t, repo, models.CategoryIncomingMoney, 100000, june)

	for _, tx := range []*models.Transaction{incoming, airtime, big} {
		require.NoError(t, repo.SaveTransaction(ctx, nil, tx))
	}

	page, err := repo.ListTransactions(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.TotalItems)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	require.Len(t, page.Transactions, 3)
	assert.Equal(t, big.ID, page.Transactions[0].ID)

	page, err = repo.ListTransactions(ctx, models.TransactionFilter{TypeID: airtime.TypeID})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, airtime.ID, page.Transactions[0].ID)

	page, err = repo.ListTransactions(ctx, models.TransactionFilter{Search: "airtime"})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 1)

	page, err = repo.ListTransactions(ctx, models.TransactionFilter{Date: &may})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, incoming.ID, page.Transactions[0].ID)

	minAmount := decimal.NewFromInt(1000)
	maxAmount := decimal.NewFromInt(10000)
	page, err = repo.ListTransactions(ctx, models.TransactionFilter{MinAmount: &minAmount, MaxAmount: &maxAmount})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, incoming.ID, page.Transactions[0].ID)

	// сравнение числовое, а не строковое: "5000" < "600" как строки
	minAmount = decimal.NewFromInt(600)
	page, err = repo.ListTransactions(ctx, models.TransactionFilter{MinAmount: &minAmount, MaxAmount: &maxAmount})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, incoming.ID, page.Transactions[0].ID)

	page, err = repo.ListTransactions(ctx, models.TransactionFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 1)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestGetStats(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	empty, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalTransactions)
	assert.True(t, empty.TotalVolume.IsZero())
	assert.Empty(t, empty.TypeDistribution)

	may := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	failed := newTx(t, repo, models.CategoryAirtime, 1000, june)
	failed.Status = models.StatusFailed

	for _, tx := range []*models.Transaction{
		newTx(t, repo, models.CategoryIncomingMoney, 2000, may),
		newTx(t, repo, models.CategoryIncomingMoney, 3000, june),
		failed,
	} {
		require.NoError(t, repo.SaveTransaction(ctx, nil, tx))
	}

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTransactions)
	assert.True(t, decimal.NewFromInt(6000).Equal(stats.TotalVolume))
	assert.True(t, decimal.NewFromInt(2000).Equal(stats.AverageAmount))
	assert.True(t, decimal.NewFromInt(30).Equal(stats.TotalFees))
	assert.Equal(t, 67, stats.SuccessRate)

	require.Len(t, stats.TypeDistribution, 2)
	assert.Equal(t, string(models.CategoryIncomingMoney), stats.TypeDistribution[0].TypeName)
	assert.Equal(t, int64(2), stats.TypeDistribution[0].Count)

	require.Len(t, stats.MonthlyVolume, 2)
	assert.Equal(t, "2024-05", stats.MonthlyVolume[0].Month)
	assert.True(t, decimal.NewFromInt(4000).Equal(stats.MonthlyVolume[1].Amount))
}

func TestErrorsAndHistory(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	rec := &models.ErrorRecord{Message: "parse error: empty message body", RawPayload: `{"body":""}`}
	require.NoError(t, repo.SaveError(ctx, rec))
	assert.Positive(t, rec.ID)
	assert.False(t, rec.LoggedAt.IsZero())

	records, err := repo.ListErrors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Message, records[0].Message)
	assert.Equal(t, rec.RawPayload, records[0].RawPayload)

	older := &models.ImportHistory{BatchID: "b1", Source: "sms.xml", ImportedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Status: models.ImportStatusSuccess, RecordsImported: 3}
	newer := &models.ImportHistory{BatchID: "b2", Source: "api", ImportedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Status: models.ImportStatusPartial, RecordsImported: 1, RecordsFailed: 1}
	require.NoError(t, repo.SaveImportHistory(ctx, older))
	require.NoError(t, repo.SaveImportHistory(ctx, newer))

	history, err := repo.ListImportHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "b2", history[0].BatchID)
	assert.Equal(t, newer.ImportedAt, history[0].ImportedAt)
	assert.Equal(t, 1, history[0].RecordsFailed)
}

func TestClearAllTransactions(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	tx := newTx(t, repo, models.CategoryBundle, 2000, time.Now())
	require.NoError(t, repo.SaveTransaction(ctx, &models.RawMessage{Body: tx.RawMessage}, tx))

	require.NoError(t, repo.ClearAllTransactions(ctx))

	page, err := repo.ListTransactions(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Pagination.TotalItems)

	// справочник типов не очищается
	types, err := repo.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestSaveTransaction_Concurrent(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	base := newTx(t, repo, models.CategoryIncomingMoney, 1, time.Now())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx := *base
			tx.TransactionID = fmt.Sprintf("TX-%d", i)
			errs <- repo.SaveTransaction(ctx, &models.RawMessage{Body: tx.RawMessage}, &tx)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	page, err := repo.ListTransactions(ctx, models.TransactionFilter{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, n, page.Pagination.TotalItems)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: transaction_types.type_name (2067)")))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
	assert.False(t, isUniqueViolation(nil))
}

func TestRetryOperation(t *testing.T) {
	attempts := 0
	err := retryOperation(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	}, 3, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = retryOperation(func() error {
		attempts++
		return errors.New("no such table")
	}, 3, time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
