package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"momo-analysis/internal/config"
	"momo-analysis/internal/models"
	"momo-analysis/internal/storage"
	"momo-analysis/internal/storage/mocks"
	"momo-analysis/internal/storage/sqlite"
)

func TestResolve_CreatesOnFirstSight(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("GetTypeByName", mock.Anything, "Airtime Bill Payments").Return(nil, nil).Once()
	store.On("CreateType", mock.Anything, "Airtime Bill Payments", "Transaction type for Airtime Bill Payments").
		Return(&models.TransactionType{ID: 5, Name: "Airtime Bill Payments"}, nil).Once()

	r := New(store)

	id, err := r.Resolve(context.Background(), "Airtime Bill Payments")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	// второй вызов обслуживается из кэша
	id, err = r.Resolve(context.Background(), "Airtime Bill Payments")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	store.AssertExpectations(t)
}

func TestResolve_ExistingType(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("GetTypeByName", mock.Anything, "Bank Deposits").
		Return(&models.TransactionType{ID: 3, Name: "Bank Deposits"}, nil).Once()

	id, err := New(store).Resolve(context.Background(), "Bank Deposits")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	store.AssertNotCalled(t, "CreateType", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_ConflictRefetchesOnce(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("GetTypeByName", mock.Anything, "Bundle Purchases").Return(nil, nil).Once()
	store.On("CreateType", mock.Anything, "Bundle Purchases", mock.Anything).
		Return(nil, storage.ErrTypeExists).Once()
	store.On("GetTypeByName", mock.Anything, "Bundle Purchases").
		Return(&models.TransactionType{ID: 10, Name: "Bundle Purchases"}, nil).Once()

	id, err := New(store).Resolve(context.Background(), "Bundle Purchases")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	store.AssertExpectations(t)
}

func TestResolve_StoreError(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("GetTypeByName", mock.Anything, "Bank Transfers").Return(nil, errors.New("disk I/O error"))

	r := New(store)
	_, err := r.Resolve(context.Background(), "Bank Transfers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")

	// ошибка не кэшируется
	_, ok := r.cached("Bank Transfers")
	assert.False(t, ok)
}

func TestResolve_ConcurrentFirstResolution(t *testing.T) {
	db, err := sqlite.NewConnection(&config.Config{DB: config.DBConfig{DBPath: ":memory:"}})
	require.NoError(t, err)
	defer db.Close()

	repo := sqlite.NewRepository(db)
	r := New(repo)

	const n = 50
	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = r.Resolve(context.Background(), "Cash Power Bill Payments")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	types, err := repo.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestResolve_TwoRegistriesShareStore(t *testing.T) {
	db, err := sqlite.NewConnection(&config.Config{DB: config.DBConfig{DBPath: ":memory:"}})
	require.NoError(t, err)
	defer db.Close()

	repo := sqlite.NewRepository(db)
	first, second := New(repo), New(repo)

	a, err := first.Resolve(context.Background(), "Incoming Money")
	require.NoError(t, err)
	b, err := second.Resolve(context.Background(), "Incoming Money")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
