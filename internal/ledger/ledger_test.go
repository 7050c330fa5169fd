package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"momo-analysis/internal/models"
	"momo-analysis/internal/storage/mocks"
)

func TestRecord_Persists(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("SaveError", mock.Anything, mock.AnythingOfType("*models.ErrorRecord")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.ErrorRecord).ID = 7
		}).
		Return(nil)

	l := New(store)
	l.now = func() time.Time { return time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC) }

	msg := models.RawMessage{Body: "", Address: "M-Money"}
	rec := l.Record(context.Background(), "parse error: empty message body", msg)

	require.NotNil(t, rec)
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, "parse error: empty message body", rec.Message)
	assert.Equal(t, time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC), rec.LoggedAt)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(rec.RawPayload), &decoded))
	assert.Equal(t, "parse error: empty message body", decoded["error"])
	assert.Equal(t, "M-Money", decoded["message"].(map[string]interface{})["address"])

	store.AssertExpectations(t)
}

func TestRecord_StoreFailureDoesNotPropagate(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("SaveError", mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	rec := New(store).Record(context.Background(), "persistence error", "raw")

	require.NotNil(t, rec)
	assert.Zero(t, rec.ID)
	assert.Contains(t, rec.RawPayload, "persistence error")
}

func TestRecord_UnencodablePayload(t *testing.T) {
	store := new(mocks.MockRepository)
	store.On("SaveError", mock.Anything, mock.Anything).Return(nil)

	rec := New(store).Record(context.Background(), "bad", make(chan int))

	assert.JSONEq(t, `{"error":"bad"}`, rec.RawPayload)
}

func TestRecent(t *testing.T) {
	store := new(mocks.MockRepository)
	expected := []*models.ErrorRecord{{ID: 1, Message: "x"}}
	store.On("ListErrors", mock.Anything, 20).Return(expected, nil)

	records, err := New(store).Recent(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, expected, records)
}
