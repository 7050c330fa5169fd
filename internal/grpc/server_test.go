package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"momo-analysis/internal/classifier"
	"momo-analysis/internal/extractor"
	"momo-analysis/internal/importer"
	"momo-analysis/internal/models"
	"momo-analysis/internal/services"
	servicemocks "momo-analysis/internal/services/mocks"
	"momo-analysis/internal/source"
)

func startTestServer(t *testing.T, txService services.TransactionService) *MomoClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	classifierService := services.NewClassifierService(classifier.New("RWF"), extractor.New("RWF", nil))
	srv := NewServer(NewMomoGRPCServer(txService, classifierService))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewMomoClient(conn)
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGRPC_Classify(t *testing.T) {
	client := startTestServer(t, new(servicemocks.MockTransactionService))

	req, err := structpb.NewStruct(map[string]interface{}{
		"body": "You have received 2000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51.",
	})
	require.NoError(t, err)

	resp, err := client.Classify(testContext(t), req)
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.Equal(t, string(models.CategoryIncomingMoney), fields["category"].GetStringValue())
	assert.Equal(t, string(models.DirectionIncoming), fields["direction"].GetStringValue())

	extracted := fields["fields"].GetStructValue().GetFields()
	assert.Equal(t, "2000", extracted["amount"].GetStringValue())
	assert.Equal(t, "Jane Smith", extracted["sender"].GetStringValue())
}

func TestGRPC_Classify_EmptyBody(t *testing.T) {
	client := startTestServer(t, new(servicemocks.MockTransactionService))

	_, err := client.Classify(testContext(t), &structpb.Struct{})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_ImportBatch_Messages(t *testing.T) {
	mockService := new(servicemocks.MockTransactionService)
	client := startTestServer(t, mockService)

	result := &models.ImportResult{BatchID: "batch-1", Succeeded: 1, Failed: 1, Errors: []models.ImportError{
		{Message: "empty message body", RawMessage: &models.RawMessage{}},
	}}

	mockService.On("ImportMessages", mock.Anything, "phone-1", mock.MatchedBy(func(msgs []models.RawMessage) bool {
		return len(msgs) == 2 &&
			msgs[0].Body == "You have received 2000 RWF from Jane Smith" &&
			msgs[0].Timestamp.Equal(time.UnixMilli(1715351451000)) &&
			msgs[0].Address == "M-Money" &&
			msgs[1].Body == "" &&
			msgs[1].Timestamp.IsZero()
	})).Return(result, nil)

	req, err := structpb.NewStruct(map[string]interface{}{
		"source": "phone-1",
		"messages": []interface{}{
			map[string]interface{}{"body": "You have received 2000 RWF from Jane Smith", "date": 1715351451000.0, "address": "M-Money"},
			map[string]interface{}{"body": ""},
		},
	})
	require.NoError(t, err)

	resp, err := client.ImportBatch(testContext(t), req)
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.Equal(t, "batch-1", fields["batchId"].GetStringValue())
	assert.Equal(t, float64(1), fields["succeeded"].GetNumberValue())
	assert.Equal(t, float64(1), fields["failed"].GetNumberValue())
	assert.Len(t, fields["errors"].GetListValue().GetValues(), 1)

	mockService.AssertExpectations(t)
}

func TestGRPC_ImportBatch_Payload(t *testing.T) {
	mockService := new(servicemocks.MockTransactionService)
	client := startTestServer(t, mockService)

	payload := `<smses><sms body="You have received 2000 RWF from Jane Smith" date="1715351451000"/></smses>`
	mockService.On("ImportPayload", mock.Anything, "grpc", source.FormatXML, []byte(payload)).
		Return(&models.ImportResult{BatchID: "batch-2", Succeeded: 1}, nil)

	req, err := structpb.NewStruct(map[string]interface{}{"format": "xml", "payload": payload})
	require.NoError(t, err)

	resp, err := client.ImportBatch(testContext(t), req)
	require.NoError(t, err)
	assert.Equal(t, "batch-2", resp.GetFields()["batchId"].GetStringValue())
}

func TestGRPC_ImportBatch_DecodeError(t *testing.T) {
	mockService := new(servicemocks.MockTransactionService)
	client := startTestServer(t, mockService)

	decodeErr := &importer.BatchDecodeError{Source: "grpc", Err: importer.ErrNoMessages}
	mockService.On("ImportMessages", mock.Anything, "grpc", mock.Anything).
		Return(&models.ImportResult{BatchID: "batch-3"}, decodeErr)

	_, err := client.ImportBatch(testContext(t), &structpb.Struct{})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_ImportBatch_UnknownFormat(t *testing.T) {
	client := startTestServer(t, new(servicemocks.MockTransactionService))

	req, err := structpb.NewStruct(map[string]interface{}{"format": "csv", "payload": "a,b"})
	require.NoError(t, err)

	_, err = client.ImportBatch(testContext(t), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_GetStats(t *testing.T) {
	mockService := new(servicemocks.MockTransactionService)
	client := startTestServer(t, mockService)

	mockService.On("GetStats", mock.Anything).Return(&models.Stats{
		TotalTransactions: 3,
		TotalVolume:       decimal.NewFromInt(4500),
		SuccessRate:       67,
	}, nil).Once()
	mockService.On("GetStats", mock.Anything).Return(nil, errors.New("database error")).Once()

	resp, err := client.GetStats(testContext(t), nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), resp.GetFields()["totalTransactions"].GetNumberValue())
	assert.Equal(t, "4500", resp.GetFields()["totalVolume"].GetStringValue())

	_, err = client.GetStats(testContext(t), nil)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "1715351451000", scalarString(structpb.NewNumberValue(1715351451000)))
	assert.Equal(t, "2024-05-10 16:30:51", scalarString(structpb.NewStringValue("2024-05-10 16:30:51")))
	assert.Equal(t, "", scalarString(structpb.NewBoolValue(true)))
	assert.Equal(t, "", scalarString(nil))
}
