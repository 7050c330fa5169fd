package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"momo-analysis/internal/config"
	"momo-analysis/internal/importer"
	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/services"
	"momo-analysis/internal/source"
)

type MomoGRPCServer struct {
	transactionService services.TransactionService
	classifierService  services.ClassifierService
}

func NewMomoGRPCServer(
	transactionService services.TransactionService,
	classifierService services.ClassifierService,
) *MomoGRPCServer {
	return &MomoGRPCServer{
		transactionService: transactionService,
		classifierService:  classifierService,
	}
}

// Classify классифицирует текст без сохранения
func (s *MomoGRPCServer) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	body := strings.TrimSpace(req.GetFields()["body"].GetStringValue())
	if body == "" {
		return nil, status.Error(codes.InvalidArgument, "body is required")
	}

	return toStruct(s.classifierService.Classify(body))
}

// ImportBatch импортирует сообщения из списка messages или сырой пакет payload
func (s *MomoGRPCServer) ImportBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	src := fields["source"].GetStringValue()
	if src == "" {
		src = "grpc"
	}

	logger.LogEvent(logger.EventBatchStarted, "ingestion-service", "grpc", map[string]interface{}{
		"source": src,
	})

	var (
		result *models.ImportResult
		err    error
	)

	if payload, ok := fields["payload"]; ok {
		format, ferr := source.ParseFormat(fields["format"].GetStringValue())
		if ferr != nil {
			return nil, status.Error(codes.InvalidArgument, ferr.Error())
		}
		result, err = s.transactionService.ImportPayload(ctx, src, format, []byte(payload.GetStringValue()))
	} else {
		result, err = s.transactionService.ImportMessages(ctx, src, messagesFromList(fields["messages"].GetListValue()))
	}

	if err != nil {
		var decodeErr *importer.BatchDecodeError
		if errors.As(err, &decodeErr) {
			return nil, status.Error(codes.InvalidArgument, decodeErr.Error())
		}
		log.Error().Err(err).Str("source", src).Msg("gRPC import failed")
		return nil, status.Errorf(codes.Internal, "failed to import messages: %v", err)
	}

	return toStruct(result)
}

// GetStats агрегированная статистика
func (s *MomoGRPCServer) GetStats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	stats, err := s.transactionService.GetStats(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to get stats: %v", err)
	}
	return toStruct(stats)
}

// messagesFromList переводит [{body, date, address, type}] в RawMessage.
// date может быть числом (мс эпохи) или строкой.
func messagesFromList(list *structpb.ListValue) []models.RawMessage {
	values := list.GetValues()
	messages := make([]models.RawMessage, 0, len(values))

	for _, v := range values {
		item := v.GetStructValue().GetFields()
		messages = append(messages, models.RawMessage{
			Body:      item["body"].GetStringValue(),
			Timestamp: source.ParseDate(scalarString(item["date"])),
			Address:   item["address"].GetStringValue(),
			Type:      scalarString(item["type"]),
		})
	}

	return messages
}

func scalarString(v *structpb.Value) string {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

// toStruct переводит модель в Struct через ее JSON-представление (decimal сериализуется строкой)
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// NewServer создает grpc.Server с зарегистрированным сервисом
func NewServer(server MomoServer) *grpc.Server {
	s := grpc.NewServer()
	RegisterMomoServer(s, server)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)

	return s
}

// StartGRPCServer запускает gRPC сервер
func StartGRPCServer(cfg *config.Config, server MomoServer) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s := NewServer(server)

	log.Info().Int("port", cfg.Server.GRPCPort).Msg("gRPC server listening")
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}
