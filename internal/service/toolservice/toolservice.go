package toolservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/pkg/clients"
)

type Meter interface {
	Run(ctx context.Context, userID string, cost int64, toolReason, jobID string, work func(ctx context.Context) error) (domain.Settlement, error)
}

var (
	ErrUnknownTool  = errors.New("unknown tool")
	ErrVendorFailed = errors.New("vendor call failed")
)

const jobHeader = "X-Job-ID"

type Service struct {
	url    string
	prices map[string]int64
	meter  Meter
	client clients.HTTPClientI
}

func New(vendorURL string, prices map[string]int64, meter Meter, client clients.HTTPClientI) *Service {
	return &Service{
		url:    vendorURL,
		prices: prices,
		meter:  meter,
		client: client,
	}
}

func (s *Service) Price(tool string) (int64, bool) {
	cost, ok := s.prices[tool]
	return cost, ok
}

func (s *Service) Execute(ctx context.Context, userID, tool, jobID string, payload []byte) (*domain.ToolResult, error) {
	cost, ok := s.Price(tool)
	if !ok {
		return nil, ErrUnknownTool
	}
	if jobID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate job id: %w", err)
		}
		jobID = id.String()
	}

	var output []byte
	work := func(ctx context.Context) error {
		headers := http.Header{}
		headers.Set(jobHeader, jobID)

		status, body, err := s.client.Post(ctx, s.url+"/api/ai/"+tool, headers, payload)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrVendorFailed, err)
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return fmt.Errorf("%w: status %d", ErrVendorFailed, status)
		}
		output = body
		return nil
	}

	settlement, err := s.meter.Run(ctx, userID, cost, domain.ToolReason(tool), jobID, work)
	result := &domain.ToolResult{
		JobID:    jobID,
		Tool:     tool,
		Cost:     cost,
		Balance:  settlement.Balance,
		Refunded: settlement.Refunded,
		Output:   output,
	}
	if err != nil {
		zap.L().Warn("tool call not completed",
			zap.String("userID", userID), zap.String("tool", tool), zap.String("jobID", jobID),
			zap.Bool("refunded", settlement.Refunded), zap.Error(err))
		return result, err
	}

	zap.L().Info("tool call completed",
		zap.String("userID", userID), zap.String("tool", tool), zap.String("jobID", jobID), zap.Int64("cost", cost))
	return result, nil
}
