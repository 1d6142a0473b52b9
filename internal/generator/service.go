package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/config"
)

// Locker serializes completion calls across processes. A nil Locker on the
// Service disables locking.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Service runs the model-backed trainer operations. All calls go through one
// path: acquire the lock, send the completion with retries, release.
type Service struct {
	client Client
	locker Locker
	logger *zap.Logger

	model      string
	attempts   int
	retryDelay time.Duration
}

// NewService wires a Service. locker may be nil.
func NewService(client Client, locker Locker, logger *zap.Logger, cfg *config.Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:     client,
		locker:     locker,
		logger:     logger,
		model:      cfg.Model,
		attempts:   cfg.MaxRetryAttempts,
		retryDelay: 500 * time.Millisecond,
	}
}

// call sends a system+user prompt pair and returns the response text.
// The lock is held for each individual completion attempt.
func (s *Service) call(ctx context.Context, op, system, user string, temperature float64, model string) (string, error) {
	if model == "" {
		model = s.model
	}
	req := CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		Temperature: temperature,
	}

	return retry(ctx, s.attempts, s.retryDelay, s.logger, op, func() (string, error) {
		return s.complete(ctx, req)
	})
}

func (s *Service) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			return "", fmt.Errorf("acquire completion lock: %w", err)
		}
		defer release()
	}
	return s.client.Complete(ctx, req)
}

// callJSON is call plus salvage parsing of the response into an object.
func (s *Service) callJSON(ctx context.Context, op, system, user string, temperature float64, model string) (map[string]any, error) {
	raw, err := s.call(ctx, op, system, user, temperature, model)
	if err != nil {
		return nil, err
	}

	obj, err := ParseObject(raw)
	if err != nil {
		s.logger.Error("unparseable model response", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return obj, nil
}

// str reads obj[key] as a trimmed string, tolerating absence and non-string
// values.
func str(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// strSlice reads obj[key] as a string list, skipping non-string elements.
func strSlice(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
