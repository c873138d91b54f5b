package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/majifix/service-request/internal/config"
	"github.com/majifix/service-request/internal/domain"
)

// SyncDirection selects which partner system receives a request.
type SyncDirection string

const (
	// SyncUpstream pushes to the upstream system of record, e.g. an
	// external utility the service is delegated to.
	SyncUpstream SyncDirection = "upstream"
	// SyncDownstream mirrors to a downstream consumer, e.g. an open data
	// portal or municipal dashboard.
	SyncDownstream SyncDirection = "downstream"
)

// SyncService pushes service requests to partner systems over HTTP using
// the legacy wire shape. A direction is silently skipped unless fully
// configured; upstream additionally requires the request's service to be
// marked external.
type SyncService struct {
	cfg    config.SyncConfig
	locale string
	client *http.Client
	logger *zap.Logger
}

// NewSyncService constructs the service.
func NewSyncService(cfg config.SyncConfig, locale string, logger *zap.Logger) *SyncService {
	if locale == "" {
		locale = domain.DefaultLocale
	}
	return &SyncService{
		cfg:    cfg,
		locale: locale,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Sync pushes one request in the given direction. Misconfigured or
// inapplicable pushes are no-ops, never errors.
func (s *SyncService) Sync(ctx context.Context, direction SyncDirection, req *domain.ServiceRequest) error {
	if req == nil {
		return nil
	}

	var endpoint config.SyncEndpoint
	switch direction {
	case SyncUpstream:
		endpoint = s.cfg.Upstream
	case SyncDownstream:
		endpoint = s.cfg.Downstream
	default:
		return fmt.Errorf("unknown sync direction: %s", direction)
	}
	if !endpoint.Enabled || endpoint.BaseURL == "" || endpoint.Token == "" {
		return nil
	}

	payload := MapToLegacy(req, s.locale)
	method := http.MethodPost
	if direction == SyncUpstream {
		// upstream owns delegated requests only, and keeps its own history
		if req.Service == nil || !req.Service.IsExternal {
			return nil
		}
		method = http.MethodPatch
		payload.ChangeLogs = nil
		payload.Attachments = nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sync %s: encode request %s: %w", direction, req.ID, err)
	}

	url := strings.TrimRight(endpoint.BaseURL, "/") + "/servicerequests"
	if direction == SyncUpstream {
		url += "/" + req.ID
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sync %s: build request: %w", direction, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+endpoint.Token)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sync %s: push request %s: %w", direction, req.ID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sync %s: push request %s: unexpected status %d", direction, req.ID, resp.StatusCode)
	}

	if s.logger != nil {
		s.logger.Info("service request synced",
			zap.String("direction", string(direction)),
			zap.String("request_id", req.ID),
			zap.String("code", req.Code))
	}
	return nil
}
