package service

import (
	"context"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/catalog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	checkOk         = "ok"
)

type IHealthService interface {
	// Ready returns an Unavailable error naming the first dependency that is down.
	Ready(ctx context.Context) error
	Check(ctx context.Context) *dto.HealthResponse
}

type healthService struct {
	uowFactory unitofwork.RepositoryFactory
	catalogs   *catalog.Holder
}

func NewHealthService(uowFactory unitofwork.RepositoryFactory, catalogs *catalog.Holder) IHealthService {
	return &healthService{
		uowFactory: uowFactory,
		catalogs:   catalogs,
	}
}

func (s *healthService) Ready(ctx context.Context) error {
	if err := s.uowFactory.Ping(ctx); err != nil {
		return serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}
	if !s.catalogs.Ready() {
		return serverutils.Unavailable(constant.ErrMsgCatalogUnavailable, nil)
	}
	return nil
}

func (s *healthService) Check(ctx context.Context) *dto.HealthResponse {
	checks := map[string]string{
		"database": checkOk,
		"catalog":  checkOk,
	}
	status := StatusHealthy

	if err := s.uowFactory.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = StatusUnhealthy
	}
	if !s.catalogs.Ready() {
		checks["catalog"] = "not loaded"
		status = StatusUnhealthy
	}

	return &dto.HealthResponse{Status: status, Checks: checks}
}
