package service

import (
	"context"
	"strings"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/logger"
)

const (
	LogSourceApp   = "app"
	LogSourceAudit = "audit"
)

type IAdminService interface {
	GetLogs(ctx context.Context, req *dto.LogQueryRequest) ([]*dto.LogEntryResponse, error)
}

type adminService struct {
	appLog   logger.ILogger
	auditLog logger.ILogger
}

func NewAdminService(appLog logger.ILogger, auditLog logger.ILogger) IAdminService {
	return &adminService{
		appLog:   appLog,
		auditLog: auditLog,
	}
}

// GetLogs reads the application log by default; source=audit reads the
// workflow event trail.
func (s *adminService) GetLogs(ctx context.Context, req *dto.LogQueryRequest) ([]*dto.LogEntryResponse, error) {
	source := s.appLog
	if req.Source == LogSourceAudit {
		source = s.auditLog
	}

	entries, err := source.GetLogs(logger.LogQuery{
		Level:  strings.ToUpper(req.Level),
		Module: req.Module,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, &dto.LogEntryResponse{
			Id:        e.Id,
			Level:     e.Level,
			Module:    e.Module,
			Message:   e.Message,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		})
	}
	return res, nil
}
