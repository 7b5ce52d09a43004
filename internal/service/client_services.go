package service

import (
	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/logger"
)

type ClientServices struct {
	AuthService   ClientAuthService
	RecordService ClientRecordService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:   NewClientAuthService(serverAdapter, logger),
		RecordService: NewClientRecordService(serverAdapter, logger),
	}
}
