package service

import (
	"context"

	"github.com/MKhiriev/umay/internal/config"
)

type directoryService struct {
	directory config.Directory
}

func NewDirectoryService(directory config.Directory) DirectoryService {
	return &directoryService{directory: directory}
}

func (s *directoryService) Cities(ctx context.Context) []config.City {
	return s.directory.Cities
}

func (s *directoryService) Institutions(ctx context.Context, city string) ([]string, error) {
	for _, c := range s.directory.Cities {
		if c.Name == city {
			return c.Institutions, nil
		}
	}
	return nil, ErrUnknownCity
}
