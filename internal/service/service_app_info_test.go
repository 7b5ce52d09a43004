package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
)

func TestNewAppInfoService(t *testing.T) {
	t.Run("empty version", func(t *testing.T) {
		svc, err := NewAppInfoService(config.App{}, logger.Nop())
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
	})

	t.Run("returns build version", func(t *testing.T) {
		svc, err := NewAppInfoService(config.App{Version: "v1.4.0-rc.1+ward"}, logger.Nop())
		require.NoError(t, err)
		assert.Equal(t, "v1.4.0-rc.1+ward", svc.GetAppVersion(context.Background()))
	})
}

func TestDirectoryService(t *testing.T) {
	svc := NewDirectoryService(config.Directory{Cities: []config.City{
		{Name: "Шымкент", Institutions: []string{"Городской перинатальный центр"}},
	}})
	ctx := context.Background()

	assert.Len(t, svc.Cities(ctx), 1)

	institutions, err := svc.Institutions(ctx, "Шымкент")
	require.NoError(t, err)
	assert.Equal(t, []string{"Городской перинатальный центр"}, institutions)

	_, err = svc.Institutions(ctx, "Атлантида")
	assert.ErrorIs(t, err, ErrUnknownCity)
}
