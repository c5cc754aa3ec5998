package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const Version = "1.0.0"

// NewHealthHandler checks the session store and the backend API. The backend
// check is skipped on error so a degraded backend reports partially available
// instead of taking the storefront out of rotation.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "backend-api",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: healthHttp.New(healthHttp.Config{
					URL:            cfg.API.HealthURL(),
					RequestTimeout: 4 * time.Second,
				}),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
