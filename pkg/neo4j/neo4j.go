package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type Config struct {
	URI      string `envconfig:"NEO4J_URI" required:"true"`
	User     string `envconfig:"NEO4J_USER" required:"true"`
	Password string `envconfig:"NEO4J_PASSWORD" required:"true"`
	Database string `envconfig:"NEO4J_DATABASE"`

	MaxPoolSize    int `envconfig:"NEO4J_MAX_POOL_SIZE" default:"50"`
	ConnectTimeout int `envconfig:"NEO4J_CONNECT_TIMEOUT" default:"5"`
}

// New creates a pooled driver and verifies connectivity once. The driver is safe
// for concurrent use and is meant to be shared for the process lifetime.
func (c *Config) New(ctx context.Context) (neo4j.DriverWithContext, error) {
	if c.URI == "" || c.User == "" || c.Password == "" {
		return nil, fmt.Errorf("neo4j uri, user and password are required")
	}

	driver, err := neo4j.NewDriverWithContext(c.URI, neo4j.BasicAuth(c.User, c.Password, ""),
		func(cfg *neo4j.Config) {
			if c.MaxPoolSize > 0 {
				cfg.MaxConnectionPoolSize = c.MaxPoolSize
			}
			if c.ConnectTimeout > 0 {
				cfg.SocketConnectTimeout = time.Duration(c.ConnectTimeout) * time.Second
			}
		})
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}
