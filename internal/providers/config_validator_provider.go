package providers

import (
	"errors"
	"fmt"

	"codefolio/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags first and then the cross-field rules tags
// cannot express.
func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	switch c.conf.Store.Driver {
	case "redis":
		if c.conf.Store.RedisUrl == "" {
			return errors.New("invalid config: store.redisUrl is required for the redis driver")
		}
	case "postgres":
		if c.conf.Store.PostgresDsn == "" {
			return errors.New("invalid config: store.postgresDsn is required for the postgres driver")
		}
	}

	if c.conf.Cache.Enabled && c.conf.Cache.TTL <= 0 {
		return errors.New("invalid config: cache.ttl must be positive when cache is enabled")
	}
	return nil
}
