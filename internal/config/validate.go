package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults and checks the rest.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port == 0 {
		out.App.Port = 38471
	}
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if strings.TrimSpace(out.Catalog.Path) == "" {
		out.Catalog.Path = "catalog.json"
	}

	out.Storage.Backend = strings.ToLower(strings.TrimSpace(out.Storage.Backend))
	switch out.Storage.Backend {
	case "":
		out.Storage.Backend = "sqlite"
	case "sqlite", "memory":
	case "redis":
		if strings.TrimSpace(out.Storage.RedisURL) == "" {
			res.addErr("storage.redis_url is required when storage.backend=redis")
		}
	default:
		res.addErr("storage.backend must be sqlite, redis or memory (got %q)", out.Storage.Backend)
	}
	if out.Storage.Backend == "memory" {
		res.addWarn("storage.backend=memory: preferences, digests and statuses are lost on restart")
	}

	if out.API.RateLimitPerSec < 0 {
		res.addErr("api.rate_limit_per_sec must be >= 0")
	}
	if out.API.RateLimitPerSec > 0 && out.API.RateLimitBurst <= 0 {
		out.API.RateLimitBurst = 10
	}

	return out, res
}
