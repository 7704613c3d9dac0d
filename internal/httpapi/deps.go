package httpapi

import (
	"sync/atomic"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/store"
)

type Deps struct {
	Store   store.Store
	Catalog []domain.JobPosting
	Meta    catalog.Meta

	Scorer   rank.Scorer
	Selector *digest.Selector

	Hub *events.Hub

	// Config persistence
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
