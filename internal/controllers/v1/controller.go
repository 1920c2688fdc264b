// Package v1 implements the HTTP API of the tesouraria backend.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tesouraria/backend/internal/cache"
	"github.com/tesouraria/backend/internal/dues"
)

// Controller carries the explicit dependencies of the API handlers: the
// report cache and the dues policy. There is no implicit session state,
// report staleness is bounded by the cache TTL and by invalidation.
type Controller struct {
	ReportCache *cache.Cache[any]
	DuesPolicy  dues.Policy
}

// NewController builds a controller from the environment.
func NewController() Controller {
	return Controller{
		ReportCache: cache.New[any](cache.TTLFromEnv("REPORT_CACHE_TTL", time.Minute)),
		DuesPolicy:  dues.PolicyFromEnv(),
	}
}

// invalidate drops all cached reports that were derived from the changed
// entities. Cache entries are tagged with the entity kind and with
// "kind:id", so both coarse and per-entity invalidation work.
func (co Controller) invalidate(kind string, ids ...uuid.UUID) {
	if co.ReportCache == nil {
		return
	}

	tags := make([]string, 0, len(ids)+1)
	tags = append(tags, kind)
	for _, id := range ids {
		tags = append(tags, kind+":"+id.String())
	}

	co.ReportCache.Invalidate(tags...)
}

// Register attaches all v1 routes to the router group.
func Register(r *gin.RouterGroup, co Controller) {
	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterMemberRoutes(r.Group("/members"))
	co.RegisterPaymentRoutes(r.Group("/payments"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterPayableBillRoutes(r.Group("/payable-bills"))
	co.RegisterTransferRoutes(r.Group("/transfers"))
	co.RegisterReportRoutes(r.Group("/reports"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterPayeeRoutes(r.Group("/payees"))
	co.RegisterProjectRoutes(r.Group("/projects"))
	co.RegisterTagRoutes(r.Group("/tags"))
}
