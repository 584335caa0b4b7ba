package controllers

import (
	"github.com/gin-gonic/gin"

	"roamio/internal/services"
	"roamio/pkg/utils"
)

type OpsController struct {
	quotaGuard       services.QuotaGuardInterface
	discoveryService services.DiscoveryServiceInterface
}

func NewOpsController(quotaGuard services.QuotaGuardInterface, discoveryService services.DiscoveryServiceInterface) *OpsController {
	return &OpsController{
		quotaGuard:       quotaGuard,
		discoveryService: discoveryService,
	}
}

// GetUsage handles GET /ops/usage: per-provider quota utilization plus the
// recent provider-attempt log.
func (o *OpsController) GetUsage(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"providers":       o.quotaGuard.GetUsageStats(),
		"recent_attempts": o.discoveryService.RecentAttempts(),
	}, "Usage stats fetched successfully")
}
