package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns returns recent checkout runs, newest first. Operator only.
func ListRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}
	runs, err := deps.Runs.ListRuns(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun returns one run with its per-item progression.
func GetRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		RespondError(c, http.StatusBadRequest, "missing run id", nil)
		return
	}
	run, items, err := deps.Runs.GetRun(runID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "items": items})
}

// ListOrphans lists bookings that were created but never paid, across all
// failed runs. This is the operator's view of the no-rollback policy.
func ListOrphans(c *gin.Context) {
	items, err := deps.Runs.ListOrphans()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orphans": items})
}
