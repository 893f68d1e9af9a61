package handlers

import (
	"context"
	"lotbook/database"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Driver  string `json:"driver"`
	Version string `json:"version"`
}

func HealthCheck(store database.Store, driver, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeStatus := "up"
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			storeStatus = "down"
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Store:   storeStatus,
			Driver:  driver,
			Version: version,
		})
	}
}
