package handlers

import (
	"errors"
	"lotbook/database"
	"lotbook/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Plain-text bodies returned to callers. Store errors are logged, never
// echoed back.
const (
	msgNotFound    = "Not found"
	msgInvalidID   = "Invalid id"
	msgInvalidBody = "Invalid body"
	msgListError   = "Error listing Projects"
	msgGetError    = "Error fetching Project"
	msgCreateError = "Error adding Project"
	msgUpdateError = "Error updating record"
	msgDeleteError = "Error deleting record"
)

func ListProjects(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := store.ListProjects(c.Request.Context())
		if err != nil {
			logger.Error("ListProjects store error", requestField(c), zap.Error(err))
			c.String(http.StatusInternalServerError, msgListError)
			return
		}

		c.JSON(http.StatusOK, projects)
	}
}

func GetProject(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := store.GetProject(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, logger, "GetProject", err, msgGetError)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func CreateProject(store database.Store, opts models.MapOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindProjectInput(c)
		if err != nil {
			logger.Warn("CreateProject bind error", requestField(c), zap.Error(err))
			c.String(http.StatusBadRequest, msgInvalidBody)
			return
		}

		result, err := store.InsertProject(c.Request.Context(), models.FromInput(req, opts))
		if err != nil {
			logger.Error("CreateProject store error", requestField(c), zap.Error(err))
			c.String(http.StatusInternalServerError, msgCreateError)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// UpdateProject overwrites every tracked field of the record with the
// mapped payload. Fields missing from the payload are stored empty.
func UpdateProject(store database.Store, opts models.MapOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindProjectInput(c)
		if err != nil {
			logger.Warn("UpdateProject bind error", requestField(c), zap.Error(err))
			c.String(http.StatusBadRequest, msgInvalidBody)
			return
		}

		result, err := store.UpdateProject(c.Request.Context(), c.Param("id"), models.FromInput(req, opts))
		if err != nil {
			writeStoreError(c, logger, "UpdateProject", err, msgUpdateError)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// DeleteProject answers 200 with deletedCount 0 when nothing matched.
func DeleteProject(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := store.DeleteProject(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, logger, "DeleteProject", err, msgDeleteError)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// bindProjectInput reads the request body as a project payload. Anything
// other than a JSON object is rejected.
func bindProjectInput(c *gin.Context) (models.ProjectInput, error) {
	body, err := c.GetRawData()
	if err != nil {
		return models.ProjectInput{}, err
	}
	return models.DecodeInput(body)
}

func writeStoreError(c *gin.Context, logger *zap.Logger, op string, err error, msg string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.String(http.StatusNotFound, msgNotFound)
	case errors.Is(err, database.ErrInvalidID):
		c.String(http.StatusBadRequest, msgInvalidID)
	default:
		logger.Error(op+" store error", requestField(c), zap.String("id", c.Param("id")), zap.Error(err))
		c.String(http.StatusInternalServerError, msg)
	}
}

func requestField(c *gin.Context) zap.Field {
	return zap.String("request_id", c.GetString("request_id"))
}
