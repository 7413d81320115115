package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"giftwise/internal/app"
	"giftwise/internal/models"
	"giftwise/internal/services"
	"giftwise/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(appInstance *app.App) *APIHandler {
	return &APIHandler{App: appInstance}
}

// RecommendationsHandler ranks the catalog for a request body and returns
// the scored list.
func (h *APIHandler) RecommendationsHandler(c *gin.Context) {
	var body RecommendationRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req, err := body.ToRequest()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	recommendations, err := h.App.RecommendationService.Recommend(c.Request.Context(), req, body.Count)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to generate recommendations: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user_id":         req.UserID,
		"count":           len(recommendations),
		"recommendations": recommendations,
	}})
}

// InsightsHandler summarizes a user's interaction history.
func (h *APIHandler) InsightsHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		BadRequest(c, "user id is required")
		return
	}

	summary, err := h.App.InsightsService.Summarize(c.Request.Context(), userID)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to summarize interactions: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// AddItemHandler creates a catalog item.
func (h *APIHandler) AddItemHandler(c *gin.Context) {
	var body AddItemRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.App.CatalogService.AddItem(c.Request.Context(), services.AddItemParams{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Tags:        body.Tags,
		Retailer:    body.Retailer,
		Brand:       body.Brand,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			Conflict(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// GetItemHandler fetches one catalog item by ID.
func (h *APIHandler) GetItemHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid item id")
		return
	}

	item, err := h.App.CatalogService.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("item %s not found", id))
			return
		}
		Internal(c, fmt.Sprintf("failed to get item: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// ListItemsHandler pages through the catalog.
func (h *APIHandler) ListItemsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.App.CatalogService.ListItems(c.Request.Context(), limit, offset)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to list items: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// RecordEventHandler appends one interaction event, synchronously or via
// the job queue.
func (h *APIHandler) RecordEventHandler(c *gin.Context) {
	var body RecordEventRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	itemID, err := uuid.Parse(body.ItemID)
	if err != nil {
		BadRequest(c, "invalid item_id")
		return
	}

	event, err := h.App.InteractionService.Record(c.Request.Context(), services.RecordParams{
		UserID: body.UserID,
		ItemID: itemID,
		Kind:   models.InteractionKind(body.Kind),
		Async:  body.Async,
	})
	if err != nil {
		if errors.Is(err, store.ErrForeignKeyViolation) {
			BadRequest(c, fmt.Sprintf("item %s does not exist", itemID))
			return
		}
		BadRequest(c, err.Error())
		return
	}

	status := http.StatusCreated
	if body.Async {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"data": event})
}
