package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/api/middleware"
	"github.com/propchain/propchain-api/internal/api/shared/dto"
	"github.com/propchain/propchain-api/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ListProperties retrieves listings matching filter criteria
	// GET /api/v1/properties?query=<text>&listing_type=<sale|rent|any>&category=<c1>&category=<c2>&city=<city>&price_min=<n>&price_max=<n>&display_currency=<code>&bedrooms=<n|any>&bathrooms=<n|any>&area_min=<n>&area_max=<n>&year_built_min=<n>&year_built_max=<n>&amenity=<a1>&amenity=<a2>&sort=<featured|price-low|price-high|newest>
	ListProperties(c *gin.Context)

	// GetProperty retrieves a single listing by ID
	// GET /api/v1/properties/:id
	GetProperty(c *gin.Context)

	// CreateProperty creates a listing owned by the authenticated caller
	// POST /api/v1/properties
	CreateProperty(c *gin.Context)

	// UpdateProperty replaces a listing; owner only
	// PUT /api/v1/properties/:id
	UpdateProperty(c *gin.Context)

	// DeleteProperty removes a listing; owner only
	// DELETE /api/v1/properties/:id
	DeleteProperty(c *gin.Context)

	// CompareProperties computes side-by-side superlatives for 2-3 listings
	// POST /api/v1/properties/compare
	CompareProperties(c *gin.Context)

	// CreateInquiry records an anonymous inquiry against a listing (no authentication required)
	// POST /api/v1/properties/:id/inquiries
	CreateInquiry(c *gin.Context)

	// ListInquiries retrieves a listing's inquiries; owner only
	// GET /api/v1/properties/:id/inquiries
	ListInquiries(c *gin.Context)

	// UpdateInquiryStatus transitions an inquiry's status; listing owner only
	// PATCH /api/v1/inquiries/:id/status
	UpdateInquiryStatus(c *gin.Context)

	// ListFavorites retrieves the caller's favorite listings
	// GET /api/v1/favorites
	ListFavorites(c *gin.Context)

	// AddFavorite marks a listing as a favorite of the caller
	// POST /api/v1/favorites/:property_id
	AddFavorite(c *gin.Context)

	// RemoveFavorite unmarks a favorite of the caller
	// DELETE /api/v1/favorites/:property_id
	RemoveFavorite(c *gin.Context)

	// ListSavedSearches retrieves the caller's saved searches
	// GET /api/v1/saved-searches
	ListSavedSearches(c *gin.Context)

	// CreateSavedSearch stores a named search for the caller
	// POST /api/v1/saved-searches
	CreateSavedSearch(c *gin.Context)

	// DeleteSavedSearch removes one of the caller's saved searches
	// DELETE /api/v1/saved-searches/:id
	DeleteSavedSearch(c *gin.Context)

	// ListThreads derives the caller's conversation threads
	// GET /api/v1/messages/threads
	ListThreads(c *gin.Context)

	// GetThreadMessages retrieves one thread's messages and marks them read
	// GET /api/v1/messages/threads/:property_id/:counterpart_id
	GetThreadMessages(c *gin.Context)

	// SendMessage records a message from the caller about a listing
	// POST /api/v1/messages
	SendMessage(c *gin.Context)

	// GetProfile retrieves the caller's profile
	// GET /api/v1/users/me
	GetProfile(c *gin.Context)

	// UpdateProfile creates or updates the caller's profile
	// PUT /api/v1/users/me
	UpdateProfile(c *gin.Context)

	// GetRates returns the active crypto to USD rate table
	// GET /api/v1/rates
	GetRates(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// authSubject extracts the authenticated user ID set by the auth middleware.
// API-key credentials carry no subject and cannot act as a user.
func authSubject(c *gin.Context) (uuid.UUID, bool) {
	subject := c.GetString(middleware.AUTH_SUBJECT_KEY)
	if subject == "" {
		respondUnauthorized(c, "User authentication required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		respondUnauthorized(c, "Invalid authentication subject", err.Error())
		return uuid.Nil, false
	}

	return userID, true
}

// pathUUID parses a UUID path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", name), err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// ListProperties retrieves listings matching filter criteria
func (h *handler) ListProperties(c *gin.Context) {
	queryParams, err := ParseListPropertiesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListProperties(c.Request.Context(), queryParams.Criteria(), queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProperty retrieves a single listing by ID
func (h *handler) GetProperty(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	response, err := h.executor.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateProperty creates a listing owned by the authenticated caller
func (h *handler) CreateProperty(c *gin.Context) {
	ownerID, ok := authSubject(c)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CreateProperty(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateProperty replaces a listing; owner only
func (h *handler) UpdateProperty(c *gin.Context) {
	callerID, ok := authSubject(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.UpdateProperty(c.Request.Context(), callerID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteProperty removes a listing; owner only
func (h *handler) DeleteProperty(c *gin.Context) {
	callerID, ok := authSubject(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.executor.DeleteProperty(c.Request.Context(), callerID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompareProperties computes side-by-side superlatives for 2-3 listings
func (h *handler) CompareProperties(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CompareProperties(c.Request.Context(), req.PropertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateInquiry records an anonymous inquiry against a listing
func (h *handler) CreateInquiry(c *gin.Context) {
	propertyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CreateInquiry(c.Request.Context(), propertyID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListInquiries retrieves a listing's inquiries; owner only
func (h *handler) ListInquiries(c *gin.Context) {
	callerID, ok := authSubject(c)
	if !ok {
		return
	}

	propertyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	response, err := h.executor.ListInquiries(c.Request.Context(), callerID, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateInquiryStatus transitions an inquiry's status; listing owner only
func (h *handler) UpdateInquiryStatus(c *gin.Context) {
	callerID, ok := authSubject(c)
	if !ok {
		return
	}

	inquiryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.InquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.UpdateInquiryStatus(c.Request.Context(), callerID, inquiryID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListFavorites retrieves the caller's favorite listings
func (h *handler) ListFavorites(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	response, err := h.executor.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AddFavorite marks a listing as a favorite of the caller
func (h *handler) AddFavorite(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	propertyID, ok := pathUUID(c, "property_id")
	if !ok {
		return
	}

	if err := h.executor.AddFavorite(c.Request.Context(), userID, propertyID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFavorite unmarks a favorite of the caller
func (h *handler) RemoveFavorite(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	propertyID, ok := pathUUID(c, "property_id")
	if !ok {
		return
	}

	if err := h.executor.RemoveFavorite(c.Request.Context(), userID, propertyID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSavedSearches retrieves the caller's saved searches
func (h *handler) ListSavedSearches(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	response, err := h.executor.ListSavedSearches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateSavedSearch stores a named search for the caller
func (h *handler) CreateSavedSearch(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	var req dto.SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CreateSavedSearch(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// DeleteSavedSearch removes one of the caller's saved searches
func (h *handler) DeleteSavedSearch(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	searchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.executor.DeleteSavedSearch(c.Request.Context(), userID, searchID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListThreads derives the caller's conversation threads
func (h *handler) ListThreads(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	response, err := h.executor.ListThreads(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetThreadMessages retrieves one thread's messages and marks them read
func (h *handler) GetThreadMessages(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	propertyID, ok := pathUUID(c, "property_id")
	if !ok {
		return
	}

	counterpartID, ok := pathUUID(c, "counterpart_id")
	if !ok {
		return
	}

	response, err := h.executor.GetThreadMessages(c.Request.Context(), userID, propertyID, counterpartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SendMessage records a message from the caller about a listing
func (h *handler) SendMessage(c *gin.Context) {
	senderID, ok := authSubject(c)
	if !ok {
		return
	}

	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.SendMessage(c.Request.Context(), senderID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetProfile retrieves the caller's profile
func (h *handler) GetProfile(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	response, err := h.executor.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProfile creates or updates the caller's profile
func (h *handler) UpdateProfile(c *gin.Context) {
	userID, ok := authSubject(c)
	if !ok {
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRates returns the active crypto to USD rate table
func (h *handler) GetRates(c *gin.Context) {
	response, err := h.executor.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "propchain-api",
	})
}
