package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/service"
)

// TransactionHandler handles HTTP requests for transactions.
type TransactionHandler struct {
	transactionService *service.TransactionService
	loadService        *service.LoadService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *service.TransactionService, loadService *service.LoadService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		loadService:        loadService,
	}
}

// CreateTransactionRequest is the HTTP request body for recording a transaction.
type CreateTransactionRequest struct {
	UserID         string                `json:"userId"`
	LoadID         string                `json:"loadId"`
	Amount         float64               `json:"amount" binding:"required,gt=0"`
	Type           string                `json:"type" binding:"required"`
	Description    string                `json:"description"`
	Reference      string                `json:"reference"`
	PaymentMethod  string                `json:"paymentMethod"`
	PaymentDetails domain.PaymentDetails `json:"paymentDetails"`
}

// TransactionResponse is the HTTP representation of a transaction.
type TransactionResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	LoadID         string                `json:"loadId,omitempty"`
	Amount         float64               `json:"amount"`
	Type           string                `json:"type"`
	Status         string                `json:"status"`
	Description    string                `json:"description,omitempty"`
	Reference      string                `json:"reference,omitempty"`
	PaymentMethod  string                `json:"paymentMethod,omitempty"`
	PaymentDetails domain.PaymentDetails `json:"paymentDetails"`
	CreatedAt      time.Time             `json:"createdAt"`
	CompletedAt    *time.Time            `json:"completedAt,omitempty"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		LoadID:         t.LoadID,
		Amount:         t.Amount,
		Type:           string(t.Type),
		Status:         string(t.Status),
		Description:    t.Description,
		Reference:      t.Reference,
		PaymentMethod:  t.PaymentMethod,
		PaymentDetails: t.PaymentDetails,
		CreatedAt:      t.CreatedAt,
	}
	if !t.CompletedAt.IsZero() {
		ct := t.CompletedAt
		resp.CompletedAt = &ct
	}
	return resp
}

func toTransactionResponses(txns []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

// CreateTransaction handles POST /api/transactions
// Non-admin callers can only record transactions against themselves.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	userID := req.UserID
	if userID == "" || !role.IsAdmin() {
		userID = callerID
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), service.CreateTransactionRequest{
		UserID:         userID,
		LoadID:         req.LoadID,
		Amount:         req.Amount,
		Type:           domain.TransactionType(req.Type),
		Description:    req.Description,
		Reference:      req.Reference,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTransactionResponse(txn))
}

// ListMyTransactions handles GET /api/transactions
func (h *TransactionHandler) ListMyTransactions(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)

	txns, err := h.transactionService.ListForUser(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponses(txns))
}

// ListForLoad handles GET /api/transactions/load/:loadId
// Only the load's shipper, its assigned trucker, and admins may see them.
func (h *TransactionHandler) ListForLoad(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)
	loadID := c.Param("loadId")

	load, err := h.loadService.GetLoad(c.Request.Context(), loadID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !role.IsAdmin() && load.ShipperID != callerID && load.AssignedTruckerID != callerID {
		respondError(c, service.ErrUnauthorized)
		return
	}

	txns, err := h.transactionService.ListForLoad(c.Request.Context(), loadID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponses(txns))
}

// GetTransaction handles GET /api/transactions/:id
// Callers only see their own transactions unless they are admins.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if txn.UserID != callerID && !role.IsAdmin() {
		respondError(c, service.ErrUnauthorized)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponse(txn))
}
