package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
	"loadboard/internal/repository/postgres"
)

// TransactionService handles money movement and balance updates.
type TransactionService struct {
	db       *sql.DB
	txnRepo  repository.TransactionRepository
	userRepo repository.UserRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	db *sql.DB,
	txnRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
) *TransactionService {
	return &TransactionService{
		db:       db,
		txnRepo:  txnRepo,
		userRepo: userRepo,
	}
}

// CreateTransactionRequest contains the parameters for recording a transaction.
type CreateTransactionRequest struct {
	UserID         string
	LoadID         string
	Amount         float64
	Type           domain.TransactionType
	Description    string
	Reference      string
	PaymentMethod  string
	PaymentDetails domain.PaymentDetails
}

// CreateTransaction records a transaction and applies its balance effect
// in one database transaction. Payments and fees debit the user's
// balance, payouts and refunds credit it.
func (s *TransactionService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	delta := req.Amount
	switch req.Type {
	case domain.TransactionTypePayment, domain.TransactionTypeFee:
		delta = -req.Amount
	case domain.TransactionTypePayout, domain.TransactionTypeRefund:
	default:
		delta = 0
	}

	if delta < 0 && user.Balance+delta < 0 {
		return nil, ErrInsufficientBalance
	}

	now := time.Now()
	txn := &domain.Transaction{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		LoadID:         req.LoadID,
		Amount:         req.Amount,
		Type:           req.Type,
		Status:         domain.TransactionStatusCompleted,
		Description:    req.Description,
		Reference:      req.Reference,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
		CreatedAt:      now,
		CompletedAt:    now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTxnRepo := postgres.NewTransactionRepositoryWithTx(tx)
	txUserRepo := postgres.NewUserRepositoryWithTx(tx)

	if err = txTxnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if delta != 0 {
		user.Balance += delta
		if err = txUserRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, txnID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

// ListAll retrieves every transaction, newest first.
func (s *TransactionService) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	return s.txnRepo.ListAll(ctx)
}

// ListForUser retrieves a user's transactions, newest first.
func (s *TransactionService) ListForUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.txnRepo.ListByUser(ctx, userID)
}

// ListForLoad retrieves a load's transactions, newest first.
func (s *TransactionService) ListForLoad(ctx context.Context, loadID string) ([]*domain.Transaction, error) {
	if loadID == "" {
		return nil, ErrInvalidLoadID
	}
	return s.txnRepo.ListByLoad(ctx, loadID)
}

// UpdateStatus changes a transaction's settlement status, stamping the
// completion time when it completes.
func (s *TransactionService) UpdateStatus(ctx context.Context, txnID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	txn.Status = status
	if status == domain.TransactionStatusCompleted && txn.CompletedAt.IsZero() {
		txn.CompletedAt = time.Now()
	}

	if err := s.txnRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}
