package transaction

import (
	"context"
	"fmt"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// ListTransactionsInput represents the input for transaction listing.
type ListTransactionsInput struct {
	Type       *entity.TransactionType
	CategoryID *int64
	StartDate  *int64
	EndDate    *int64
	Search     string
}

// ListTransactionsOutput represents the output of transaction listing.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
}

// ListTransactionsUseCase lists live transactions from the local store.
type ListTransactionsUseCase struct {
	transactionStore adapter.TransactionStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionStore adapter.TransactionStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionStore: transactionStore}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := adapter.TransactionFilter{
		Type:       input.Type,
		CategoryID: input.CategoryID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Search:     input.Search,
	}

	transactions, err := uc.transactionStore.FindLive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListTransactionsOutput{Transactions: make([]*TransactionOutput, 0, len(transactions))}
	for _, transaction := range transactions {
		output.Transactions = append(output.Transactions, toOutput(transaction))
	}
	return output, nil
}
