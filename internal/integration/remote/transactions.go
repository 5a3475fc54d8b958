package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// transactionClient implements the adapter.RemoteTransactionClient interface.
type transactionClient struct {
	client *Client
}

// NewTransactionClient creates a new remote transaction client.
func NewTransactionClient(client *Client) adapter.RemoteTransactionClient {
	return &transactionClient{
		client: client,
	}
}

// List fetches the full remote transaction snapshot for the user.
func (c *transactionClient) List(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}

	var dtos []transactionDTO
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/transactions/get", body, &dtos); err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(dtos))
	for i, d := range dtos {
		transactions[i] = d.toEntity()
	}
	return transactions, nil
}

// Create pushes a whole-record create.
func (c *transactionClient) Create(ctx context.Context, userID string, transaction *entity.Transaction) error {
	body := struct {
		UserID      string         `json:"userId"`
		Transaction transactionDTO `json:"transaction"`
	}{UserID: userID, Transaction: transactionToDTO(transaction)}

	var status statusResponse
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/transactions/create", body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// Update pushes a whole-record update.
func (c *transactionClient) Update(ctx context.Context, userID string, transaction *entity.Transaction) error {
	body := struct {
		UserID      string         `json:"userId"`
		Transaction transactionDTO `json:"transaction"`
	}{UserID: userID, Transaction: transactionToDTO(transaction)}

	var status statusResponse
	path := fmt.Sprintf("/api/transactions/%d", transaction.ID)
	if err := c.client.doJSON(ctx, http.MethodPut, path, body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// Delete removes the remote record.
func (c *transactionClient) Delete(ctx context.Context, userID string, id int64) error {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}

	var status statusResponse
	path := fmt.Sprintf("/api/transactions/%d", id)
	if err := c.client.doJSON(ctx, http.MethodPost, path, body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// ReassignCategory moves all remote transactions from one category to another.
func (c *transactionClient) ReassignCategory(ctx context.Context, userID string, oldCategoryID, newCategoryID int64) error {
	body := struct {
		UserID        string `json:"userId"`
		OldCategoryID int64  `json:"oldCategoryId"`
		NewCategoryID int64  `json:"newCategoryId"`
	}{UserID: userID, OldCategoryID: oldCategoryID, NewCategoryID: newCategoryID}

	var status statusResponse
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/transactions/reassign-category", body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

func statusErr(status statusResponse) error {
	if status.Success {
		return nil
	}
	if status.Error == "" {
		return fmt.Errorf("relay reported failure")
	}
	return fmt.Errorf("relay reported failure: %s", status.Error)
}
