package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// Services use it to keep a mutation and the owning case's updated_at bump atomic.
type TransactionManager interface {
	// ExecTx executes fn within a transaction; fn's ctx carries the transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
