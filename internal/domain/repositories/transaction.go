package repositories

import "context"

// TxFn is a unit of work run inside one transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs units of work atomically. Every deck tree and card
// mutation goes through ExecTx so that the owner lock, the re-read and the
// writes share one transaction.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
