package daos

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs fn as one unit of work. The ctx handed to fn must be used
// for every store call that belongs to the unit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs fn directly. Steps inside fn are not isolated from concurrent requests.
type NoTx struct{}

func (NoTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mongoTx struct {
	client *mongo.Client
}

// NewMongoTxRunner wraps fn in a multi-document transaction. Needs a replica set.
func NewMongoTxRunner(client *mongo.Client) TxRunner {
	return &mongoTx{client: client}
}

func (m *mongoTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
