package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sony/gobreaker"
)

// ErrStoreUnavailable is returned while the breaker is open.
var ErrStoreUnavailable = errors.New("document store unavailable")

// NewCircuitBreaker trips after at least 5 calls in a 30s window with a
// failure ratio of 60% or more, and lets calls through again after 10s.
// Conditional check failures, cancelled transactions and caller
// cancellations are not store faults.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var cfe *types.ConditionalCheckFailedException
			var tce *types.TransactionCanceledException
			return errors.As(err, &cfe) || errors.As(err, &tce) || errors.Is(err, context.Canceled)
		},
	})
}

// GuardedClient runs every call through a circuit breaker. It never retries.
type GuardedClient struct {
	next DynamoAPI
	cb   *gobreaker.CircuitBreaker
}

var _ DynamoAPI = (*GuardedClient)(nil)

func NewGuardedClient(next DynamoAPI, cb *gobreaker.CircuitBreaker) *GuardedClient {
	return &GuardedClient{next: next, cb: cb}
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return zero, err
	}
	return out.(T), nil
}

func (g *GuardedClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return execute(g.cb, func() (*dynamodb.PutItemOutput, error) { return g.next.PutItem(ctx, in, optFns...) })
}

func (g *GuardedClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return execute(g.cb, func() (*dynamodb.GetItemOutput, error) { return g.next.GetItem(ctx, in, optFns...) })
}

func (g *GuardedClient) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return execute(g.cb, func() (*dynamodb.UpdateItemOutput, error) { return g.next.UpdateItem(ctx, in, optFns...) })
}

func (g *GuardedClient) Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return execute(g.cb, func() (*dynamodb.ScanOutput, error) { return g.next.Scan(ctx, in, optFns...) })
}

func (g *GuardedClient) Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return execute(g.cb, func() (*dynamodb.QueryOutput, error) { return g.next.Query(ctx, in, optFns...) })
}

func (g *GuardedClient) TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return execute(g.cb, func() (*dynamodb.TransactWriteItemsOutput, error) {
		return g.next.TransactWriteItems(ctx, in, optFns...)
	})
}
