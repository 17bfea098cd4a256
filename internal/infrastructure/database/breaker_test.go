package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type failingDynamo struct {
	DynamoAPI
	err   error
	calls int
}

func (f *failingDynamo) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *failingDynamo) TransactWriteItems(context.Context, *dynamodb.TransactWriteItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func TestGuardedClient(t *testing.T) {
	t.Run("passes results through", func(t *testing.T) {
		next := &failingDynamo{}
		g := NewGuardedClient(next, NewCircuitBreaker("test"))

		out, err := g.GetItem(context.Background(), &dynamodb.GetItemInput{})
		if err != nil || out == nil {
			t.Fatalf("unexpected result: %v %v", out, err)
		}
	})

	t.Run("opens after repeated failures", func(t *testing.T) {
		next := &failingDynamo{err: errors.New("connection refused")}
		g := NewGuardedClient(next, NewCircuitBreaker("test"))

		for i := 0; i < 5; i++ {
			if _, err := g.GetItem(context.Background(), &dynamodb.GetItemInput{}); err == nil {
				t.Fatalf("expected error on call %d", i)
			}
		}
		_, err := g.GetItem(context.Background(), &dynamodb.GetItemInput{})
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
		if next.calls != 5 {
			t.Fatalf("expected open breaker to skip the store, got %d calls", next.calls)
		}
	})

	t.Run("conditional check failures do not trip", func(t *testing.T) {
		next := &failingDynamo{err: &types.ConditionalCheckFailedException{}}
		g := NewGuardedClient(next, NewCircuitBreaker("test"))

		for i := 0; i < 10; i++ {
			_, err := g.GetItem(context.Background(), &dynamodb.GetItemInput{})
			var cfe *types.ConditionalCheckFailedException
			if !errors.As(err, &cfe) {
				t.Fatalf("expected conditional check error on call %d, got %v", i, err)
			}
		}
	})

	t.Run("cancelled transactions do not trip", func(t *testing.T) {
		next := &failingDynamo{err: &types.TransactionCanceledException{}}
		g := NewGuardedClient(next, NewCircuitBreaker("test"))

		for i := 0; i < 10; i++ {
			_, err := g.TransactWriteItems(context.Background(), &dynamodb.TransactWriteItemsInput{})
			var tce *types.TransactionCanceledException
			if !errors.As(err, &tce) {
				t.Fatalf("expected cancelled transaction on call %d, got %v", i, err)
			}
		}
		if next.calls != 10 {
			t.Fatalf("expected every call to reach the store, got %d", next.calls)
		}
	})
}
