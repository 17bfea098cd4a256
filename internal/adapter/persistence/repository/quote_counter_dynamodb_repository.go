package repository

import (
	"context"
	"errors"
	"fmt"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QuoteCounterDynamoRepository keeps one counter per seller and day in the
// "contadores_presupuestos" table (PK: id = "<seller>#<YYYY-MM-DD>") and
// advances it in the same transaction that writes the quote.
type QuoteCounterDynamoRepository struct {
	ddb         database.DynamoAPI
	tableName   string
	quotesTable string
}

var _ interfaces.IQuoteCounter = (*QuoteCounterDynamoRepository)(nil)

func NewQuoteCounterDynamoRepository(ddb database.DynamoAPI, tableName, quotesTable string) *QuoteCounterDynamoRepository {
	return &QuoteCounterDynamoRepository{ddb: ddb, tableName: tableName, quotesTable: quotesTable}
}

func CounterKey(sellerID, day string) string {
	return sellerID + "#" + day
}

type counterItem struct {
	ID        string `dynamodbav:"id"`
	SellerID  string `dynamodbav:"seller_id"`
	Day       string `dynamodbav:"day"`
	LastValue int64  `dynamodbav:"last_value"`
}

func (r *QuoteCounterDynamoRepository) Current(ctx context.Context, sellerID, day string) (int64, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: CounterKey(sellerID, day)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 0, nil
	}
	var it counterItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return 0, fmt.Errorf("%w: counter %s: %v", ErrMalformedDocument, CounterKey(sellerID, day), err)
	}
	return it.LastValue, nil
}

// CreateNumbered writes the counter bump and the quote in one
// TransactWriteItems call. The counter update is conditioned on still holding
// previous, so a lost race cancels the whole transaction.
func (r *QuoteCounterDynamoRepository) CreateNumbered(ctx context.Context, q entities.Quote, day string, previous int64) (entities.Quote, error) {
	if err := validateQuote(q); err != nil {
		return entities.Quote{}, err
	}
	quote, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	cond := expression.Name("last_value").Equal(expression.Value(previous))
	if previous == 0 {
		cond = expression.AttributeNotExists(expression.Name("id"))
	}
	update := expression.Set(expression.Name("last_value"), expression.Value(previous+1)).
		Set(expression.Name("seller_id"), expression.Value(q.SellerID)).
		Set(expression.Name("day"), expression.Value(day))
	expr, err := expression.NewBuilder().WithCondition(cond).WithUpdate(update).Build()
	if err != nil {
		return entities.Quote{}, fmt.Errorf("build counter update: %w", err)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: CounterKey(q.SellerID, day)},
				},
				UpdateExpression:          expr.Update(),
				ConditionExpression:       expr.Condition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.quotesTable),
				Item:                quote,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			}},
		},
	})
	if err != nil {
		if counterConflict(err) {
			return entities.Quote{}, fmt.Errorf("%w: %s", interfaces.ErrCounterConflict, CounterKey(q.SellerID, day))
		}
		return entities.Quote{}, err
	}
	return q, nil
}

// counterConflict reports whether the transaction was cancelled by the
// counter condition, which is always the first item.
func counterConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || len(tce.CancellationReasons) == 0 {
		return false
	}
	return aws.ToString(tce.CancellationReasons[0].Code) == "ConditionalCheckFailed"
}
