package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// QuoteSellerCreatedIndex backs the same-day count used for numbering.
const QuoteSellerCreatedIndex = "seller_id-created_at-index"

type clientItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
	Phone string `dynamodbav:"phone"`
}

type quoteItem struct {
	ID             string                `dynamodbav:"id"`
	SequenceNumber string                `dynamodbav:"sequence_number"`
	CreatedAt      string                `dynamodbav:"created_at"`
	SellerID       string                `dynamodbav:"seller_id"`
	SellerName     string                `dynamodbav:"seller_name"`
	Client         clientItem            `dynamodbav:"client"`
	Description    string                `dynamodbav:"description"`
	Amount         attributevalue.Number `dynamodbav:"amount"`
	Status         string                `dynamodbav:"status"`
}

// QuoteDynamoRepository persists quotes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI seller_id-created_at-index: PK seller_id (string), SK created_at (string)
type QuoteDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb database.DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if err := validateQuote(q); err != nil {
		return entities.Quote{}, err
	}
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	return decodeQuote(out.Item)
}

// List scans the whole table, applying the filter server side. Results are
// ordered newest first.
func (r *QuoteDynamoRepository) List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	in := &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	}
	if cond, ok := quoteFilterCondition(filter); ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, fmt.Errorf("build quote filter: %w", err)
		}
		in.FilterExpression = expr.Filter()
		in.ExpressionAttributeNames = expr.Names()
		in.ExpressionAttributeValues = expr.Values()
	}

	quotes := make([]entities.Quote, 0)
	p := dynamodb.NewScanPaginator(r.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			q, err := decodeQuote(item)
			if err != nil {
				return nil, err
			}
			quotes = append(quotes, q)
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].CreatedAt.Equal(quotes[j].CreatedAt) {
			return quotes[i].SequenceNumber > quotes[j].SequenceNumber
		}
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

// UpdateStatus rewrites the status attribute only.
func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, func() (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status"
		vals := map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		}
		names := map[string]string{
			"#status": "status",
		}
		return expr, vals, names
	})
}

// CountBySellerBetween counts the seller's quotes with from <= created_at <= to
// through the seller/created_at index.
func (r *QuoteDynamoRepository) CountBySellerBetween(ctx context.Context, sellerID string, from, to time.Time) (int64, error) {
	keyCond := expression.Key("seller_id").Equal(expression.Value(sellerID)).
		And(expression.Key("created_at").Between(
			expression.Value(formatTimestamp(from)),
			expression.Value(formatTimestamp(to)),
		))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return 0, fmt.Errorf("build count condition: %w", err)
	}

	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(QuoteSellerCreatedIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	})
	var total int64
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int64(page.Count)
	}
	return total, nil
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	updateExpr, values, names := build()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	return decodeQuote(out.Attributes)
}

func quoteFilterCondition(f entities.QuoteFilter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder
	if f.ClientName != "" {
		conds = append(conds, expression.Name("client.name").Equal(expression.Value(f.ClientName)))
	}
	if f.SellerID != "" {
		conds = append(conds, expression.Name("seller_id").Equal(expression.Value(f.SellerID)))
	}
	if f.AmountMin != nil {
		conds = append(conds, expression.Name("amount").GreaterThanEqual(expression.Value(attributevalue.Number(f.AmountMin.String()))))
	}
	if f.AmountMax != nil {
		conds = append(conds, expression.Name("amount").LessThanEqual(expression.Value(attributevalue.Number(f.AmountMax.String()))))
	}
	if f.CreatedFrom != nil {
		conds = append(conds, expression.Name("created_at").GreaterThanEqual(expression.Value(formatTimestamp(*f.CreatedFrom))))
	}
	if f.CreatedTo != nil {
		conds = append(conds, expression.Name("created_at").LessThanEqual(expression.Value(formatTimestamp(*f.CreatedTo))))
	}

	switch len(conds) {
	case 0:
		return expression.ConditionBuilder{}, false
	case 1:
		return conds[0], true
	default:
		return expression.And(conds[0], conds[1], conds[2:]...), true
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:             q.ID,
		SequenceNumber: q.SequenceNumber,
		CreatedAt:      formatTimestamp(q.CreatedAt),
		SellerID:       q.SellerID,
		SellerName:     q.SellerName,
		Client: clientItem{
			Name:  q.Client.Name,
			Email: q.Client.Email,
			Phone: q.Client.Phone,
		},
		Description: q.Description,
		Amount:      attributevalue.Number(q.Amount.String()),
		Status:      string(q.Status),
	}
}

func decodeQuote(av map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Quote{}, fmt.Errorf("%w: quote: %v", ErrMalformedDocument, err)
	}
	return fromQuoteItem(it)
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	malformed := func(reason string) (entities.Quote, error) {
		return entities.Quote{}, fmt.Errorf("%w: quote %q: %s", ErrMalformedDocument, it.ID, reason)
	}

	if it.ID == "" {
		return malformed("missing id")
	}
	status, ok := entities.ParseQuoteStatus(it.Status)
	if !ok {
		return malformed("unknown status " + it.Status)
	}
	amount, err := decimal.NewFromString(string(it.Amount))
	if err != nil {
		return malformed("amount is not a number")
	}
	createdAt, err := parseTimestamp(it.CreatedAt)
	if err != nil {
		return malformed("bad created_at")
	}

	q := entities.Quote{
		ID:             it.ID,
		SequenceNumber: it.SequenceNumber,
		CreatedAt:      createdAt,
		SellerID:       it.SellerID,
		SellerName:     it.SellerName,
		Client: entities.Client{
			Name:  it.Client.Name,
			Email: it.Client.Email,
			Phone: it.Client.Phone,
		},
		Description: it.Description,
		Amount:      amount,
		Status:      status,
	}
	if err := validateQuote(q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

// validateQuote wraps the entity check so stored documents and writes share
// one error. A quote without a seller id is still accepted; see the seller
// key fallback of the dashboard aggregation.
func validateQuote(q entities.Quote) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return nil
}
