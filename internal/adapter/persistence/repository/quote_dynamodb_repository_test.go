package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// fakeDynamo records the inputs it receives and replays canned outputs.
type fakeDynamo struct {
	database.DynamoAPI

	put      *dynamodb.PutItemInput
	get      *dynamodb.GetItemInput
	update   *dynamodb.UpdateItemInput
	scans    []*dynamodb.ScanInput
	query    *dynamodb.QueryInput
	transact *dynamodb.TransactWriteItemsInput

	getOut    *dynamodb.GetItemOutput
	updateOut *dynamodb.UpdateItemOutput
	scanPages []*dynamodb.ScanOutput
	queryOut  *dynamodb.QueryOutput
	err       error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.err != nil {
		return nil, f.err
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.err != nil {
		return nil, f.err
	}
	page := f.scanPages[len(f.scans)-1]
	return page, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.query = in
	if f.err != nil {
		return nil, f.err
	}
	return f.queryOut, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transact = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func sampleQuote() entities.Quote {
	return entities.Quote{
		ID:             "q-1",
		SequenceNumber: "1506250201",
		CreatedAt:      time.Date(2025, 6, 15, 13, 4, 5, 0, time.UTC),
		SellerID:       "02",
		SellerName:     "Ana",
		Client:         entities.Client{Name: "ACME", Email: "acme@example.com", Phone: "555"},
		Description:    "Service",
		Amount:         decimal.RequireFromString("150.50"),
		Status:         entities.QuoteStatusPending,
	}
}

func marshalQuote(t *testing.T, q entities.Quote) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestQuoteDynamoRepository_Create(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewQuoteDynamoRepository(fake, "presupuestos")

	q := sampleQuote()
	if _, err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(fake.put.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("unexpected condition: %s", aws.ToString(fake.put.ConditionExpression))
	}
	amount, ok := fake.put.Item["amount"].(*types.AttributeValueMemberN)
	if !ok || amount.Value != "150.5" {
		t.Fatalf("expected numeric amount, got %#v", fake.put.Item["amount"])
	}
	created, ok := fake.put.Item["created_at"].(*types.AttributeValueMemberS)
	if !ok || created.Value != "2025-06-15T13:04:05.000Z" {
		t.Fatalf("unexpected created_at: %#v", fake.put.Item["created_at"])
	}

	t.Run("rejects negative amount before writing", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")
		bad := sampleQuote()
		bad.Amount = decimal.NewFromInt(-1)
		_, err := repo.Create(context.Background(), bad)
		if !errors.Is(err, ErrMalformedDocument) || !errors.Is(err, entities.ErrInvalidQuote) {
			t.Fatalf("expected ErrMalformedDocument wrapping ErrInvalidQuote, got %v", err)
		}
		if fake.put != nil {
			t.Fatalf("store should not be touched")
		}
	})
}

func TestQuoteDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing item returns empty quote", func(t *testing.T) {
		repo := NewQuoteDynamoRepository(&fakeDynamo{}, "presupuestos")
		q, err := repo.GetByID(context.Background(), "nope")
		if err != nil || q.ID != "" {
			t.Fatalf("expected empty quote, got %+v %v", q, err)
		}
	})

	t.Run("decodes legacy status", func(t *testing.T) {
		item := marshalQuote(t, sampleQuote())
		item["status"] = &types.AttributeValueMemberS{Value: "aprobado"}
		repo := NewQuoteDynamoRepository(&fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}}, "presupuestos")

		q, err := repo.GetByID(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusApproved || !q.Amount.Equal(decimal.RequireFromString("150.50")) {
			t.Fatalf("unexpected quote: %+v", q)
		}
		if !q.CreatedAt.Equal(sampleQuote().CreatedAt) {
			t.Fatalf("unexpected created_at: %v", q.CreatedAt)
		}
	})

	t.Run("malformed status fails the read", func(t *testing.T) {
		item := marshalQuote(t, sampleQuote())
		item["status"] = &types.AttributeValueMemberS{Value: "archived"}
		repo := NewQuoteDynamoRepository(&fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}}, "presupuestos")

		if _, err := repo.GetByID(context.Background(), "q-1"); !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("string amount fails the read", func(t *testing.T) {
		item := marshalQuote(t, sampleQuote())
		item["amount"] = &types.AttributeValueMemberS{Value: "cien"}
		repo := NewQuoteDynamoRepository(&fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}}, "presupuestos")

		if _, err := repo.GetByID(context.Background(), "q-1"); !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})
}

func TestQuoteDynamoRepository_List(t *testing.T) {
	older := sampleQuote()
	newer := sampleQuote()
	newer.ID = "q-2"
	newer.SequenceNumber = "1506250202"
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)

	t.Run("scans every page and sorts newest first", func(t *testing.T) {
		fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
			{
				Items:            []map[string]types.AttributeValue{marshalQuote(t, older)},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "q-1"}},
			},
			{Items: []map[string]types.AttributeValue{marshalQuote(t, newer)}},
		}}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")

		quotes, err := repo.List(context.Background(), entities.QuoteFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fake.scans) != 2 {
			t.Fatalf("expected 2 scan pages, got %d", len(fake.scans))
		}
		if fake.scans[0].FilterExpression != nil {
			t.Fatalf("empty filter should not produce an expression")
		}
		if !aws.ToBool(fake.scans[0].ConsistentRead) {
			t.Fatalf("expected consistent read")
		}
		if len(quotes) != 2 || quotes[0].ID != "q-2" || quotes[1].ID != "q-1" {
			t.Fatalf("unexpected order: %+v", quotes)
		}
	})

	t.Run("builds ANDed filter", func(t *testing.T) {
		fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{{}}}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")
		lo := decimal.NewFromInt(100)
		hi := decimal.NewFromInt(500)

		quotes, err := repo.List(context.Background(), entities.QuoteFilter{
			ClientName: "ACME",
			AmountMin:  &lo,
			AmountMax:  &hi,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quotes == nil || len(quotes) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", quotes)
		}
		filter := aws.ToString(fake.scans[0].FilterExpression)
		if strings.Count(filter, "AND") != 2 {
			t.Fatalf("expected three ANDed conditions, got %q", filter)
		}
		var sawNumber bool
		for _, v := range fake.scans[0].ExpressionAttributeValues {
			if n, ok := v.(*types.AttributeValueMemberN); ok && (n.Value == "100" || n.Value == "500") {
				sawNumber = true
			}
		}
		if !sawNumber {
			t.Fatalf("amount bounds should be numeric: %#v", fake.scans[0].ExpressionAttributeValues)
		}
	})

	t.Run("malformed item fails the list", func(t *testing.T) {
		bad := marshalQuote(t, older)
		delete(bad, "id")
		fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
			{Items: []map[string]types.AttributeValue{marshalQuote(t, newer), bad}},
		}}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")

		if _, err := repo.List(context.Background(), entities.QuoteFilter{}); !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})
}

func TestQuoteDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("sets status only", func(t *testing.T) {
		updated := sampleQuote()
		updated.Status = entities.QuoteStatusRejected
		fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, updated)}}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")

		q, err := repo.UpdateStatus(context.Background(), "q-1", entities.QuoteStatusRejected)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusRejected {
			t.Fatalf("unexpected status %s", q.Status)
		}
		if aws.ToString(fake.update.UpdateExpression) != "SET #status = :status" {
			t.Fatalf("unexpected update: %s", aws.ToString(fake.update.UpdateExpression))
		}
		if aws.ToString(fake.update.ConditionExpression) != "attribute_exists(#id)" {
			t.Fatalf("unexpected condition: %s", aws.ToString(fake.update.ConditionExpression))
		}
	})

	t.Run("unknown id returns empty quote", func(t *testing.T) {
		fake := &fakeDynamo{err: &types.ConditionalCheckFailedException{}}
		repo := NewQuoteDynamoRepository(fake, "presupuestos")

		q, err := repo.UpdateStatus(context.Background(), "missing", entities.QuoteStatusApproved)
		if err != nil || q.ID != "" {
			t.Fatalf("expected empty quote, got %+v %v", q, err)
		}
	})
}

func TestQuoteDynamoRepository_CountBySellerBetween(t *testing.T) {
	fake := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Count: 3}}
	repo := NewQuoteDynamoRepository(fake, "presupuestos")
	from, to := entities.DayRange(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))

	n, err := repo.CountBySellerBetween(context.Background(), "02", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	if aws.ToString(fake.query.IndexName) != QuoteSellerCreatedIndex || fake.query.Select != types.SelectCount {
		t.Fatalf("unexpected query: %+v", fake.query)
	}
	var bounds []string
	for _, v := range fake.query.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value != "02" {
			bounds = append(bounds, s.Value)
		}
	}
	if len(bounds) != 2 {
		t.Fatalf("expected two range bounds, got %v", bounds)
	}
	for _, b := range bounds {
		if b != "2025-06-15T00:00:00.000Z" && b != "2025-06-15T23:59:59.999Z" {
			t.Fatalf("unexpected bound %q", b)
		}
	}
}

func TestQuoteCounterDynamoRepository_Current(t *testing.T) {
	t.Run("missing counter is zero", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		n, err := repo.Current(context.Background(), "02", "2025-06-15")
		if err != nil || n != 0 {
			t.Fatalf("expected 0, got %d (%v)", n, err)
		}
		key := fake.get.Key["id"].(*types.AttributeValueMemberS)
		if key.Value != "02#2025-06-15" || !aws.ToBool(fake.get.ConsistentRead) {
			t.Fatalf("unexpected read: %+v", fake.get)
		}
	})

	t.Run("stored value", func(t *testing.T) {
		fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"id":         &types.AttributeValueMemberS{Value: "02#2025-06-15"},
			"last_value": &types.AttributeValueMemberN{Value: "2"},
		}}}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		n, err := repo.Current(context.Background(), "02", "2025-06-15")
		if err != nil || n != 2 {
			t.Fatalf("expected 2, got %d (%v)", n, err)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		repo := NewQuoteCounterDynamoRepository(&fakeDynamo{err: errors.New("ResourceNotFoundException")}, "contadores_presupuestos", "presupuestos")
		if _, err := repo.Current(context.Background(), "02", "2025-06-15"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestQuoteCounterDynamoRepository_CreateNumbered(t *testing.T) {
	t.Run("bumps the counter and puts the quote in one transaction", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		q := sampleQuote()
		q.SequenceNumber = "1506250203"

		got, err := repo.CreateNumbered(context.Background(), q, "2025-06-15", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.SequenceNumber != "1506250203" {
			t.Fatalf("unexpected quote: %+v", got)
		}
		items := fake.transact.TransactItems
		if len(items) != 2 || items[0].Update == nil || items[1].Put == nil {
			t.Fatalf("expected counter update then quote put, got %+v", items)
		}

		up := items[0].Update
		if aws.ToString(up.TableName) != "contadores_presupuestos" {
			t.Fatalf("unexpected counter table %q", aws.ToString(up.TableName))
		}
		if key := up.Key["id"].(*types.AttributeValueMemberS); key.Value != "02#2025-06-15" {
			t.Fatalf("unexpected key %q", key.Value)
		}
		if !strings.Contains(aws.ToString(up.ConditionExpression), " = ") {
			t.Fatalf("expected an equality condition, got %q", aws.ToString(up.ConditionExpression))
		}
		var prev, next bool
		for _, v := range up.ExpressionAttributeValues {
			if n, ok := v.(*types.AttributeValueMemberN); ok {
				prev = prev || n.Value == "2"
				next = next || n.Value == "3"
			}
		}
		if !prev || !next {
			t.Fatalf("expected previous 2 and next 3 in %+v", up.ExpressionAttributeValues)
		}

		put := items[1].Put
		if aws.ToString(put.TableName) != "presupuestos" || aws.ToString(put.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("unexpected quote put: %+v", put)
		}
		if seq := put.Item["sequence_number"].(*types.AttributeValueMemberS); seq.Value != "1506250203" {
			t.Fatalf("unexpected sequence number %q", seq.Value)
		}
	})

	t.Run("first ordinal requires a missing counter", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		if _, err := repo.CreateNumbered(context.Background(), sampleQuote(), "2025-06-15", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cond := aws.ToString(fake.transact.TransactItems[0].Update.ConditionExpression)
		if !strings.HasPrefix(cond, "attribute_not_exists") {
			t.Fatalf("expected attribute_not_exists, got %q", cond)
		}
	})

	t.Run("lost race is a counter conflict", func(t *testing.T) {
		fake := &fakeDynamo{err: &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}}}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		if _, err := repo.CreateNumbered(context.Background(), sampleQuote(), "2025-06-15", 1); !errors.Is(err, interfaces.ErrCounterConflict) {
			t.Fatalf("expected ErrCounterConflict, got %v", err)
		}
	})

	t.Run("duplicate quote id is not a counter conflict", func(t *testing.T) {
		fake := &fakeDynamo{err: &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		}}}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		_, err := repo.CreateNumbered(context.Background(), sampleQuote(), "2025-06-15", 1)
		if err == nil || errors.Is(err, interfaces.ErrCounterConflict) {
			t.Fatalf("expected the raw cancellation, got %v", err)
		}
	})

	t.Run("invalid quote is rejected before writing", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewQuoteCounterDynamoRepository(fake, "contadores_presupuestos", "presupuestos")
		bad := sampleQuote()
		bad.CreatedAt = time.Time{}
		if _, err := repo.CreateNumbered(context.Background(), bad, "2025-06-15", 0); !errors.Is(err, entities.ErrInvalidQuote) {
			t.Fatalf("expected ErrInvalidQuote, got %v", err)
		}
		if fake.transact != nil {
			t.Fatalf("store should not be touched")
		}
	})
}

func TestProfileDynamoRepository_GetByUID(t *testing.T) {
	t.Run("legacy role spelling", func(t *testing.T) {
		fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"id":        &types.AttributeValueMemberS{Value: "uid-1"},
			"email":     &types.AttributeValueMemberS{Value: "ana@example.com"},
			"name":      &types.AttributeValueMemberS{Value: "Ana"},
			"role":      &types.AttributeValueMemberS{Value: "vendedor"},
			"seller_id": &types.AttributeValueMemberS{Value: "02"},
		}}}
		repo := NewProfileDynamoRepository(fake, "usuarios")

		p, err := repo.GetByUID(context.Background(), "uid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Role != entities.RoleSeller || p.SellerID != "02" {
			t.Fatalf("unexpected profile: %+v", p)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		repo := NewProfileDynamoRepository(&fakeDynamo{}, "usuarios")
		p, err := repo.GetByUID(context.Background(), "uid-9")
		if err != nil || p.UID != "" {
			t.Fatalf("expected empty profile, got %+v %v", p, err)
		}
	})
}

func TestSellerDynamoRepository_List(t *testing.T) {
	fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{{Items: []map[string]types.AttributeValue{
		{"id": &types.AttributeValueMemberS{Value: "b"}, "code": &types.AttributeValueMemberS{Value: "02"}, "name": &types.AttributeValueMemberS{Value: "Beto"}},
		{"id": &types.AttributeValueMemberS{Value: "a"}, "code": &types.AttributeValueMemberS{Value: "01"}, "name": &types.AttributeValueMemberS{Value: "Ana"}},
	}}}}
	repo := NewSellerDynamoRepository(fake, "vendedores")

	sellers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sellers) != 2 || sellers[0].Code != "01" || sellers[1].Code != "02" {
		t.Fatalf("unexpected sellers: %+v", sellers)
	}
}
