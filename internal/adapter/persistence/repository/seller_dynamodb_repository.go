package repository

import (
	"context"
	"fmt"
	"sort"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type sellerItem struct {
	ID    string `dynamodbav:"id"`
	Code  string `dynamodbav:"code"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

// SellerDynamoRepository reads the "vendedores" table (PK: id).
type SellerDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
}

var _ interfaces.ISellerRepository = (*SellerDynamoRepository)(nil)

func NewSellerDynamoRepository(ddb database.DynamoAPI, tableName string) *SellerDynamoRepository {
	return &SellerDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SellerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Seller, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Seller{}, err
	}
	if len(out.Item) == 0 {
		return entities.Seller{}, nil
	}
	return decodeSeller(out.Item)
}

// List returns every seller ordered by code.
func (r *SellerDynamoRepository) List(ctx context.Context) ([]entities.Seller, error) {
	sellers := make([]entities.Seller, 0)
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			s, err := decodeSeller(item)
			if err != nil {
				return nil, err
			}
			sellers = append(sellers, s)
		}
	}
	sort.Slice(sellers, func(i, j int) bool { return sellers[i].Code < sellers[j].Code })
	return sellers, nil
}

func decodeSeller(av map[string]types.AttributeValue) (entities.Seller, error) {
	var it sellerItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Seller{}, fmt.Errorf("%w: seller: %v", ErrMalformedDocument, err)
	}
	if it.ID == "" {
		return entities.Seller{}, fmt.Errorf("%w: seller: missing id", ErrMalformedDocument)
	}
	return entities.Seller{ID: it.ID, Code: it.Code, Name: it.Name, Email: it.Email}, nil
}

// Put is used by the seed command.
func (r *SellerDynamoRepository) Put(ctx context.Context, s entities.Seller) error {
	av, err := attributevalue.MarshalMap(sellerItem{ID: s.ID, Code: s.Code, Name: s.Name, Email: s.Email})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av})
	return err
}
