package repository

import (
	"context"
	"errors"
	"fmt"

	"presupuestos_service/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableAdminAPI is the subset of the DynamoDB client needed to provision tables.
type TableAdminAPI interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

var _ TableAdminAPI = (*dynamodb.Client)(nil)

// TableDefinitions returns the CreateTable inputs for every table the
// service reads or writes, in creation order.
func TableDefinitions(cfg *config.Config) []*dynamodb.CreateTableInput {
	hashKey := func(table, attr string) *dynamodb.CreateTableInput {
		return &dynamodb.CreateTableInput{
			TableName:   aws.String(table),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash},
			},
		}
	}

	quotes := hashKey(cfg.QuotesTable, "id")
	quotes.AttributeDefinitions = append(quotes.AttributeDefinitions,
		types.AttributeDefinition{AttributeName: aws.String("seller_id"), AttributeType: types.ScalarAttributeTypeS},
		types.AttributeDefinition{AttributeName: aws.String("created_at"), AttributeType: types.ScalarAttributeTypeS},
	)
	quotes.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{
		{
			IndexName: aws.String(QuoteSellerCreatedIndex),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("seller_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("created_at"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeKeysOnly},
		},
	}

	return []*dynamodb.CreateTableInput{
		quotes,
		hashKey(cfg.SellersTable, "id"),
		hashKey(cfg.ProfilesTable, "id"),
		hashKey(cfg.CredentialsTable, "email"),
		hashKey(cfg.CountersTable, "id"),
	}
}

// CreateTables creates every table, skipping the ones that already exist.
// It returns the names of the tables it created.
func CreateTables(ctx context.Context, api TableAdminAPI, cfg *config.Config) ([]string, error) {
	var created []string
	for _, in := range TableDefinitions(cfg) {
		_, err := api.CreateTable(ctx, in)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return created, fmt.Errorf("create table %s: %w", aws.ToString(in.TableName), err)
		}
		created = append(created, aws.ToString(in.TableName))
	}
	return created, nil
}
