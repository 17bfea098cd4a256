package repository

import (
	"context"
	"fmt"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type profileItem struct {
	UID      string `dynamodbav:"id"`
	Email    string `dynamodbav:"email,omitempty"`
	Name     string `dynamodbav:"name,omitempty"`
	Role     string `dynamodbav:"role,omitempty"`
	SellerID string `dynamodbav:"seller_id,omitempty"`
}

// ProfileDynamoRepository reads the "usuarios" table (PK: id = identity uid).
type ProfileDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
}

var _ interfaces.IProfileRepository = (*ProfileDynamoRepository)(nil)

func NewProfileDynamoRepository(ddb database.DynamoAPI, tableName string) *ProfileDynamoRepository {
	return &ProfileDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProfileDynamoRepository) GetByUID(ctx context.Context, uid string) (entities.Profile, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: uid},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Profile{}, err
	}
	if len(out.Item) == 0 {
		return entities.Profile{}, nil
	}

	var it profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Profile{}, fmt.Errorf("%w: profile: %v", ErrMalformedDocument, err)
	}
	return entities.Profile{
		UID:      it.UID,
		Email:    it.Email,
		Name:     it.Name,
		Role:     entities.ParseRole(it.Role),
		SellerID: it.SellerID,
	}, nil
}

func (r *ProfileDynamoRepository) Put(ctx context.Context, p entities.Profile) error {
	av, err := attributevalue.MarshalMap(profileItem{
		UID:      p.UID,
		Email:    p.Email,
		Name:     p.Name,
		Role:     string(p.Role),
		SellerID: p.SellerID,
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av})
	return err
}
