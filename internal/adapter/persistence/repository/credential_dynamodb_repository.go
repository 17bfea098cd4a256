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

type credentialItem struct {
	Email        string `dynamodbav:"email"`
	UID          string `dynamodbav:"uid"`
	PasswordHash string `dynamodbav:"password_hash"`
}

// CredentialDynamoRepository reads the "credenciales" table (PK: email).
type CredentialDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
}

var _ interfaces.ICredentialRepository = (*CredentialDynamoRepository)(nil)

func NewCredentialDynamoRepository(ddb database.DynamoAPI, tableName string) *CredentialDynamoRepository {
	return &CredentialDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CredentialDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Credential, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Credential{}, err
	}
	if len(out.Item) == 0 {
		return entities.Credential{}, nil
	}
	var it credentialItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Credential{}, fmt.Errorf("%w: credential: %v", ErrMalformedDocument, err)
	}
	return entities.Credential{Email: it.Email, UID: it.UID, PasswordHash: it.PasswordHash}, nil
}

func (r *CredentialDynamoRepository) Put(ctx context.Context, c entities.Credential) error {
	av, err := attributevalue.MarshalMap(credentialItem{Email: c.Email, UID: c.UID, PasswordHash: c.PasswordHash})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av})
	return err
}
