package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-account-api/internal/domain"
)

// SetupTokenRepo records password-setup tokens. PK: email.
// Expired records are reaped by the table's TTL on expires_at.
type SetupTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSetupTokenRepo(client *dynamodb.Client, tableName string) *SetupTokenRepo {
	return &SetupTokenRepo{client: client, tableName: tableName}
}

// Put stores the token, replacing any previous one for the same email.
func (r *SetupTokenRepo) Put(ctx context.Context, t *domain.SetupToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal setup token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}
