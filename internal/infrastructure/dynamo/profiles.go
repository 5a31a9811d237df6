package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-account-api/internal/domain"
)

// ProfileRepo provides keyed upsert/read/update of user profile documents.
type ProfileRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProfileRepo(client *dynamodb.Client, tableName string) *ProfileRepo {
	return &ProfileRepo{client: client, tableName: tableName}
}

// Upsert merges fields into the document keyed by accountID. updated_at is
// set on every call; created_at only when the document does not yet exist
// (if_not_exists). Returns the document as stored after the write.
func (r *ProfileRepo) Upsert(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	fields["updated_at"] = now
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return nil, err
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, err
	}
	ue.Values[":created"] = nowAV
	expr := ue.Expr + ", created_at = if_not_exists(created_at, :created)"

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("id", accountID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, err
	}
	return unmarshalProfile(out.Attributes)
}

func (r *ProfileRepo) Get(ctx context.Context, accountID string) (*domain.UserProfile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("id", accountID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("profile %s: %w", accountID, domain.ErrNotFound)
	}
	return unmarshalProfile(out.Item)
}

// Update merges fields but never creates: the condition requires the
// document to exist, and a miss performs no write.
func (r *ProfileRepo) Update(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error) {
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("id", accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("profile %s: %w", accountID, domain.ErrNotFound)
		}
		return nil, err
	}
	return unmarshalProfile(out.Attributes)
}

func unmarshalProfile(item map[string]types.AttributeValue) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
