package services

import (
	"context"
	"testing"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamoAPI stubs the DynamoDB client behind the DynamoService seam.
// Unset hooks answer with empty outputs.
type fakeDynamoAPI struct {
	getItem func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query   func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
}

func (f *fakeDynamoAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem != nil {
		return f.getItem(in)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoAPI) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.query != nil {
		return f.query(in)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamoAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoAPI) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeDynamoAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamoAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoAPI) TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func TestLastBoopAtPrefersCooldownItem(t *testing.T) {
	stamp := "2026-08-28T12:00:00Z"
	cooldownItem, err := attributevalue.MarshalMap(models.BoopCooldown{
		PairID:     "alice#bob",
		LastBoopAt: stamp,
	})
	require.NoError(t, err)

	client := &fakeDynamoAPI{
		getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, models.CooldownsTable, *in.TableName)
			return &dynamodb.GetItemOutput{Item: cooldownItem}, nil
		},
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			t.Fatal("activity fallback must not run when the cooldown item exists")
			return nil, nil
		},
	}
	store := &DynamoBoopStore{Dynamo: &DynamoService{Client: client}}

	last, ok, err := store.LastBoopAt(context.Background(), "alice#bob")
	require.NoError(t, err)
	require.True(t, ok)
	want, _ := time.Parse(time.RFC3339, stamp)
	assert.True(t, last.Equal(want))
}

func TestLastBoopAtFallsBackToLatestActivity(t *testing.T) {
	stamp := "2026-08-28T12:00:00Z"
	activityItem, err := attributevalue.MarshalMap(models.ActivityRecord{
		PairID:      "alice#bob",
		Timestamp:   stamp,
		InitiatorID: "alice",
		TargetID:    "bob",
	})
	require.NoError(t, err)

	var queried *dynamodb.QueryInput
	client := &fakeDynamoAPI{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			queried = in
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{activityItem}}, nil
		},
	}
	store := &DynamoBoopStore{Dynamo: &DynamoService{Client: client}}

	last, ok, err := store.LastBoopAt(context.Background(), "alice#bob")
	require.NoError(t, err)
	require.True(t, ok)
	want, _ := time.Parse(time.RFC3339, stamp)
	assert.True(t, last.Equal(want))

	// Newest-first with a limit of one: only the latest activity matters.
	require.NotNil(t, queried)
	assert.Equal(t, models.ActivitiesTable, *queried.TableName)
	require.NotNil(t, queried.ScanIndexForward)
	assert.False(t, *queried.ScanIndexForward)
	require.NotNil(t, queried.Limit)
	assert.Equal(t, int32(1), *queried.Limit)
}

func TestLastBoopAtNeverBoopedPair(t *testing.T) {
	store := &DynamoBoopStore{Dynamo: &DynamoService{Client: &fakeDynamoAPI{}}}

	_, ok, err := store.LastBoopAt(context.Background(), "alice#bob")
	require.NoError(t, err)
	assert.False(t, ok)
}
