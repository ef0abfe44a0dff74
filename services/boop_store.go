package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoBoopStore is the production BoopStore. The boop commit is one
// TransactWriteItems call: the cooldown gate, the activity record, both score
// updates, the usage history and every inventory decrement all land together
// or not at all.
type DynamoBoopStore struct {
	Dynamo    *DynamoService
	Inventory *InventoryService
}

func (s *DynamoBoopStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *DynamoBoopStore) ActiveElixirs(ctx context.Context, userID string) ([]models.InventoryEntry, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.InventoryTable,
		"userId = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var entries []models.InventoryEntry
	if err := attributevalue.UnmarshalListOfMaps(items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}

	active := entries[:0]
	for _, e := range entries {
		if e.Active {
			active = append(active, e)
		}
	}
	return active, nil
}

func (s *DynamoBoopStore) LastBoopAt(ctx context.Context, pairID string) (time.Time, bool, error) {
	item, err := s.Dynamo.GetItem(ctx, models.CooldownsTable, map[string]types.AttributeValue{
		"pairId": &types.AttributeValueMemberS{Value: pairID},
	})
	if errors.Is(err, ErrItemNotFound) {
		// Pairs that booped before the cooldown table existed only have
		// activity rows; the latest one still gates them.
		return s.lastActivityAt(ctx, pairID)
	}
	if err != nil {
		return time.Time{}, false, err
	}

	var cooldown models.BoopCooldown
	if err := attributevalue.UnmarshalMap(item, &cooldown); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to unmarshal cooldown: %w", err)
	}

	last, err := time.Parse(time.RFC3339, cooldown.LastBoopAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed cooldown timestamp '%s': %w", cooldown.LastBoopAt, err)
	}
	return last, true, nil
}

// lastActivityAt reads the newest activity record for the pair.
func (s *DynamoBoopStore) lastActivityAt(ctx context.Context, pairID string) (time.Time, bool, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.ActivitiesTable,
		"pairId = :pid",
		map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: pairID},
		}, nil, 1, true)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(items) == 0 {
		return time.Time{}, false, nil
	}

	var activity models.ActivityRecord
	if err := attributevalue.UnmarshalMap(items[0], &activity); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to unmarshal activity record: %w", err)
	}
	last, err := time.Parse(time.RFC3339, activity.Timestamp)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed activity timestamp '%s': %w", activity.Timestamp, err)
	}
	return last, true, nil
}

func (s *DynamoBoopStore) CommitBoop(ctx context.Context, commit BoopCommit) error {
	items := make([]types.TransactWriteItem, 0, 4+len(commit.Usage)+len(commit.Consumed))

	// The cooldown item's condition is what actually enforces the window
	// under concurrency: two racing boops for the same ordered pair cannot
	// both satisfy it.
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(models.CooldownsTable),
			Key: map[string]types.AttributeValue{
				"pairId": &types.AttributeValueMemberS{Value: commit.Activity.PairID},
			},
			UpdateExpression:    aws.String("SET lastBoopAt = :now"),
			ConditionExpression: aws.String("attribute_not_exists(lastBoopAt) OR lastBoopAt <= :cutoff"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":now":    &types.AttributeValueMemberS{Value: commit.Activity.Timestamp},
				":cutoff": &types.AttributeValueMemberS{Value: commit.CooldownCutoff.UTC().Format(time.RFC3339)},
			},
		},
	})

	activityItem, err := attributevalue.MarshalMap(commit.Activity)
	if err != nil {
		return fmt.Errorf("failed to marshal activity record: %w", err)
	}
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(models.ActivitiesTable),
			Item:      activityItem,
		},
	})

	items = append(items,
		scoreUpdate(commit.Activity.InitiatorID, "sentScore", commit.Activity.InitiatorValue),
		scoreUpdate(commit.Activity.TargetID, "receivedScore", commit.Activity.TargetValue),
	)

	for _, record := range commit.Usage {
		usageItem, err := attributevalue.MarshalMap(record)
		if err != nil {
			return fmt.Errorf("failed to marshal usage record: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(models.ElixirUsageTable),
				Item:      usageItem,
			},
		})
	}

	for _, c := range commit.Consumed {
		items = append(items, consumeItem(c))
	}

	if err := s.Dynamo.TransactWriteItems(ctx, items); err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) && len(canceled.CancellationReasons) > 0 {
			reason := canceled.CancellationReasons[0]
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return ErrCooldownActive
			}
		}
		return fmt.Errorf("boop transaction failed: %w", err)
	}
	return nil
}

// scoreUpdate adds value to one of the user's cumulative counters. ADD is
// atomic server-side, and values may be negative.
func scoreUpdate(userID, attribute string, value int64) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(models.UsersTable),
			Key: map[string]types.AttributeValue{
				"userId": &types.AttributeValueMemberS{Value: userID},
			},
			UpdateExpression: aws.String("ADD #score :v"),
			ExpressionAttributeNames: map[string]string{
				"#score": attribute,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
			},
		},
	}
}

// consumeItem decrements one inventory stack, deleting the row rather than
// leaving it at zero. Both paths condition on the quantity read during the
// pipeline, so a concurrent consume cancels the transaction instead of
// double-spending.
func consumeItem(c ConsumedElixir) types.TransactWriteItem {
	key := map[string]types.AttributeValue{
		"userId":   &types.AttributeValueMemberS{Value: c.UserID},
		"elixirId": &types.AttributeValueMemberN{Value: strconv.Itoa(c.ElixirID)},
	}
	readQty := &types.AttributeValueMemberN{Value: strconv.Itoa(c.Quantity)}

	if c.Quantity <= 1 {
		return types.TransactWriteItem{
			Delete: &types.Delete{
				TableName:           aws.String(models.InventoryTable),
				Key:                 key,
				ConditionExpression: aws.String("quantity = :q"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":q": readQty,
				},
			},
		}
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(models.InventoryTable),
			Key:                 key,
			UpdateExpression:    aws.String("SET quantity = quantity - :one"),
			ConditionExpression: aws.String("quantity = :q"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one": &types.AttributeValueMemberN{Value: "1"},
				":q":   readQty,
			},
		},
	}
}

func (s *DynamoBoopStore) GrantElixir(ctx context.Context, userID string, elixirID, quantity int) error {
	return s.Inventory.Grant(ctx, userID, elixirID, quantity)
}
