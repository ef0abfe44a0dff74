package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrInventoryEntryNotFound = errors.New("inventory entry not found")

// InventoryService handles the inventory CRUD surface: listing, the active
// flag, and grants. Consumption during a boop goes through the boop
// transaction instead, so it can be conditioned on the quantity read.
type InventoryService struct {
	Dynamo *DynamoService
}

// GetInventory lists the user's elixirs joined with the catalog, ascending
// by elixir id.
func (is *InventoryService) GetInventory(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	items, err := is.Dynamo.QueryItems(ctx, models.InventoryTable,
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

	var inventory []models.InventoryItem
	for _, entry := range entries {
		def, known := LookupElixir(entry.ElixirID)
		if !known {
			// Uncataloged ids stay out of the listing; the boop engine
			// deals with them.
			continue
		}
		inventory = append(inventory, models.InventoryItem{
			ElixirID:    def.ID,
			Name:        def.Name,
			Description: def.Description,
			Family:      def.Family,
			Tier:        def.Tier,
			Quantity:    entry.Quantity,
			Active:      entry.Active,
		})
	}

	sort.Slice(inventory, func(i, j int) bool { return inventory[i].ElixirID < inventory[j].ElixirID })
	return inventory, nil
}

// SetActive toggles whether an owned elixir participates in boops.
func (is *InventoryService) SetActive(ctx context.Context, userID string, elixirID int, active bool) error {
	_, err := is.Dynamo.UpdateItem(ctx, models.InventoryTable,
		"SET active = :active",
		"attribute_exists(userId)",
		map[string]types.AttributeValue{
			"userId":   &types.AttributeValueMemberS{Value: userID},
			"elixirId": &types.AttributeValueMemberN{Value: strconv.Itoa(elixirID)},
		},
		map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: active},
		}, nil)
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrInventoryEntryNotFound
		}
		return err
	}
	return nil
}

// Grant adds quantity of an elixir to the user's stack, creating the entry
// inactive when it does not exist yet. ADD is atomic server-side.
func (is *InventoryService) Grant(ctx context.Context, userID string, elixirID, quantity int) error {
	_, err := is.Dynamo.UpdateItem(ctx, models.InventoryTable,
		"SET active = if_not_exists(active, :inactive) ADD quantity :q",
		"",
		map[string]types.AttributeValue{
			"userId":   &types.AttributeValueMemberS{Value: userID},
			"elixirId": &types.AttributeValueMemberN{Value: strconv.Itoa(elixirID)},
		},
		map[string]types.AttributeValue{
			":q":        &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to grant elixir %d to %s: %w", elixirID, userID, err)
	}
	return nil
}
