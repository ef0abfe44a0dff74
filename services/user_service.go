package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Usernames may change at most once per window.
const usernameChangeWindow = 14 * 24 * time.Hour

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameCooldown   = errors.New("username was changed too recently")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	Dynamo *DynamoService
}

// CreateUser registers a new user and issues their API key.
func (us *UserService) CreateUser(ctx context.Context, username, deviceID string) (*models.User, error) {
	taken, err := us.usernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := models.User{
		UserID:            uuid.NewString(),
		Username:          username,
		DeviceID:          deviceID,
		APIKey:            uuid.NewString(),
		UsernameChangedAt: now,
		LastCheckedAt:     now,
	}

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Registered user %s (%s)", username, user.UserID)
	return &user, nil
}

func (us *UserService) usernameExists(ctx context.Context, username string) (bool, error) {
	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UsernameIndex,
		"username = :name",
		map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: username},
		}, nil, 1)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// AuthenticateAPIKey resolves an API key to its user. Used by the auth
// middleware on every request.
func (us *UserService) AuthenticateAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.APIKeyIndex,
		"apiKey = :key",
		map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: apiKey},
		}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// RotateAPIKey issues a fresh API key when the caller proves they own the
// account by presenting the registered device id.
func (us *UserService) RotateAPIKey(ctx context.Context, username, deviceID string) (string, error) {
	user, err := us.getByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user.DeviceID != deviceID {
		return "", ErrInvalidCredentials
	}

	newKey := uuid.NewString()
	_, err = us.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET apiKey = :key", "",
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: user.UserID},
		},
		map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: newKey},
		}, nil)
	if err != nil {
		return "", err
	}
	return newKey, nil
}

func (us *UserService) getByUsername(ctx context.Context, username string) (*models.User, error) {
	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UsernameIndex,
		"username = :name",
		map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: username},
		}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a user by id.
func (us *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// UpdateUsername renames a user. Renames are limited to once every fourteen
// days; when the window has not elapsed the days remaining are returned along
// with ErrUsernameCooldown.
func (us *UserService) UpdateUsername(ctx context.Context, userID, newUsername, deviceID string) (*models.User, int, error) {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if user.DeviceID != deviceID {
		return nil, 0, ErrInvalidCredentials
	}

	changedAt, err := time.Parse(time.RFC3339, user.UsernameChangedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("malformed usernameChangedAt '%s': %w", user.UsernameChangedAt, err)
	}
	elapsed := time.Since(changedAt)
	if elapsed < usernameChangeWindow {
		remaining := int((usernameChangeWindow - elapsed).Hours()/24) + 1
		return nil, remaining, ErrUsernameCooldown
	}

	taken, err := us.usernameExists(ctx, newUsername)
	if err != nil {
		return nil, 0, err
	}
	if taken {
		return nil, 0, ErrUsernameTaken
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = us.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET username = :name, usernameChangedAt = :now", "",
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: newUsername},
			":now":  &types.AttributeValueMemberS{Value: now},
		}, nil)
	if err != nil {
		return nil, 0, err
	}

	user.Username = newUsername
	user.UsernameChangedAt = now
	return user, 0, nil
}

// SetPhotoKey records the S3 object key of the user's profile photo.
func (us *UserService) SetPhotoKey(ctx context.Context, userID, photoKey string) error {
	_, err := us.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET photoKey = :key", "",
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: photoKey},
		}, nil)
	return err
}

// SinceLastChecked returns every boop that landed on the caller since their
// last-checked marker, with the elixirs that fired in them, then bumps the
// marker.
func (us *UserService) SinceLastChecked(ctx context.Context, userID string) (*models.BoopHistoryView, error) {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	since := user.LastCheckedAt

	activityItems, err := us.Dynamo.QueryItemsWithIndex(ctx, models.ActivitiesTable, models.ActivityTargetIndex,
		"targetId = :uid AND #ts > :since",
		map[string]types.AttributeValue{
			":uid":   &types.AttributeValueMemberS{Value: userID},
			":since": &types.AttributeValueMemberS{Value: since},
		},
		map[string]string{"#ts": "timestamp"}, 0)
	if err != nil {
		return nil, err
	}
	var activities []models.ActivityRecord
	if err := attributevalue.UnmarshalListOfMaps(activityItems, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activities: %w", err)
	}

	// Usage sort keys start with the timestamp, so a string range works.
	usageItems, err := us.Dynamo.QueryItems(ctx, models.ElixirUsageTable,
		"targetId = :uid AND sortKey > :since",
		map[string]types.AttributeValue{
			":uid":   &types.AttributeValueMemberS{Value: userID},
			":since": &types.AttributeValueMemberS{Value: since},
		}, nil, 0)
	if err != nil {
		return nil, err
	}
	var usage []models.ElixirUsageRecord
	if err := attributevalue.UnmarshalListOfMaps(usageItems, &usage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage records: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = us.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET lastCheckedAt = :now", "",
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now},
		}, nil)
	if err != nil {
		return nil, err
	}

	return &models.BoopHistoryView{
		Since:      since,
		Activities: activities,
		Elixirs:    usage,
	}, nil
}
