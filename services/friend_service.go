package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrFriendExists = errors.New("friend request already exists")

// FriendService manages the friend graph. Edges are directional; a
// friendship is the pair of opposite edges, a lone edge is a pending request.
type FriendService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// AddFriend records a directional friend request. Adding someone who already
// requested you completes the friendship implicitly.
func (fs *FriendService) AddFriend(ctx context.Context, userID, friendID string) error {
	if _, err := fs.Users.GetUser(ctx, friendID); err != nil {
		return err
	}

	exists, err := fs.edgeExists(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if exists {
		return ErrFriendExists
	}

	edge := models.Friend{
		UserID:    userID,
		FriendID:  friendID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return fs.Dynamo.PutItem(ctx, models.FriendsTable, edge)
}

// RemoveFriend deletes both directions so a broken friendship never decays
// into a stale one-way request.
func (fs *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	for _, pair := range [][2]string{{userID, friendID}, {friendID, userID}} {
		err := fs.Dynamo.DeleteItem(ctx, models.FriendsTable, map[string]types.AttributeValue{
			"userId":   &types.AttributeValueMemberS{Value: pair[0]},
			"friendId": &types.AttributeValueMemberS{Value: pair[1]},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetFriends lists mutual friendships with scores, sorted by username.
func (fs *FriendService) GetFriends(ctx context.Context, userID string) ([]models.FriendProfile, error) {
	return fs.listEdges(ctx, userID, true)
}

// GetPendingRequests lists users the caller has added who have not added
// them back.
func (fs *FriendService) GetPendingRequests(ctx context.Context, userID string) ([]models.FriendProfile, error) {
	return fs.listEdges(ctx, userID, false)
}

// GetFriendRequests lists users who added the caller and are still waiting
// on a reciprocal add.
func (fs *FriendService) GetFriendRequests(ctx context.Context, userID string) ([]models.FriendProfile, error) {
	items, err := fs.Dynamo.QueryItemsWithIndex(ctx, models.FriendsTable, models.FriendIDIndex,
		"friendId = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var edges []models.Friend
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend edges: %w", err)
	}

	var requests []models.FriendProfile
	for _, edge := range edges {
		reciprocated, err := fs.edgeExists(ctx, userID, edge.UserID)
		if err != nil {
			return nil, err
		}
		if reciprocated {
			continue
		}
		profile, err := fs.profileOf(ctx, edge.UserID)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *profile)
	}

	sortByUsername(requests)
	return requests, nil
}

// listEdges walks the caller's outgoing edges and keeps the mutual or the
// unreciprocated ones.
func (fs *FriendService) listEdges(ctx context.Context, userID string, mutual bool) ([]models.FriendProfile, error) {
	items, err := fs.Dynamo.QueryItems(ctx, models.FriendsTable,
		"userId = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var edges []models.Friend
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend edges: %w", err)
	}

	var profiles []models.FriendProfile
	for _, edge := range edges {
		reciprocated, err := fs.edgeExists(ctx, edge.FriendID, userID)
		if err != nil {
			return nil, err
		}
		if reciprocated != mutual {
			continue
		}
		profile, err := fs.profileOf(ctx, edge.FriendID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	sortByUsername(profiles)
	return profiles, nil
}

func (fs *FriendService) edgeExists(ctx context.Context, userID, friendID string) (bool, error) {
	_, err := fs.Dynamo.GetItem(ctx, models.FriendsTable, map[string]types.AttributeValue{
		"userId":   &types.AttributeValueMemberS{Value: userID},
		"friendId": &types.AttributeValueMemberS{Value: friendID},
	})
	if errors.Is(err, ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (fs *FriendService) profileOf(ctx context.Context, userID string) (*models.FriendProfile, error) {
	user, err := fs.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.FriendProfile{
		UserID:        user.UserID,
		Username:      user.Username,
		SentScore:     user.SentScore,
		ReceivedScore: user.ReceivedScore,
	}, nil
}

func sortByUsername(profiles []models.FriendProfile) {
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Username < profiles[j].Username })
}
