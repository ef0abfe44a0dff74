package services

import (
	"context"
	"sort"
	"time"

	"github.com/cglawson/Senior-Project-API/models"
	"github.com/cglawson/Senior-Project-API/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Nearby search bounds, matching the original FindNearest contract.
const (
	nearbyLimit    = 50
	nearbyMaxMiles = 1000.0
)

// LocationService tracks opt-in user positions. Users who turn location off
// in the client simply have their row deleted.
type LocationService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// UpdateLocation upserts the caller's position.
func (ls *LocationService) UpdateLocation(ctx context.Context, userID string, latitude, longitude float64) error {
	location := models.UserLocation{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return ls.Dynamo.PutItem(ctx, models.LocationsTable, location)
}

// DeleteLocation removes the caller's position.
func (ls *LocationService) DeleteLocation(ctx context.Context, userID string) error {
	return ls.Dynamo.DeleteItem(ctx, models.LocationsTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
}

// NearbyUsers returns up to 50 users within 1000 miles of the given point,
// closest first, excluding the caller.
func (ls *LocationService) NearbyUsers(ctx context.Context, userID string, latitude, longitude float64) ([]models.NearbyUser, error) {
	var locations []models.UserLocation
	err := ls.Dynamo.ScanWithFilter(ctx, models.LocationsTable, func(item map[string]types.AttributeValue) bool {
		if id, ok := item["userId"].(*types.AttributeValueMemberS); ok {
			return id.Value != userID
		}
		return false
	}, &locations)
	if err != nil {
		return nil, err
	}

	var nearby []models.NearbyUser
	for _, loc := range locations {
		distance := utils.DistanceMiles(latitude, longitude, loc.Latitude, loc.Longitude)
		if distance > nearbyMaxMiles {
			continue
		}
		user, err := ls.Users.GetUser(ctx, loc.UserID)
		if err != nil {
			// A location row without a user is stale; skip it.
			continue
		}
		nearby = append(nearby, models.NearbyUser{
			UserID:        user.UserID,
			Username:      user.Username,
			DistanceMiles: distance,
			SentScore:     user.SentScore,
			ReceivedScore: user.ReceivedScore,
		})
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceMiles < nearby[j].DistanceMiles })
	if len(nearby) > nearbyLimit {
		nearby = nearby[:nearbyLimit]
	}
	return nearby, nil
}
