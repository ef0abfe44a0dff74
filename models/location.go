package models

// UserLocation is a user's last reported position. Users who disable location
// sharing simply have no row.
type UserLocation struct {
	UserID    string  `dynamodbav:"userId" json:"userId"`
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
	UpdatedAt string  `dynamodbav:"updatedAt" json:"updatedAt"`
}

// NearbyUser is one row of the nearby search result.
type NearbyUser struct {
	UserID        string  `json:"userId"`
	Username      string  `json:"username"`
	DistanceMiles float64 `json:"distanceMiles"`
	SentScore     int64   `json:"sentScore"`
	ReceivedScore int64   `json:"receivedScore"`
}

// LocationsTable is the DynamoDB table name for user locations
const LocationsTable = "UserLocations"
