package models

// User is one registered identity. SentScore and ReceivedScore are the
// cumulative boop ledgers; they are only ever mutated additively by the boop
// engine and can go negative.
type User struct {
	UserID            string `dynamodbav:"userId" json:"userId"`
	Username          string `dynamodbav:"username" json:"username"`
	DeviceID          string `dynamodbav:"deviceId" json:"-"`
	APIKey            string `dynamodbav:"apiKey" json:"-"`
	SentScore         int64  `dynamodbav:"sentScore" json:"sentScore"`
	ReceivedScore     int64  `dynamodbav:"receivedScore" json:"receivedScore"`
	UsernameChangedAt string `dynamodbav:"usernameChangedAt" json:"-"`
	LastCheckedAt     string `dynamodbav:"lastCheckedAt" json:"lastCheckedAt"`
	PhotoKey          string `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"`
}

// UsersTable is the DynamoDB table name for users
const UsersTable = "Users"

// GSI names on the Users table
const (
	UsernameIndex = "username-index"
	APIKeyIndex   = "apiKey-index"
)
