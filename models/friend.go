package models

// Friend is one directional edge in the friend graph. A friendship exists
// when both directions do; a lone edge is a pending request.
type Friend struct {
	UserID    string `dynamodbav:"userId" json:"userId"`
	FriendID  string `dynamodbav:"friendId" json:"friendId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// FriendProfile is the shape friend listings return.
type FriendProfile struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	SentScore     int64  `json:"sentScore"`
	ReceivedScore int64  `json:"receivedScore"`
}

// FriendsTable is the DynamoDB table name for friend edges
const FriendsTable = "Friends"

// FriendIDIndex is the GSI keyed by friendId, used for incoming requests
const FriendIDIndex = "friendId-index"
