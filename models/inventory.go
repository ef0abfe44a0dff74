package models

// InventoryEntry is one (user, elixir) stack. An entry is deleted rather than
// stored at quantity zero, so absence and zero are the same state.
type InventoryEntry struct {
	UserID   string `dynamodbav:"userId" json:"userId"`
	ElixirID int    `dynamodbav:"elixirId" json:"elixirId"`
	Quantity int    `dynamodbav:"quantity" json:"quantity"`
	Active   bool   `dynamodbav:"active" json:"active"`
}

// InventoryItem is an inventory entry joined with its catalog definition,
// the shape the client sees.
type InventoryItem struct {
	ElixirID    int          `json:"elixirId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Family      ElixirFamily `json:"family"`
	Tier        int          `json:"tier"`
	Quantity    int          `json:"quantity"`
	Active      bool         `json:"active"`
}

// InventoryTable is the DynamoDB table name for user inventories
const InventoryTable = "UserInventories"
