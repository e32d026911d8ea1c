package model

// Order is the only persisted entity. OrderID is the store key.
type Order struct {
	OrderID string `json:"orderId" dynamodbav:"orderId"`
	Item    string `json:"item" dynamodbav:"item"`
}
