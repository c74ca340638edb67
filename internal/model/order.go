package model

// User is the order's customer as projected by the orders API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Order is a delivered-but-unreviewed order returned by the review
// candidate query. The delivery-date filter is applied upstream; it is
// not re-checked here.
type Order struct {
	ID           string  `json:"id"`
	DeliveryDate string  `json:"delivery_date"`
	IsReviewed   bool    `json:"is_reviewed"`
	User         User    `json:"user"`
	Product      Product `json:"product"`
}
