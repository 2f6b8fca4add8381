package entities

type MyOrders struct {
	Active []Order
	Closed []Order
}

// BidWithOrder ставка вместе с заявкой, на которую она подана
type BidWithOrder struct {
	Bid
	Order Order
}

type MyBids struct {
	Pending   []BidWithOrder
	Completed []BidWithOrder
}

type Stats struct {
	ActiveOrders    int
	CompletedOrders int
	PendingBids     int
	AcceptedBids    int
}
