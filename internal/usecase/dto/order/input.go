package orderdto

type CreateOrderInput struct {
	UserID 			string
	TotalAmount 	int64
	PaymentMethod 	string
}

type UpdateOrderStatusInput struct {
	OrderID 	string
	Status 		string
	// ActorID is empty for admin calls; otherwise the order must belong to it.
	ActorID 	string
}
