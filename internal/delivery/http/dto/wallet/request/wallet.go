package request

type TopUpRequest struct {
	Amount 	int64 	`json:"amount"`
	Bank 	string 	`json:"bank"`
	Method 	string 	`json:"method"`
	Note 	string 	`json:"note"`
}

type CreateOrderRequest struct {
	TotalAmount 	int64 	`json:"total_amount"`
	PaymentMethod 	string 	`json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OverrideTransactionRequest struct {
	Status string `json:"status" binding:"required"`
}
