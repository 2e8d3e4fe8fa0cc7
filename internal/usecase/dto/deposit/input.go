package depositdto

type RequestDepositInput struct {
	UserID 	string
	Amount 	int64
	Bank 	string
	Method 	string
	Note 	string
}
