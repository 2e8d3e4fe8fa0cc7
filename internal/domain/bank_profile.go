package domain

type BankProfile struct {
	ID 			string
	Code 		string
	Name 		string
	Bin 		string
	AccountNo 	string
	AccountName string
	Visible 	bool
}

// QRDescriptor is everything a client needs to render a VietQR transfer.
type QRDescriptor struct {
	BankCode 	string	`json:"bank_code"`
	BankName 	string	`json:"bank_name"`
	AccountNo 	string	`json:"account_no"`
	AccountName string	`json:"account_name"`
	Bin 		string	`json:"bin"`
	Amount 		int64	`json:"amount"`
	Memo 		string	`json:"memo"`
	ImageURL 	string	`json:"image_url"`
}
