package domain

type Passenger struct {
	ID             int64
	Name           string
	PassportNumber string
	NationalID     string
	Nationality    string
	Wallet         Cents
	Deleted        bool
}
