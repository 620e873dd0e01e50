package model

const YieldWithdrawalCollection = "yield_withdrawal"

type YieldWithdrawalDocument struct {
	ID          string `bson:"_id"`
	Participant string `bson:"participant"`
	Amount      string `bson:"amount"`
	ElapsedTime uint64 `bson:"elapsed_time"`
	WithdrawnAt uint64 `bson:"withdrawn_at"`
}
