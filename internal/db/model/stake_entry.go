package model

import (
	sdkmath "cosmossdk.io/math"
)

const StakeEntryCollection = "stake_entry"

// StakeEntryDocument stores balances as decimal strings so values above
// the int64 range survive the round trip.
type StakeEntryDocument struct {
	Participant    string `bson:"_id"`
	StakingBalance string `bson:"staking_balance"`
	// IsStaking mirrors StakingBalance > 0 and is only kept for querying.
	IsStaking bool   `bson:"is_staking"`
	StartTime uint64 `bson:"start_time"`
}

func NewStakeEntryDocument(participant string, balance sdkmath.Uint, startTime uint64) *StakeEntryDocument {
	return &StakeEntryDocument{
		Participant:    participant,
		StakingBalance: balance.String(),
		IsStaking:      !balance.IsZero(),
		StartTime:      startTime,
	}
}

func (d *StakeEntryDocument) Balance() (sdkmath.Uint, error) {
	return sdkmath.ParseUint(d.StakingBalance)
}
