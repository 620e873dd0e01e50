package types

type LedgerEventType string

const (
	EventStaked         LedgerEventType = "STAKED"
	EventUnstaked       LedgerEventType = "UNSTAKED"
	EventYieldWithdrawn LedgerEventType = "YIELD_WITHDRAWN"
)

func (t LedgerEventType) String() string {
	return string(t)
}

// LedgerEvent is published after a ledger mutation has been committed.
// Amounts are decimal strings.
type LedgerEvent struct {
	EventType      LedgerEventType `json:"event_type"`
	Participant    string          `json:"participant"`
	Amount         string          `json:"amount"`
	StakingBalance string          `json:"staking_balance"`
	StartTime      uint64          `json:"start_time"`
	Timestamp      uint64          `json:"timestamp"`
}
