package types

// StakingState is derived from a stake entry's balance and never stored on its own.
type StakingState string

const (
	StateNotStaking StakingState = "NOT_STAKING"
	StateStaking    StakingState = "STAKING"
)

func (s StakingState) String() string {
	return string(s)
}
