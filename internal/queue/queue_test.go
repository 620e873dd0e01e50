package queue

import (
	"testing"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var publisher EventPublisher = NewNopPublisher()

	err := publisher.PushLedgerEvent(t.Context(), &types.LedgerEvent{EventType: types.EventStaked})
	assert.NoError(t, err)
	publisher.Shutdown()
}
