package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		direction Direction
		from, to  Status
		want      bool
	}{
		{DirectionDeposit, StatusPending, StatusCredited, true},
		{DirectionDeposit, StatusPending, StatusRejected, true},
		{DirectionDeposit, StatusPending, StatusAccepted, false},
		{DirectionDeposit, StatusPending, StatusSent, false},
		{DirectionDeposit, StatusCredited, StatusRejected, false},
		// 超期作废的充值可被迟到的链上确认复活
		{DirectionDeposit, StatusRejected, StatusCredited, true},
		{DirectionDeposit, StatusRejected, StatusPending, false},

		{DirectionWithdraw, StatusPending, StatusAccepted, true},
		{DirectionWithdraw, StatusPending, StatusRejected, true},
		{DirectionWithdraw, StatusPending, StatusSent, false},
		{DirectionWithdraw, StatusPending, StatusFailed, false},
		{DirectionWithdraw, StatusPending, StatusCredited, false},
		{DirectionWithdraw, StatusAccepted, StatusSent, true},
		{DirectionWithdraw, StatusAccepted, StatusFailed, true},
		{DirectionWithdraw, StatusAccepted, StatusRejected, false},
		{DirectionWithdraw, StatusSent, StatusFailed, false},
		{DirectionWithdraw, StatusFailed, StatusAccepted, false},
		{DirectionWithdraw, StatusRejected, StatusAccepted, false},
	}

	for _, tc := range cases {
		got := CanTransition(tc.direction, tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s %s -> %s", tc.direction, tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusCredited.Terminal())
	assert.True(t, StatusSent.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusFailed.Terminal())
}
