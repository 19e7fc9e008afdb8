package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrAssetNotFound))
	assert.Equal(t, KindValidation, KindOf(ErrMinDeposit))
	assert.Equal(t, KindConflict, KindOf(ErrAmountMismatch))
	assert.Equal(t, KindInsufficiency, KindOf(ErrLowWalletBalance))
	assert.Equal(t, KindAuth, KindOf(ErrUnauthorized))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("request failed: %w", ErrMinWithdraw)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "MinWithdraw", NameOf(err))
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "AlreadyExistsTransaction", NameOf(ErrAlreadyProcessed))
	assert.Equal(t, "InternalError", NameOf(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "available balance is too low", ErrLowWalletBalance.Error())
	assert.Equal(t, "NoMessage", New(KindValidation, "NoMessage", "").Error())
}
