package marketplace

import (
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/mintbay/nft-marketplace/pkg/eth"
	"go.uber.org/zap"
)

// UpdateFee sets the protocol fee percent. Administrator only.
func (e *Engine) UpdateFee(caller string, percent uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if eth.Normalize(caller) != e.admin {
		return ErrUnauthorized
	}

	if percent > 100 {
		return ErrInvalidFee
	}

	e.feePercent = percent

	zap.L().With(zap.Uint("feePercent", percent)).Info("Marketplace: Fee updated")

	event.EmitEvent(event.FeeUpdatedEvent, event.FeeUpdated{FeePercent: percent})

	return nil
}

// UpdateFeeRecipient sets the address receiving the protocol fee.
// Administrator only; the null address is rejected.
func (e *Engine) UpdateFeeRecipient(caller string, recipient string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if eth.Normalize(caller) != e.admin {
		return ErrUnauthorized
	}

	if eth.IsZero(recipient) {
		return ErrInvalidRecipient
	}

	e.feeRecipient = eth.Normalize(recipient)

	zap.L().With(zap.String("feeRecipient", e.feeRecipient)).Info("Marketplace: Fee recipient updated")

	event.EmitEvent(event.FeeRecipientUpdatedEvent, event.FeeRecipientUpdated{FeeRecipient: e.feeRecipient})

	return nil
}

func (e *Engine) FeePercent() uint {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.feePercent
}

func (e *Engine) FeeRecipient() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.feeRecipient
}
