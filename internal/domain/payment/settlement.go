package payment

import (
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
)

// DefaultFeeRate is the platform's cut of every fare.
var DefaultFeeRate = decimal.NewFromFloat(0.05)

// settlement is the outcome of applying a confirmed payment to a wallet.
type settlement struct {
	Amount   decimal.Decimal
	AdminFee decimal.Decimal
	Net      decimal.Decimal
}

// quantize truncates toward zero to 2 decimal places, never rounding.
// Truncation biases the fee in the platform's favour and keeps every
// balance expressible in whole paise.
func quantize(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}

// settle applies the fee-split rules for a confirmed payment to a locked
// wallet. TotalBalance records the gross fare regardless of method. For
// CARD/UPI the gateway already collected the fee, so the net amount is
// credited. For CASH the driver holds the full fare, so the platform
// recovers its fee from the existing balance, deferring it when the
// balance is short. The deferred-fee drain runs last to catch a prior
// CASH shortfall that is now recoverable.
func settle(w *wallet.Wallet, amount decimal.Decimal, method Method, feeRate decimal.Decimal) settlement {
	amount = quantize(amount)
	adminFee := quantize(amount.Mul(feeRate))
	net := amount.Sub(adminFee)

	w.TotalBalance = w.TotalBalance.Add(amount)

	if method == MethodCash {
		if w.ActualBalance.GreaterThanOrEqual(adminFee) {
			w.ActualBalance = w.ActualBalance.Sub(adminFee)
		} else {
			w.PendingDeduction = w.PendingDeduction.Add(adminFee)
		}
	} else {
		w.ActualBalance = w.ActualBalance.Add(net)
	}

	w.ApplyPendingDeduction()

	return settlement{Amount: amount, AdminFee: adminFee, Net: net}
}
