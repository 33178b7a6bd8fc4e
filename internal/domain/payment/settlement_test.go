package payment

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testWallet(actual, pending string) *wallet.Wallet {
	return &wallet.Wallet{
		TotalBalance:     decimal.Zero,
		ActualBalance:    dec(actual),
		PendingDeduction: dec(pending),
		IsActive:         true,
	}
}

func assertDec(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s: expected %s, got %s", name, want, got)
	}
}

func TestSettleCardCreditsNet(t *testing.T) {
	w := testWallet("0", "0")

	res := settle(w, dec("100.00"), MethodCard, DefaultFeeRate)

	assertDec(t, "admin fee", res.AdminFee, dec("5.00"))
	assertDec(t, "net", res.Net, dec("95.00"))
	assertDec(t, "total_balance", w.TotalBalance, dec("100.00"))
	assertDec(t, "actual_balance", w.ActualBalance, dec("95.00"))
	assertDec(t, "pending_deduction", w.PendingDeduction, dec("0"))
}

func TestSettleUPICreditsNet(t *testing.T) {
	w := testWallet("10.00", "0")

	settle(w, dec("200.00"), MethodUPI, DefaultFeeRate)

	assertDec(t, "actual_balance", w.ActualBalance, dec("200.00"))
	assertDec(t, "total_balance", w.TotalBalance, dec("200.00"))
}

func TestSettleCashDebitsFee(t *testing.T) {
	w := testWallet("50.00", "0")

	res := settle(w, dec("100.00"), MethodCash, DefaultFeeRate)

	assertDec(t, "admin fee", res.AdminFee, dec("5.00"))
	assertDec(t, "actual_balance", w.ActualBalance, dec("45.00"))
	assertDec(t, "total_balance", w.TotalBalance, dec("100.00"))
	assertDec(t, "pending_deduction", w.PendingDeduction, dec("0"))
}

func TestSettleCashDefersFeeWhenBalanceShort(t *testing.T) {
	w := testWallet("3.00", "0")

	settle(w, dec("100.00"), MethodCash, DefaultFeeRate)

	assertDec(t, "actual_balance", w.ActualBalance, dec("3.00"))
	assertDec(t, "pending_deduction", w.PendingDeduction, dec("5.00"))
	assertDec(t, "total_balance", w.TotalBalance, dec("100.00"))
}

func TestSettleDrainsDeferredFeeAfterCredit(t *testing.T) {
	// A prior CASH ride left a deferred fee; a CARD ride makes the
	// balance whole again and the drain collects it.
	w := testWallet("0", "5.00")

	settle(w, dec("100.00"), MethodCard, DefaultFeeRate)

	assertDec(t, "actual_balance", w.ActualBalance, dec("90.00"))
	assertDec(t, "pending_deduction", w.PendingDeduction, dec("0"))
}

func TestSettleFeeTruncatesTowardZero(t *testing.T) {
	w := testWallet("0", "0")

	// 33.33 * 0.05 = 1.6665 -> 1.66, never 1.67
	res := settle(w, dec("33.33"), MethodCard, DefaultFeeRate)

	assertDec(t, "admin fee", res.AdminFee, dec("1.66"))
	assertDec(t, "net", res.Net, dec("31.67"))
}

func TestSettleAmountTruncated(t *testing.T) {
	w := testWallet("0", "0")

	res := settle(w, dec("10.999"), MethodCard, DefaultFeeRate)

	assertDec(t, "amount", res.Amount, dec("10.99"))
	assertDec(t, "total_balance", w.TotalBalance, dec("10.99"))
}

func TestQuantizeNeverRounds(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1.009", "1.00"},
		{"1.999", "1.99"},
		{"0.005", "0.00"},
		{"2.50", "2.50"},
	}
	for _, c := range cases {
		if got := quantize(dec(c.in)); !got.Equal(dec(c.want)) {
			t.Fatalf("quantize(%s): expected %s, got %s", c.in, c.want, got)
		}
	}
}
