package wallet_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
)

func TestApplyPendingDeductionDrains(t *testing.T) {
	w := &wallet.Wallet{
		ActualBalance:    decimal.NewFromInt(100),
		PendingDeduction: decimal.NewFromInt(30),
	}

	if !w.ApplyPendingDeduction() {
		t.Fatal("expected wallet to change")
	}
	if !w.ActualBalance.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected actual_balance 70, got %s", w.ActualBalance)
	}
	if !w.PendingDeduction.IsZero() {
		t.Fatalf("expected pending_deduction 0, got %s", w.PendingDeduction)
	}
}

func TestApplyPendingDeductionExactBalance(t *testing.T) {
	w := &wallet.Wallet{
		ActualBalance:    decimal.NewFromInt(30),
		PendingDeduction: decimal.NewFromInt(30),
	}

	if !w.ApplyPendingDeduction() {
		t.Fatal("expected wallet to change")
	}
	if !w.ActualBalance.IsZero() {
		t.Fatalf("expected actual_balance 0, got %s", w.ActualBalance)
	}
}

func TestApplyPendingDeductionNoOpWhenShort(t *testing.T) {
	w := &wallet.Wallet{
		ActualBalance:    decimal.NewFromInt(10),
		PendingDeduction: decimal.NewFromInt(30),
	}

	if w.ApplyPendingDeduction() {
		t.Fatal("expected no change when balance is short")
	}
	if !w.ActualBalance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected actual_balance untouched, got %s", w.ActualBalance)
	}
	if !w.PendingDeduction.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected pending_deduction untouched, got %s", w.PendingDeduction)
	}
}

func TestApplyPendingDeductionNoOpWhenZero(t *testing.T) {
	w := &wallet.Wallet{
		ActualBalance:    decimal.NewFromInt(50),
		PendingDeduction: decimal.Zero,
	}

	if w.ApplyPendingDeduction() {
		t.Fatal("expected no change when nothing is pending")
	}
}
