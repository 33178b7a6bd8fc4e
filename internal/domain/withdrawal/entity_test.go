package withdrawal_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swiftride/swiftride-api/internal/domain/withdrawal"
)

func TestWithdrawalJSONContactInfoIsFlat(t *testing.T) {
	contact := "+91 98765 43210"
	wd := withdrawal.Withdrawal{ContactInfo: &contact}

	data, err := json.Marshal(wd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"contact_info":"+91 98765 43210"`) {
		t.Fatalf("expected flat contact_info string, got %s", data)
	}
}

func TestWithdrawalJSONOmitsEmptyContactInfo(t *testing.T) {
	data, err := json.Marshal(withdrawal.Withdrawal{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "contact_info") {
		t.Fatalf("expected contact_info omitted, got %s", data)
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []withdrawal.Status{withdrawal.StatusRequested, withdrawal.StatusProcessing} {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
	for _, s := range []withdrawal.Status{withdrawal.StatusCompleted, withdrawal.StatusFailed} {
		if !s.Terminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}
