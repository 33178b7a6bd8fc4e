package validator_test

import (
	"testing"

	"github.com/swiftride/swiftride-api/internal/pkg/validator"
)

type bankDetails struct {
	IFSCCode string `json:"ifsc_code" validate:"required,ifsc"`
	Method   string `json:"payment_method" validate:"required,payment_method"`
	Status   string `json:"status" validate:"required,withdrawal_status"`
}

func TestValidateAccepts(t *testing.T) {
	errs := validator.Validate(bankDetails{
		IFSCCode: "SBIN0001234",
		Method:   "CASH",
		Status:   "COMPLETED",
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRejectsBadIFSC(t *testing.T) {
	errs := validator.Validate(bankDetails{
		IFSCCode: "sbin001234",
		Method:   "CARD",
		Status:   "REQUESTED",
	})
	if _, ok := errs["ifsc_code"]; !ok {
		t.Fatalf("expected error on ifsc_code, got %v", errs)
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	errs := validator.Validate(bankDetails{
		IFSCCode: "SBIN0001234",
		Method:   "CRYPTO",
		Status:   "REFUNDED",
	})
	if _, ok := errs["payment_method"]; !ok {
		t.Fatalf("expected error on payment_method, got %v", errs)
	}
	if _, ok := errs["status"]; !ok {
		t.Fatalf("expected error on status, got %v", errs)
	}
}

func TestValidateUsesJSONTagNames(t *testing.T) {
	errs := validator.Validate(bankDetails{})
	for _, key := range []string{"ifsc_code", "payment_method", "status"} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected error keyed by json tag %q, got %v", key, errs)
		}
	}
}
