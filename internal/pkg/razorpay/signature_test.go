package razorpay_test

import (
	"errors"
	"testing"

	"github.com/swiftride/swiftride-api/internal/pkg/gateway"
	"github.com/swiftride/swiftride-api/internal/pkg/razorpay"
)

func TestVerifySignatureAcceptsValidProof(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	sig := razorpay.Sign(razorpay.BuildSignatureBase("order_123", "pay_456"), "test_secret")

	if err := client.VerifySignature("order_123", "pay_456", sig); err != nil {
		t.Fatalf("expected valid signature to pass, got %v", err)
	}
}

func TestVerifySignatureTrimsWhitespace(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	sig := razorpay.Sign(razorpay.BuildSignatureBase("order_123", "pay_456"), "test_secret")

	if err := client.VerifySignature("order_123", "pay_456", "  "+sig+" "); err != nil {
		t.Fatalf("expected whitespace-padded signature to pass, got %v", err)
	}
}

func TestVerifySignatureRejectsTamperedProof(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	sig := razorpay.Sign(razorpay.BuildSignatureBase("order_123", "pay_456"), "test_secret")

	err := client.VerifySignature("order_123", "pay_999", sig)
	if !errors.Is(err, gateway.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	sig := razorpay.Sign(razorpay.BuildSignatureBase("order_123", "pay_456"), "other_secret")

	err := client.VerifySignature("order_123", "pay_456", sig)
	if !errors.Is(err, gateway.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestBuildSignatureBase(t *testing.T) {
	if got := razorpay.BuildSignatureBase("order_1", "pay_2"); got != "order_1|pay_2" {
		t.Fatalf("unexpected base: %s", got)
	}
}
