package razorpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swiftride/swiftride-api/internal/pkg/razorpay"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "test_secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var body struct {
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
			PaymentCapture int    `json:"payment_capture"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Amount != 10000 || body.Currency != "INR" || body.PaymentCapture != 1 {
			t.Errorf("unexpected order payload: %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_test123",
			"amount":   10000,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer srv.Close()

	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
		BaseURL:   srv.URL,
	})

	order, err := client.CreateOrder(context.Background(), 10000, "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_test123" {
		t.Fatalf("expected order_test123, got %s", order.ID)
	}
	if len(order.Raw) == 0 {
		t.Fatal("expected raw provider response to be kept")
	}
}

func TestCreateOrderNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR"}}`))
	}))
	defer srv.Close()

	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "wrong_secret",
		BaseURL:   srv.URL,
	})

	if _, err := client.CreateOrder(context.Background(), 10000, "INR"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	if _, err := client.CreateOrder(context.Background(), 0, "INR"); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestCreateOrderRejectsMissingCredentials(t *testing.T) {
	client := razorpay.NewClient(razorpay.Config{})

	if _, err := client.CreateOrder(context.Background(), 10000, "INR"); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}
