package fare_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/fare"
	"github.com/swiftride/swiftride-api/internal/pkg/routing"
)

type fakeRouter struct {
	matrix *routing.Matrix
	err    error
}

func (f *fakeRouter) Matrix(ctx context.Context, origin, destination [2]float64) (*routing.Matrix, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matrix, nil
}

func TestEstimateFare(t *testing.T) {
	service := fare.NewService(&fakeRouter{
		matrix: &routing.Matrix{DistanceMeters: 12000, DurationSeconds: 1080},
	})

	est, err := service.Estimate(context.Background(), [2]float64{77.59, 12.97}, [2]float64{77.75, 13.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// base 50 + 10/km * 12km = 170
	if !est.Fare.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected fare 170, got %s", est.Fare)
	}
	if !est.DistanceKm.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("expected 12 km, got %s", est.DistanceKm)
	}
	if !est.DurationMinutes.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("expected 18 minutes, got %s", est.DurationMinutes)
	}
}

func TestEstimateTruncatesFare(t *testing.T) {
	service := fare.NewService(&fakeRouter{
		matrix: &routing.Matrix{DistanceMeters: 1234, DurationSeconds: 300},
	})

	est, err := service.Estimate(context.Background(), [2]float64{0, 0}, [2]float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 50 + 10 * 1.234 = 62.34
	want, _ := decimal.NewFromString("62.34")
	if !est.Fare.Equal(want) {
		t.Fatalf("expected fare 62.34, got %s", est.Fare)
	}
}

func TestEstimateWrapsRouterFailure(t *testing.T) {
	service := fare.NewService(&fakeRouter{err: fmt.Errorf("connection refused")})

	_, err := service.Estimate(context.Background(), [2]float64{0, 0}, [2]float64{1, 1})
	if !errors.Is(err, fare.ErrRouting) {
		t.Fatalf("expected ErrRouting, got %v", err)
	}
}
