package fare

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/pkg/routing"
)

var ErrRouting = errors.New("routing provider unavailable")

var (
	baseFare  = decimal.NewFromInt(50)
	ratePerKm = decimal.NewFromInt(10)
)

// Estimate is a fare quote for a single ride leg.
type Estimate struct {
	DistanceKm      decimal.Decimal `json:"distance_km"`
	DurationMinutes decimal.Decimal `json:"duration_minutes"`
	Fare            decimal.Decimal `json:"fare"`
}

// Router resolves a driving leg between two coordinates.
// Implemented by *routing.Client.
type Router interface {
	Matrix(ctx context.Context, origin, destination [2]float64) (*routing.Matrix, error)
}

type Service struct {
	router Router
}

func NewService(router Router) *Service {
	return &Service{router: router}
}

// Estimate quotes a fare for the leg between two [lon,lat] pairs.
func (s *Service) Estimate(ctx context.Context, origin, destination [2]float64) (*Estimate, error) {
	m, err := s.router.Matrix(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouting, err)
	}

	km := decimal.NewFromFloat(m.DistanceMeters).Div(decimal.NewFromInt(1000))
	fare := baseFare.Add(ratePerKm.Mul(km)).Truncate(2)

	return &Estimate{
		DistanceKm:      km.Round(3),
		DurationMinutes: decimal.NewFromFloat(m.DurationSeconds).Div(decimal.NewFromInt(60)).Round(1),
		Fare:            fare,
	}, nil
}
