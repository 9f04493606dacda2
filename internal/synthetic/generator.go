package synthetic

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"DormBack/internal/domain/models"
	domsvc "DormBack/internal/domain/service"
	"DormBack/pkg/util"
)

// Noise parameters of the synthetic series. Changing any of these breaks
// every pinned fixture downstream, so they are constants, not config.
const (
	priceNoiseStddev  = 5.0
	volumeNoiseStddev = 500.0
	volNoiseMean      = 0.1
	volNoiseStddev    = 0.05
)

// Generator produces deterministic synthetic market series.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator { return &Generator{} }

// Generate builds a series of `length` daily points starting at `start`.
// The pseudo-random source is constructed per call from `seed`; the global
// math/rand state is never read or written.
//
// Per index i the draws are, in fixed order:
//
//	price      = sin(i*0.05 + 1.0)*50 + 100 + N(0, 5)
//	volume     = cos(i*0.03)*1000 + 5000 + N(0, 500)
//	volatility = |N(0.1, 0.05)|
func (g *Generator) Generate(seed int64, length int, start time.Time) (*models.MarketSeries, error) {
	if seed < 0 {
		return nil, fmt.Errorf("%w: seed must be non-negative, got %d", ErrInvalidArgument, seed)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidArgument, length)
	}

	day := util.MidnightUTC(start)
	rng := rand.New(rand.NewSource(seed))

	points := make([]models.MarketPoint, length)
	for i := 0; i < length; i++ {
		x := float64(i)
		points[i] = models.MarketPoint{
			Date:       day,
			Price:      math.Sin(x*0.05+1.0)*50 + 100 + rng.NormFloat64()*priceNoiseStddev,
			Volume:     math.Cos(x*0.03)*1000 + 5000 + rng.NormFloat64()*volumeNoiseStddev,
			Volatility: math.Abs(rng.NormFloat64()*volNoiseStddev + volNoiseMean),
		}
		day = day.AddDate(0, 0, 1)
	}

	return &models.MarketSeries{Seed: seed, Start: util.MidnightUTC(start), Points: points}, nil
}

var _ domsvc.SeriesGenerator = (*Generator)(nil)
