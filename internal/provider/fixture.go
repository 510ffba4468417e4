package provider

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider/data"
)

type fixtureRoutes struct {
	Routes []fixtureRoute `json:"routes"`
}

type fixtureRoute struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	Offers      []models.Offer `json:"offers"`
}

// FixtureProvider serves embedded route fares. It stands in for the
// browser-automation provider during development and in the CLI demo;
// dates are accepted but not matched against the fixture data.
type FixtureProvider struct {
	routes []fixtureRoute
}

func NewFixtureProvider() (*FixtureProvider, error) {
	var resp fixtureRoutes
	if err := json.Unmarshal(data.Routes, &resp); err != nil {
		return nil, err
	}
	return &FixtureProvider{routes: resp.Routes}, nil
}

func (p *FixtureProvider) Name() string {
	return "fixture"
}

func (p *FixtureProvider) Search(ctx context.Context, q Query) ([]models.Offer, error) {
	delay := time.Duration(20+rand.Intn(30)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	results := []models.Offer{}
	for _, route := range p.routes {
		if !strings.EqualFold(route.Origin, q.Origin) ||
			!strings.EqualFold(route.Destination, q.Destination) {
			continue
		}
		for _, o := range route.Offers {
			o.Normalize()
			if q.MaxStops >= 0 && o.Stops > q.MaxStops {
				continue
			}
			results = append(results, o)
		}
	}

	if q.Sort == SortCheapest {
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Priced != results[j].Priced {
				return results[i].Priced
			}
			return results[i].Price < results[j].Price
		})
	}

	return results, nil
}
