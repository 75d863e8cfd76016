package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tripmate/internal/models/domain_models"
)

type fixturePlace struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Address     string   `json:"address"`
	RoadAddress string   `json:"road_address"`
	Phone       string   `json:"phone"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Popularity  float64  `json:"popularity"`
	// Source names the service the record was exported from; kakao when empty.
	Source      string   `json:"source"`
}

const staticProviderName = "static"

// StaticPlaceProvider answers queries from a JSON fixture. A place matches
// when every query token occurs in its region, name, category, address or
// keywords.
type StaticPlaceProvider struct {
	places []fixturePlace
}

func NewStaticPlaceProviderFromFile(path string) (*StaticPlaceProvider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places fixture: %w", err)
	}
	var places []fixturePlace
	if err := json.Unmarshal(b, &places); err != nil {
		return nil, fmt.Errorf("decode places fixture %s: %w", path, err)
	}
	return &StaticPlaceProvider{places: places}, nil
}

func (s *StaticPlaceProvider) Name() string { return staticProviderName }

func (s *StaticPlaceProvider) Search(ctx context.Context, query string) ([]domain_models.RawPlace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []domain_models.RawPlace{}, nil
	}

	out := make([]domain_models.RawPlace, 0)
	for _, p := range s.places {
		haystack := strings.ToLower(strings.Join(append([]string{p.Region, p.Name, p.Category, p.Address}, p.Keywords...), " "))
		if !containsAll(haystack, tokens) {
			continue
		}
		var rating *float64
		if p.Rating != nil {
			r := *p.Rating
			rating = &r
		}
		out = append(out, domain_models.RawPlace{
			ID:              p.ID,
			Name:            p.Name,
			Category:        p.Category,
			Address:         p.Address,
			RoadAddress:     p.RoadAddress,
			Phone:           p.Phone,
			Lat:             p.Lat,
			Lng:             p.Lng,
			Rating:          rating,
			ReviewCount:     p.ReviewCount,
			PopularityScore: p.Popularity,
			Source:          fixtureSource(p.Source),
		})
	}
	return out, nil
}

func containsAll(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

func fixtureSource(raw string) domain_models.PlaceSource {
	if domain_models.PlaceSource(raw) == domain_models.SourceNaver {
		return domain_models.SourceNaver
	}
	return domain_models.SourceKakao
}
