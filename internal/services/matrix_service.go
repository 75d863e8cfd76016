package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tripmate/pkg/utils"
)

type MatrixPoint struct {
	ID  string
	Lat float64
	Lng float64
}

type MatrixEdge struct {
	DistanceMeters int
}

type DistanceMatrix map[string]map[string]MatrixEdge

// DistanceMatrixService computes pairwise distances between points for a
// routing profile ("walking" or "driving").
type DistanceMatrixService interface {
	ComputeDistances(ctx context.Context, profile string, points []MatrixPoint) (DistanceMatrix, error)
}

// --------- pair cache keyed by (profile, A, B) ---------

type pairKey struct {
	Profile string
	A       string
	B       string
}

func (k pairKey) String() string { return k.Profile + "|" + k.A + "|" + k.B }

type MatrixPairCache interface {
	Get(k pairKey) (MatrixEdge, bool)
	Set(k pairKey, v MatrixEdge, ttl time.Duration)
}

type goCachePairCache struct {
	store *gocache.Cache
}

func NewInMemoryPairCache() MatrixPairCache {
	return &goCachePairCache{store: gocache.New(24*time.Hour, time.Hour)}
}

func (c *goCachePairCache) Get(k pairKey) (MatrixEdge, bool) {
	v, ok := c.store.Get(k.String())
	if !ok {
		return MatrixEdge{}, false
	}
	edge, ok := v.(MatrixEdge)
	return edge, ok
}

func (c *goCachePairCache) Set(k pairKey, v MatrixEdge, ttl time.Duration) {
	c.store.Set(k.String(), v, ttl)
}

// PointID is the stable cache identity of a coordinate.
func PointID(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}

// -------------- great-circle matrix (offline) ---------------

type HaversineMatrix struct{}

func NewHaversineMatrix() *HaversineMatrix { return &HaversineMatrix{} }

func (HaversineMatrix) ComputeDistances(_ context.Context, _ string, points []MatrixPoint) (DistanceMatrix, error) {
	mat := make(DistanceMatrix, len(points))
	for _, a := range points {
		row := make(map[string]MatrixEdge, len(points))
		for _, b := range points {
			km := utils.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
			row[b.ID] = MatrixEdge{DistanceMeters: int(math.Round(km * 1000))}
		}
		mat[a.ID] = row
	}
	return mat, nil
}

// -------------- Mapbox Matrix client (distance-only) ---------------

const mapboxMaxCoordinates = 25

type MapboxMatrixClient struct {
	HTTP        *http.Client
	BaseURL     string
	AccessToken string
	Cache       MatrixPairCache
	DefaultTTL  time.Duration
}

func NewMapboxMatrixClient(accessToken string, timeout time.Duration, cache MatrixPairCache) *MapboxMatrixClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MapboxMatrixClient{
		HTTP:        &http.Client{Timeout: timeout},
		BaseURL:     "https://api.mapbox.com",
		AccessToken: accessToken,
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
	}
}

func (c *MapboxMatrixClient) ComputeDistances(ctx context.Context, profile string, points []MatrixPoint) (DistanceMatrix, error) {
	n := len(points)
	if n == 0 {
		return DistanceMatrix{}, nil
	}
	if n > mapboxMaxCoordinates {
		return nil, fmt.Errorf("mapbox matrix: %d points exceeds limit of %d", n, mapboxMaxCoordinates)
	}

	mat := make(DistanceMatrix, n)
	needCall := false
	for _, p := range points {
		mat[p.ID] = make(map[string]MatrixEdge, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].ID][points[j].ID] = MatrixEdge{}
				continue
			}
			if v, ok := c.Cache.Get(pairKey{Profile: profile, A: points[i].ID, B: points[j].ID}); ok {
				mat[points[i].ID][points[j].ID] = v
			} else {
				needCall = true
			}
		}
	}
	if !needCall {
		return mat, nil
	}

	coords := make([]string, 0, n)
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}

	q := url.Values{}
	q.Set("annotations", "distance")
	q.Set("access_token", c.AccessToken)
	endpoint := fmt.Sprintf("%s/directions-matrix/v1/mapbox/%s/%s?%s",
		strings.TrimRight(c.BaseURL, "/"), profile, strings.Join(coords, ";"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("mapbox matrix request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox matrix http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("mapbox matrix bad status: %s", resp.Status)
	}

	var payload struct {
		Code      string       `json:"code"`
		Distances [][]*float64 `json:"distances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	if payload.Code != "" && payload.Code != "Ok" {
		return nil, fmt.Errorf("mapbox matrix code %q", payload.Code)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var d *float64
			if i < len(payload.Distances) && j < len(payload.Distances[i]) {
				d = payload.Distances[i][j]
			}
			if d == nil {
				// unroutable pair: use straight-line distance and do not cache it
				km := utils.HaversineKm(points[i].Lat, points[i].Lng, points[j].Lat, points[j].Lng)
				mat[points[i].ID][points[j].ID] = MatrixEdge{DistanceMeters: int(math.Round(km * 1000))}
				continue
			}
			edge := MatrixEdge{DistanceMeters: int(*d + 0.5)}
			mat[points[i].ID][points[j].ID] = edge
			c.Cache.Set(pairKey{Profile: profile, A: points[i].ID, B: points[j].ID}, edge, c.DefaultTTL)
		}
	}

	return mat, nil
}

// FallbackMatrix uses Primary and switches to Secondary when Primary fails.
type FallbackMatrix struct {
	Primary   DistanceMatrixService
	Secondary DistanceMatrixService
	Log       *zap.Logger
}

func (f *FallbackMatrix) ComputeDistances(ctx context.Context, profile string, points []MatrixPoint) (DistanceMatrix, error) {
	mat, err := f.Primary.ComputeDistances(ctx, profile, points)
	if err == nil {
		return mat, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	if f.Log != nil {
		f.Log.Warn("distance matrix provider failed, using straight-line distances", zap.Error(err))
	}
	return f.Secondary.ComputeDistances(ctx, profile, points)
}
