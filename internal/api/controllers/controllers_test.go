package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/models/domain_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/services"
	"tripmate/pkg/config"
	"tripmate/pkg/utils"
)

type fakeItineraryService struct {
	lastInput services.BuildItineraryInput
	resp      *response_models.ItineraryResponse
	metrics   *response_models.DayMetricsResponse
	err       error
}

func (f *fakeItineraryService) GenerateItinerary(ctx context.Context, in services.BuildItineraryInput) (*response_models.ItineraryResponse, error) {
	f.lastInput = in
	return f.resp, f.err
}

func (f *fakeItineraryService) GetItineraryById(ctx context.Context, id string) (*response_models.ItineraryResponse, error) {
	return f.resp, f.err
}

func (f *fakeItineraryService) GetDayMetrics(ctx context.Context, id string, day int) (*response_models.DayMetricsResponse, error) {
	return f.metrics, f.err
}

type fakeSearchService struct {
	lastQuery string
	lastOpts  services.SearchOptions
	places    []domain_models.RecommendedPlace
	err       error
}

func (f *fakeSearchService) Search(ctx context.Context, query string, opts services.SearchOptions) ([]domain_models.RecommendedPlace, error) {
	f.lastQuery, f.lastOpts = query, opts
	return f.places, f.err
}

type fakeDiscoveryService struct {
	lastRegion string
	lastPrefs  []string
	lastLimit  int
	places     []domain_models.RecommendedPlace
	err        error
}

func (f *fakeDiscoveryService) Discover(ctx context.Context, region string, preferences []string, limit int) ([]domain_models.RecommendedPlace, error) {
	f.lastRegion, f.lastPrefs, f.lastLimit = region, preferences, limit
	return f.places, f.err
}

func newTestRouter(itin services.ItineraryServiceInterface, search services.PlaceSearchServiceInterface, discovery services.DiscoveryServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ic := NewItineraryController(itin, &config.Config{})
	pc := NewPlacesController(search, discovery)

	r.GET("/places/search", pc.SearchPlaces)
	r.GET("/regions/:region/places", pc.GetPopularPlacesByRegion)
	r.POST("/itineraries", ic.CreateItinerary)
	r.GET("/itineraries/:id", ic.GetItineraryById)
	r.GET("/itineraries/:id/days/:day/metrics", ic.GetDayMetrics)
	return r
}

func do(r http.Handler, method, target string, body any) (*httptest.ResponseRecorder, utils.APIResponse) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateItinerary(t *testing.T) {
	svc := &fakeItineraryService{resp: &response_models.ItineraryResponse{ID: "abc", Destination: "제주도"}}
	r := newTestRouter(svc, &fakeSearchService{}, &fakeDiscoveryService{})

	w, resp := do(r, http.MethodPost, "/itineraries", map[string]any{
		"destination":    "제주도",
		"preferences":    []string{"자연"},
		"days":           2,
		"start_location": map[string]float64{"lat": 33.5, "lng": 126.5},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Itinerary generated successfully", resp.Message)

	assert.Equal(t, "제주도", svc.lastInput.Destination)
	assert.Equal(t, 2, svc.lastInput.Days)
	assert.Equal(t, domain_models.TransportWalking, svc.lastInput.TransportType)
	require.NotNil(t, svc.lastInput.StartLocation)
	assert.Equal(t, 33.5, svc.lastInput.StartLocation.Lat)
}

func TestCreateItineraryDegraded(t *testing.T) {
	svc := &fakeItineraryService{resp: &response_models.ItineraryResponse{ID: "abc", Degraded: true}}
	r := newTestRouter(svc, &fakeSearchService{}, &fakeDiscoveryService{})

	w, resp := do(r, http.MethodPost, "/itineraries", map[string]any{
		"destination": "제주도", "days": 1, "transport_type": "transit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "No plan could be generated for this destination", resp.Message)
	assert.Equal(t, domain_models.TransportTransit, svc.lastInput.TransportType)
}

func TestCreateItineraryValidation(t *testing.T) {
	r := newTestRouter(&fakeItineraryService{}, &fakeSearchService{}, &fakeDiscoveryService{})

	bodies := []map[string]any{
		{"days": 2},
		{"destination": "제주도"},
		{"destination": "제주도", "days": 15},
		{"destination": "제주도", "days": 1, "transport_type": "bicycle"},
		{"destination": "제주도", "days": 1, "start_location": map[string]float64{"lat": 95, "lng": 126}},
	}
	for i, body := range bodies {
		w, resp := do(r, http.MethodPost, "/itineraries", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %d", i)
		assert.Equal(t, "error", resp.Status)
	}
}

func TestCreateItineraryServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: 제주도", utils.ErrNoCandidates), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: all failed", utils.ErrDiscoveryFailed), http.StatusBadGateway},
		{fmt.Errorf("%w: save", utils.ErrDatabaseError), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := newTestRouter(&fakeItineraryService{err: tc.err}, &fakeSearchService{}, &fakeDiscoveryService{})
		w, _ := do(r, http.MethodPost, "/itineraries", map[string]any{"destination": "제주도", "days": 1})
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestGetItineraryNotFound(t *testing.T) {
	r := newTestRouter(&fakeItineraryService{err: utils.ErrItineraryNotFound}, &fakeSearchService{}, &fakeDiscoveryService{})

	w, resp := do(r, http.MethodGet, "/itineraries/0b6f0f0e-6a51-4b6e-9d6e-0d8f1f7c9a11", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Itinerary not found", resp.Message)
}

func TestGetDayMetrics(t *testing.T) {
	svc := &fakeItineraryService{metrics: &response_models.DayMetricsResponse{ItineraryID: "abc", Day: 1}}
	r := newTestRouter(svc, &fakeSearchService{}, &fakeDiscoveryService{})

	w, _ := do(r, http.MethodGet, "/itineraries/abc/days/1/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/itineraries/abc/days/first/metrics", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = fmt.Errorf("%w: day 9", utils.ErrInvalidDay)
	w, _ = do(r, http.MethodGet, "/itineraries/abc/days/9/metrics", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPlaces(t *testing.T) {
	search := &fakeSearchService{places: []domain_models.RecommendedPlace{{ID: "1", Name: "성산일출봉"}}}
	r := newTestRouter(&fakeItineraryService{}, search, &fakeDiscoveryService{})

	w, resp := do(r, http.MethodGet, "/places/search?query=%EC%A0%9C%EC%A3%BC&lat=33.5&lng=126.5&radius=5&preferences=%EC%9E%90%EC%97%B0,%20%EB%A7%9B%EC%A7%91", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "제주", search.lastQuery)
	assert.Equal(t, []string{"자연", "맛집"}, search.lastOpts.Preferences)
	require.NotNil(t, search.lastOpts.Location)
	assert.Equal(t, 126.5, search.lastOpts.Location.Lng)
	assert.Equal(t, 5.0, *search.lastOpts.Radius)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), data["count"])
}

func TestSearchPlacesValidation(t *testing.T) {
	r := newTestRouter(&fakeItineraryService{}, &fakeSearchService{}, &fakeDiscoveryService{})

	for _, target := range []string{
		"/places/search",
		"/places/search?query=a&lat=33.5",
		"/places/search?query=a&lat=33.5&lng=126.5&radius=-1",
	} {
		w, _ := do(r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestSearchPlacesProviderFailure(t *testing.T) {
	search := &fakeSearchService{err: fmt.Errorf("%w: no providers", utils.ErrSearchFailed)}
	r := newTestRouter(&fakeItineraryService{}, search, &fakeDiscoveryService{})

	w, _ := do(r, http.MethodGet, "/places/search?query=a", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetPopularPlacesByRegion(t *testing.T) {
	discovery := &fakeDiscoveryService{}
	r := newTestRouter(&fakeItineraryService{}, &fakeSearchService{}, discovery)

	w, resp := do(r, http.MethodGet, "/regions/%EB%B6%80%EC%82%B0/places", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "부산", discovery.lastRegion)
	assert.Equal(t, 10, discovery.lastLimit)
	assert.Nil(t, discovery.lastPrefs)

	data := resp.Data.(map[string]any)
	assert.Equal(t, []any{}, data["places"])

	w, _ = do(r, http.MethodGet, "/regions/%EB%B6%80%EC%82%B0/places?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
