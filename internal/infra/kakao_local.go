package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

const kakaoDefaultBaseURL = "https://dapi.kakao.com"

type kakaoDocument struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryName      string `json:"category_name"`
	CategoryGroupCode string `json:"category_group_code"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	PlaceURL          string `json:"place_url"`
}

type kakaoKeywordResponse struct {
	Meta struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
	Documents []kakaoDocument `json:"documents"`
}

// KakaoLocalClient searches places through the Kakao Local keyword API.
type KakaoLocalClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	retry      retryPolicy
	log        *zap.Logger
}

func NewKakaoLocalClient(apiKey string, timeout time.Duration, log *zap.Logger) *KakaoLocalClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &KakaoLocalClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    kakaoDefaultBaseURL,
		apiKey:     apiKey,
		pageSize:   15,
		retry:      defaultRetryPolicy,
		log:        log,
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (k *KakaoLocalClient) WithBaseURL(baseURL string) *KakaoLocalClient {
	k.baseURL = strings.TrimRight(baseURL, "/")
	return k
}

// WithMaxAttempts enables retries of 429, 5xx and network failures.
func (k *KakaoLocalClient) WithMaxAttempts(n int) *KakaoLocalClient {
	k.retry = k.retry.withAttempts(n)
	return k
}

func (k *KakaoLocalClient) Name() string { return string(domain_models.SourceKakao) }

func (k *KakaoLocalClient) Search(ctx context.Context, query string) ([]domain_models.RawPlace, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("size", strconv.Itoa(k.pageSize))
	endpoint := fmt.Sprintf("%s/v2/local/search/keyword.json?%s", k.baseURL, params.Encode())

	resp, err := doWithRetry(ctx, k.httpClient, k.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "KakaoAK "+k.apiKey)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: kakao keyword search %q: %v", utils.ErrProviderFailure, query, err)
	}
	defer resp.Body.Close()

	var payload kakaoKeywordResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: kakao decode: %v", utils.ErrProviderFailure, err)
	}

	places := make([]domain_models.RawPlace, 0, len(payload.Documents))
	for _, d := range payload.Documents {
		places = append(places, mapKakaoDocument(d))
	}

	k.log.Debug("kakao keyword search",
		zap.String("query", query),
		zap.Int("total_count", payload.Meta.TotalCount),
		zap.Int("returned", len(places)))

	return places, nil
}

func mapKakaoDocument(d kakaoDocument) domain_models.RawPlace {
	lat, _ := strconv.ParseFloat(d.Y, 64)
	lng, _ := strconv.ParseFloat(d.X, 64)

	category := d.CategoryName
	if d.CategoryGroupCode != "" && !strings.Contains(category, d.CategoryGroupCode) {
		// group codes like AT4 or FD6 feed preference matching
		category = category + tagDelimiter + d.CategoryGroupCode
	}

	place := domain_models.RawPlace{
		ID:          d.ID,
		Name:        d.PlaceName,
		Category:    category,
		Address:     d.AddressName,
		RoadAddress: d.RoadAddressName,
		Phone:       d.Phone,
		Lat:         lat,
		Lng:         lng,
		Source:      domain_models.SourceKakao,
	}
	if d.ID != "" {
		rating, reviews, popularity := simulatedSignals(d.ID)
		place.Rating = &rating
		place.ReviewCount = reviews
		place.PopularityScore = popularity
	}
	return place
}

const tagDelimiter = " > "
