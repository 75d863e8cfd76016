package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

const (
	naverDefaultBaseURL = "https://openapi.naver.com"
	naverCoordScale     = 1e7
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

type naverItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

type naverSearchResponse struct {
	Total   int         `json:"total"`
	Display int         `json:"display"`
	Items   []naverItem `json:"items"`
}

// NaverLocalClient searches places through the Naver local search API.
type NaverLocalClient struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	display      int
	retry        retryPolicy
	log          *zap.Logger
}

func NewNaverLocalClient(clientID, clientSecret string, timeout time.Duration, log *zap.Logger) *NaverLocalClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NaverLocalClient{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      naverDefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		display:      5,
		retry:        defaultRetryPolicy,
		log:          log,
	}
}

func (n *NaverLocalClient) WithBaseURL(baseURL string) *NaverLocalClient {
	n.baseURL = strings.TrimRight(baseURL, "/")
	return n
}

func (n *NaverLocalClient) WithMaxAttempts(attempts int) *NaverLocalClient {
	n.retry = n.retry.withAttempts(attempts)
	return n
}

func (n *NaverLocalClient) Name() string { return string(domain_models.SourceNaver) }

func (n *NaverLocalClient) Search(ctx context.Context, query string) ([]domain_models.RawPlace, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(n.display))
	params.Set("sort", "comment")
	endpoint := fmt.Sprintf("%s/v1/search/local.json?%s", n.baseURL, params.Encode())

	resp, err := doWithRetry(ctx, n.httpClient, n.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Naver-Client-Id", n.clientID)
		req.Header.Set("X-Naver-Client-Secret", n.clientSecret)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: naver local search %q: %v", utils.ErrProviderFailure, query, err)
	}
	defer resp.Body.Close()

	var payload naverSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: naver decode: %v", utils.ErrProviderFailure, err)
	}

	places := make([]domain_models.RawPlace, 0, len(payload.Items))
	for _, it := range payload.Items {
		places = append(places, mapNaverItem(it))
	}

	n.log.Debug("naver local search",
		zap.String("query", query),
		zap.Int("total", payload.Total),
		zap.Int("returned", len(places)))

	return places, nil
}

func mapNaverItem(it naverItem) domain_models.RawPlace {
	name := html.UnescapeString(htmlTag.ReplaceAllString(it.Title, ""))
	mapx, _ := strconv.ParseFloat(it.MapX, 64)
	mapy, _ := strconv.ParseFloat(it.MapY, 64)

	// Naver separates category levels with a bare ">".
	parts := strings.Split(it.Category, ">")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id := naverPlaceID(name, it.Address)
	rating, reviews, popularity := simulatedSignals(id)

	return domain_models.RawPlace{
		ID:              id,
		Name:            name,
		Category:        strings.Join(parts, tagDelimiter),
		Address:         it.Address,
		RoadAddress:     it.RoadAddress,
		Phone:           it.Telephone,
		Lat:             mapy / naverCoordScale,
		Lng:             mapx / naverCoordScale,
		Rating:          &rating,
		ReviewCount:     reviews,
		PopularityScore: popularity,
		Source:          domain_models.SourceNaver,
	}
}

func naverPlaceID(name, address string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name + "|" + address))
	return fmt.Sprintf("naver_%x", h.Sum64())
}
