package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

const naverBody = `{
  "total": 1,
  "display": 1,
  "items": [
    {
      "title": "<b>제주</b> 흑돼지 &amp; 국수",
      "category": "한식>돼지고기구이",
      "telephone": "",
      "address": "제주특별자치도 제주시 일도이동 1034-1",
      "roadAddress": "제주특별자치도 제주시 서사로 1",
      "mapx": "1265312000",
      "mapy": "334996000"
    }
  ]
}`

func TestNaverSearchMapsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/local.json", r.URL.Path)
		assert.Equal(t, "제주 맛집", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("display"))
		assert.Equal(t, "comment", r.URL.Query().Get("sort"))
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
		_, _ = w.Write([]byte(naverBody))
	}))
	defer srv.Close()

	c := NewNaverLocalClient("id", "secret", time.Second, nil).WithBaseURL(srv.URL)
	got, err := c.Search(context.Background(), "제주 맛집")
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "제주 흑돼지 & 국수", p.Name)
	assert.Equal(t, "한식 > 돼지고기구이", p.Category)
	assert.InDelta(t, 33.4996, p.Lat, 1e-9)
	assert.InDelta(t, 126.5312, p.Lng, 1e-9)
	assert.Equal(t, domain_models.SourceNaver, p.Source)
	assert.Equal(t, naverPlaceID("제주 흑돼지 & 국수", "제주특별자치도 제주시 일도이동 1034-1"), p.ID)
	require.NotNil(t, p.Rating)

	again, err := c.Search(context.Background(), "제주 맛집")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestNaverSearchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewNaverLocalClient("id", "secret", time.Second, nil).WithBaseURL(srv.URL).
		Search(context.Background(), "제주")
	assert.ErrorIs(t, err, utils.ErrProviderFailure)
}

func TestSimulatedSignalsRange(t *testing.T) {
	for _, id := range []string{"8213", "naver_1", "", "26338954"} {
		rating, reviews, popularity := simulatedSignals(id)
		assert.GreaterOrEqual(t, rating, 3.0)
		assert.LessOrEqual(t, rating, 5.0)
		assert.GreaterOrEqual(t, reviews, 0)
		assert.Less(t, reviews, 1000)
		assert.GreaterOrEqual(t, popularity, 0.0)
		assert.LessOrEqual(t, popularity, 30.0)

		r2, v2, p2 := simulatedSignals(id)
		assert.Equal(t, []any{rating, reviews, popularity}, []any{r2, v2, p2})
	}
}
