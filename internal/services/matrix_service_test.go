package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func jejuPoints() []MatrixPoint {
	return []MatrixPoint{
		{ID: PointID(33.4996, 126.5312), Lat: 33.4996, Lng: 126.5312},
		{ID: PointID(33.4584, 126.9425), Lat: 33.4584, Lng: 126.9425},
	}
}

func TestPointID(t *testing.T) {
	assert.Equal(t, "33.499600,126.531200", PointID(33.4996, 126.5312))
}

func TestHaversineMatrix(t *testing.T) {
	pts := jejuPoints()
	mat, err := NewHaversineMatrix().ComputeDistances(context.Background(), "walking", pts)
	require.NoError(t, err)

	a, b := pts[0].ID, pts[1].ID
	assert.Equal(t, 0, mat[a][a].DistanceMeters)
	assert.Equal(t, mat[a][b], mat[b][a])
	assert.InDelta(t, 38500, mat[a][b].DistanceMeters, 1000)
}

func newMapboxServer(t *testing.T, body any, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/directions-matrix/v1/mapbox/walking/"))
		assert.Contains(t, r.URL.Path, "126.531200,33.499600;126.942500,33.458400")
		assert.Equal(t, "distance", r.URL.Query().Get("annotations"))
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMapboxMatrixCachesPairs(t *testing.T) {
	var calls int32
	srv := newMapboxServer(t, map[string]any{
		"code":      "Ok",
		"distances": [][]any{{0, 41234.6}, {41001.2, 0}},
	}, &calls)

	client := NewMapboxMatrixClient("token", time.Second, NewInMemoryPairCache())
	client.BaseURL = srv.URL
	pts := jejuPoints()

	mat, err := client.ComputeDistances(context.Background(), "walking", pts)
	require.NoError(t, err)
	assert.Equal(t, 41235, mat[pts[0].ID][pts[1].ID].DistanceMeters)
	assert.Equal(t, 41001, mat[pts[1].ID][pts[0].ID].DistanceMeters)

	again, err := client.ComputeDistances(context.Background(), "walking", pts)
	require.NoError(t, err)
	assert.Equal(t, mat, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMapboxMatrixNullPairFallsBack(t *testing.T) {
	var calls int32
	srv := newMapboxServer(t, map[string]any{
		"code":      "Ok",
		"distances": [][]any{{0, nil}, {41001.2, 0}},
	}, &calls)

	client := NewMapboxMatrixClient("token", time.Second, NewInMemoryPairCache())
	client.BaseURL = srv.URL
	pts := jejuPoints()

	mat, err := client.ComputeDistances(context.Background(), "walking", pts)
	require.NoError(t, err)

	straight, _ := NewHaversineMatrix().ComputeDistances(context.Background(), "walking", pts)
	assert.Equal(t, straight[pts[0].ID][pts[1].ID], mat[pts[0].ID][pts[1].ID])

	// the unroutable pair is not cached, so the provider is asked again
	_, err = client.ComputeDistances(context.Background(), "walking", pts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMapboxMatrixErrors(t *testing.T) {
	var calls int32
	srv := newMapboxServer(t, map[string]any{"code": "InvalidInput"}, &calls)
	client := NewMapboxMatrixClient("token", time.Second, NewInMemoryPairCache())
	client.BaseURL = srv.URL

	_, err := client.ComputeDistances(context.Background(), "walking", jejuPoints())
	assert.Error(t, err)

	tooMany := make([]MatrixPoint, 26)
	_, err = client.ComputeDistances(context.Background(), "walking", tooMany)
	assert.Error(t, err)

	empty, err := client.ComputeDistances(context.Background(), "walking", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFallbackMatrixUsesSecondary(t *testing.T) {
	f := &FallbackMatrix{Primary: failingMatrix{}, Secondary: NewHaversineMatrix(), Log: zap.NewNop()}
	pts := jejuPoints()

	mat, err := f.ComputeDistances(context.Background(), "driving", pts)
	require.NoError(t, err)
	assert.Greater(t, mat[pts[0].ID][pts[1].ID].DistanceMeters, 0)
}

func TestFallbackMatrixStopsOnCancel(t *testing.T) {
	f := &FallbackMatrix{Primary: failingMatrix{}, Secondary: NewHaversineMatrix()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ComputeDistances(ctx, "driving", jejuPoints())
	assert.ErrorIs(t, err, errBoom)
}
