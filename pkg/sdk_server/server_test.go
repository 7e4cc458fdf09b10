package sdk_server_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	test_utils_repository "github.com/mattiabonardi/endor-records/internal/test_utils/repository"
	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
	"github.com/mattiabonardi/endor-records/pkg/sdk_resource"
	"github.com/mattiabonardi/endor-records/pkg/sdk_server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEndor(check sdk_server.HealthCheck) *sdk_server.Endor {
	gin.SetMode(gin.TestMode)
	logger := sdk.NewLoggerFromZap(zap.NewNop(), sdk.LogContext{})

	users := sdk_resource.NewResourceHandler[sdk_records.User, sdk_records.UserPatch](
		sdk_records.Users, test_utils_repository.NewMemoryRecordRepository[sdk_records.User]("user"), logger)
	blogs := sdk_resource.NewResourceHandler[sdk_records.Blog, sdk_records.BlogPatch](
		sdk_records.Blogs, test_utils_repository.NewMemoryRecordRepository[sdk_records.Blog]("blog"), logger)
	ratings := sdk_resource.NewResourceHandler[sdk_records.HotelRating, sdk_records.HotelRatingPatch](
		sdk_records.HotelRatings, test_utils_repository.NewMemoryRecordRepository[sdk_records.HotelRating]("rating"), logger)

	return sdk_server.NewEndorInitializer(logger).
		WithResources(users, blogs, ratings).
		WithRegistry(prometheus.NewRegistry()).
		WithHealthCheck(check).
		Build()
}

func serve(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestResourcesAreMounted(t *testing.T) {
	handler := newEndor(nil).Handler()

	for _, path := range []string{"/users", "/blogs", "/hotelRatings"} {
		w := serve(handler, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}

	w := serve(handler, http.MethodPost, "/users")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNoRoute(t *testing.T) {
	w := serve(newEndor(nil).Handler(), http.MethodGet, "/hotels")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"404 page not found (uri: /hotels, method: GET)"}`, w.Body.String())
}

func TestProbes(t *testing.T) {
	healthy := newEndor(func(context.Context) error { return nil }).Handler()
	assert.Equal(t, http.StatusOK, serve(healthy, http.MethodGet, "/livez").Code)
	assert.Equal(t, http.StatusOK, serve(healthy, http.MethodGet, "/readyz").Code)

	unhealthy := newEndor(func(context.Context) error { return errors.New("server selection timeout") }).Handler()
	assert.Equal(t, http.StatusOK, serve(unhealthy, http.MethodGet, "/livez").Code)

	w := serve(unhealthy, http.MethodGet, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"server selection timeout"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newEndor(nil).Handler()
	serve(handler, http.MethodGet, "/users")

	w := serve(handler, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `endor_http_requests_total{method="GET",route="/users",status="200"} 1`), w.Body.String())
}

func TestRunStopsWhenContextIsCanceled(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- newEndor(nil).Run(ctx, addr)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/livez")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
