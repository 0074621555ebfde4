package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/service"
)

type stubTrackingService struct {
	track func(ctx context.Context, trackingID string) (*dto.PublicTracking, error)
}

func (s *stubTrackingService) Track(ctx context.Context, trackingID string) (*dto.PublicTracking, error) {
	return s.track(ctx, trackingID)
}

func newTrackingTestRouter(tracking service.TrackingService) *gin.Engine {
	router := gin.New()
	handler := NewTrackingHandler(tracking)
	router.GET("/api/track/:trackingId", handler.Track)
	return router
}

func TestTrackHandler(t *testing.T) {
	tracking := &stubTrackingService{
		track: func(_ context.Context, trackingID string) (*dto.PublicTracking, error) {
			assert.Equal(t, "PT1A2B3C4D", trackingID)
			return &dto.PublicTracking{
				TrackingID:      trackingID,
				Status:          model.StatusReadyForPickup,
				StorageLocation: "A-15",
				FeeAmount:       1.50,
			}, nil
		},
	}
	router := newTrackingTestRouter(tracking)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/track/PT1A2B3C4D", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	info, err := UnmarshalFromBytes[dto.PublicTracking](mustMarshal(t, resp.Data))
	require.NoError(t, err)
	assert.Equal(t, model.StatusReadyForPickup, info.Status)
	assert.Equal(t, "A-15", info.StorageLocation)
}

func TestTrackHandlerUnknownID(t *testing.T) {
	tracking := &stubTrackingService{
		track: func(context.Context, string) (*dto.PublicTracking, error) {
			return nil, service.ErrParcelNotFound
		},
	}
	router := newTrackingTestRouter(tracking)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/track/PT-UNKNOWN", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
}

func TestTrackHandlerBlankID(t *testing.T) {
	tracking := &stubTrackingService{
		track: func(context.Context, string) (*dto.PublicTracking, error) {
			t.Fatal("blank tracking IDs must not reach the service")
			return nil, nil
		},
	}
	router := newTrackingTestRouter(tracking)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/track/%20%20", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
