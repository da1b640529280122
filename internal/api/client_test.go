package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL)
	client.httpClient.RetryMax = 0
	return client
}

func TestGetPromosDecodesList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shops/shop_1/promos", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Promo{{ID: "p1", ShopID: "shop_1", Name: "Black Friday"}})
	})
	client.SetToken("tok")

	promos, err := client.GetPromos(context.Background(), "shop_1")
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "Black Friday", promos[0].Name)
}

func TestStatusCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		kind    result.Kind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"token expired"}`, result.KindUnauthenticatedUser, "token expired"},
		{"payment required", http.StatusPaymentRequired, `{"message":"upgrade your plan"}`, result.KindUpgradedPlanRequired, "upgrade your plan"},
		{"server error", http.StatusInternalServerError, ``, result.KindInternalServerError, "backend error: status 500"},
		{"other client error", http.StatusConflict, `{"error":"duplicate promo"}`, result.KindSaveResourceFailed, "duplicate promo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.payload != "" {
					w.Write([]byte(tt.payload))
				}
			})

			err := client.SavePromo(context.Background(), models.Promo{ShopID: "shop_1"})
			require.Error(t, err)
			exc, ok := result.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, exc.Kind)
			assert.Equal(t, tt.message, exc.Message)
		})
	}
}

func TestUnreachableBackendIsInternalError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	client.httpClient.RetryMax = 0

	_, err := client.GetShops(context.Background(), "acc_1")
	require.Error(t, err)
	exc, ok := result.As(err)
	require.True(t, ok)
	assert.Equal(t, result.KindInternalServerError, exc.Kind)
}

func TestRedeemCouponPostsRecord(t *testing.T) {
	var received models.RedeemCoupon
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/redemptions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	})

	record := models.RedeemCoupon{ID: "r1", CouponID: "c1", ShopID: "shop_1", ScannedAt: "2025-05-02 14:30:45", AmountCents: 500}
	require.NoError(t, client.RedeemCoupon(context.Background(), record))
	assert.Equal(t, record, received)
}

func TestGetPromoStatisticsPassesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shops/shop_1/promo-statistics", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(models.PromoStatsPage{ShopID: "shop_1", Page: 3})
	})

	page, err := client.GetPromoStatistics(context.Background(), "shop_1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
}

func TestUploadFileReturnsID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uploads", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.png", header.Filename)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"file_id": "file123"})
	})

	fileID, err := client.UploadFile(context.Background(), "logo.png", strings.NewReader("pngbytes"))
	require.NoError(t, err)
	assert.Equal(t, "file123", fileID)
}

func TestUploadFileFailureIsTagged(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"file too large"}`))
	})

	_, err := client.UploadFile(context.Background(), "logo.png", strings.NewReader("pngbytes"))
	require.Error(t, err)
	exc, ok := result.As(err)
	require.True(t, ok)
	assert.Equal(t, result.KindFileUploadFailed, exc.Kind)
	assert.Equal(t, "file too large", exc.Message)
}
