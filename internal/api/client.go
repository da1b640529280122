// Package api is the HTTP client for the campaign backend. It implements
// every remote port the use cases consume. Domain failures come back as
// *result.Exception values; transport failures are wrapped as internal server
// errors so callers deal with one taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
)

// Client talks to the campaign backend.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	token      string
}

// NewClient creates a client for the backend at baseURL. Idempotent requests
// are retried a couple of times before failing.
func NewClient(baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	// Keep the final 5xx response once retries are exhausted so the status
	// switch in do() sees it instead of a generic "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: rc,
	}
}

// SetToken sets the bearer token attached to every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (p errorPayload) text(fallback string) string {
	if p.Error != "" {
		return p.Error
	}
	if p.Message != "" {
		return p.Message
	}
	return fallback
}

// do performs one request and decodes the response into out (when non-nil).
// Backend failures are translated into tagged exceptions here, in one place.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result.New(result.KindInternalServerError, fmt.Sprintf("backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return result.New(result.KindInternalServerError, fmt.Sprintf("decode response: %v", err))
		}
		return nil
	}

	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return result.New(result.KindUnauthenticatedUser, payload.text("session expired"))
	case resp.StatusCode == http.StatusPaymentRequired:
		return result.New(result.KindUpgradedPlanRequired, payload.text("plan limit reached"))
	case resp.StatusCode >= 500:
		return result.New(result.KindInternalServerError, payload.text(fmt.Sprintf("backend error: status %d", resp.StatusCode)))
	default:
		return result.New(result.KindSaveResourceFailed, payload.text(fmt.Sprintf("request rejected: status %d", resp.StatusCode)))
	}
}

// GetPromos lists the promos of one shop.
func (c *Client) GetPromos(ctx context.Context, shopID string) ([]models.Promo, error) {
	var promos []models.Promo
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID+"/promos", nil, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

// SavePromo creates a promo on the backend.
func (c *Client) SavePromo(ctx context.Context, promo models.Promo) error {
	return c.do(ctx, http.MethodPost, "/api/shops/"+promo.ShopID+"/promos", promo, nil)
}

// GetShops lists the shops of one account.
func (c *Client) GetShops(ctx context.Context, accountID string) ([]models.Shop, error) {
	var shops []models.Shop
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/shops", nil, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// SaveShop creates a shop on the backend.
func (c *Client) SaveShop(ctx context.Context, shop models.Shop) error {
	return c.do(ctx, http.MethodPost, "/api/accounts/"+shop.AccountID+"/shops", shop, nil)
}

// GetPromoStatistics fetches one page of per-promo statistics for a shop.
func (c *Client) GetPromoStatistics(ctx context.Context, shopID string, page int) (models.PromoStatsPage, error) {
	var stats models.PromoStatsPage
	path := fmt.Sprintf("/api/shops/%s/promo-statistics?page=%d", shopID, page)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return models.PromoStatsPage{}, err
	}
	return stats, nil
}

// GetShopStatistics fetches the aggregate statistics of a shop.
func (c *Client) GetShopStatistics(ctx context.Context, shopID string) (models.ShopStatistics, error) {
	var stats models.ShopStatistics
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID+"/statistics", nil, &stats); err != nil {
		return models.ShopStatistics{}, err
	}
	return stats, nil
}

// GetCashiers lists the cashiers of one account.
func (c *Client) GetCashiers(ctx context.Context, accountID string) ([]models.Cashier, error) {
	var cashiers []models.Cashier
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/cashiers", nil, &cashiers); err != nil {
		return nil, err
	}
	return cashiers, nil
}

// SaveCashier registers a cashier on the backend.
func (c *Client) SaveCashier(ctx context.Context, cashier models.Cashier) error {
	return c.do(ctx, http.MethodPost, "/api/accounts/"+cashier.AccountID+"/cashiers", cashier, nil)
}

// DeleteCashier removes a cashier from the backend.
func (c *Client) DeleteCashier(ctx context.Context, accountID, cashierID string) error {
	return c.do(ctx, http.MethodDelete, "/api/accounts/"+accountID+"/cashiers/"+cashierID, nil, nil)
}

// RedeemCoupon appends a redemption record. Write-only: the backend never
// returns the record back.
func (c *Client) RedeemCoupon(ctx context.Context, record models.RedeemCoupon) error {
	return c.do(ctx, http.MethodPost, "/api/redemptions", record, nil)
}

// GetProfile fetches the merchant profile of the current session.
func (c *Client) GetProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

type uploadResponse struct {
	FileID string `json:"file_id"`
}

// UploadFile pushes a media file to the backend and returns the identifier
// the image-URI convention is built on.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("prepare upload: %v", err))
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("read file: %v", err))
	}
	if err := writer.Close(); err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("prepare upload: %v", err))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads", buf.Bytes())
	if err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("upload failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var payload errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return "", result.New(result.KindFileUploadFailed, payload.text(fmt.Sprintf("upload failed: status %d", resp.StatusCode)))
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", result.New(result.KindFileUploadFailed, fmt.Sprintf("decode response: %v", err))
	}
	return uploaded.FileID, nil
}
