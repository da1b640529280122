// Package handler is the local facade the UI talks to. Every mutating
// endpoint answers with a Redirection; list endpoints answer with data or an
// in-place error the view renders with a retry affordance.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/usecase"
	"merchant-dashboard/internal/validation"
)

// Uploader pushes media files to the backend before form submission.
type Uploader interface {
	UploadFile(ctx context.Context, name string, content io.Reader) (string, error)
}

// Handler provides HTTP handlers for the dashboard facade.
type Handler struct {
	promos      *usecase.Promos
	shops       *usecase.Shops
	stats       *usecase.Statistics
	cashiers    *usecase.Cashiers
	coupons     *usecase.Coupons
	bootstrap   *usecase.Bootstrap
	uploader    Uploader
	log         *zap.SugaredLogger
	maxBodySize int64
}

// NewHandlerOptions holds options for creating a handler.
type NewHandlerOptions struct {
	MaxBodySize int64
}

// DefaultHandlerOptions returns default handler options.
func DefaultHandlerOptions() NewHandlerOptions {
	return NewHandlerOptions{
		MaxBodySize: 1 << 20, // 1MB: forms and QR payloads are small
	}
}

// NewHandler creates a new handler instance.
func NewHandler(promos *usecase.Promos, shops *usecase.Shops, stats *usecase.Statistics, cashiers *usecase.Cashiers, coupons *usecase.Coupons, bootstrap *usecase.Bootstrap, uploader Uploader, log *zap.SugaredLogger) *Handler {
	return &Handler{
		promos:      promos,
		shops:       shops,
		stats:       stats,
		cashiers:    cashiers,
		coupons:     coupons,
		bootstrap:   bootstrap,
		uploader:    uploader,
		log:         log,
		maxBodySize: DefaultHandlerOptions().MaxBodySize,
	}
}

// Routes mounts every endpoint on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.SignIn)
		r.Post("/bootstrap", h.StartSession)
		r.Post("/logout", h.Logout)
	})

	r.Route("/shops", func(r chi.Router) {
		r.Get("/", h.ListShops)
		r.Post("/", h.CreateShop)
		r.Get("/{shop_id}/promos", h.ListPromos)
		r.Post("/{shop_id}/promos", h.CreatePromo)
		r.Get("/{shop_id}/statistics", h.ShopStatistics)
		r.Get("/{shop_id}/promo-statistics", h.PromoStatistics)
	})

	r.Route("/cashiers", func(r chi.Router) {
		r.Get("/", h.ListCashiers)
		r.Post("/", h.AddCashier)
		r.Delete("/{cashier_id}", h.RemoveCashier)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Post("/verify", h.VerifyCoupon)
		r.Post("/redeem", h.RedeemCoupon)
	})

	r.Post("/uploads", h.Upload)
}

type signInRequest struct {
	Token string `json:"token"`
}

// SignIn handles POST /session
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondJSON(w, http.StatusOK, h.bootstrap.SignIn(r.Context(), validation.SanitizeString(req.Token)))
}

// StartSession handles POST /session/bootstrap
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.bootstrap.Start(r.Context()))
}

// Logout handles POST /session/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.bootstrap.Logout(r.Context()))
}

type listResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ListShops handles GET /shops?account_id=
func (h *Handler) ListShops(w http.ResponseWriter, r *http.Request) {
	accountID := validation.SanitizeString(r.URL.Query().Get("account_id"))
	if accountID == "" {
		h.respondError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	shops, err := h.shops.List(r.Context(), accountID)
	if err != nil {
		h.respondJSON(w, http.StatusOK, listResponse{Error: err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, listResponse{Data: shops})
}

type createShopRequest struct {
	AccountID string          `json:"account_id"`
	Form      models.ShopForm `json:"form"`
}

// CreateShop handles POST /shops
func (h *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req createShopRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Form.Name = validation.SanitizeString(req.Form.Name)
	req.Form.Address = validation.SanitizeString(req.Form.Address)

	h.respondJSON(w, http.StatusOK, h.shops.Create(r.Context(), req.Form, validation.SanitizeString(req.AccountID)))
}

// ListPromos handles GET /shops/{shop_id}/promos
func (h *Handler) ListPromos(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shop_id")

	promos, err := h.promos.List(r.Context(), shopID)
	if err != nil {
		h.respondJSON(w, http.StatusOK, listResponse{Error: err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, listResponse{Data: promos})
}

type createPromoRequest struct {
	Form models.PromoForm `json:"form"`
}

// CreatePromo handles POST /shops/{shop_id}/promos
func (h *Handler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shop_id")

	var req createPromoRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Form.Name = validation.SanitizeString(req.Form.Name)
	req.Form.Description = validation.SanitizeString(req.Form.Description)

	h.respondJSON(w, http.StatusOK, h.promos.Create(r.Context(), req.Form, shopID))
}

// ShopStatistics handles GET /shops/{shop_id}/statistics
func (h *Handler) ShopStatistics(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shop_id")

	stats, err := h.stats.Shop(r.Context(), shopID)
	if err != nil {
		h.respondJSON(w, http.StatusOK, listResponse{Error: err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, listResponse{Data: stats})
}

// PromoStatistics handles GET /shops/{shop_id}/promo-statistics?page=
func (h *Handler) PromoStatistics(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shop_id")

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "invalid 'page' parameter")
			return
		}
		page = parsed
	}

	stats, err := h.stats.PromoPage(r.Context(), shopID, page)
	if err != nil {
		h.respondJSON(w, http.StatusOK, listResponse{Error: err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, listResponse{Data: stats})
}

// ListCashiers handles GET /cashiers?account_id=
func (h *Handler) ListCashiers(w http.ResponseWriter, r *http.Request) {
	accountID := validation.SanitizeString(r.URL.Query().Get("account_id"))
	if accountID == "" {
		h.respondError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	cashiers, err := h.cashiers.List(r.Context(), accountID)
	if err != nil {
		h.respondJSON(w, http.StatusOK, listResponse{Error: err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, listResponse{Data: cashiers})
}

type addCashierRequest struct {
	AccountID string             `json:"account_id"`
	Form      models.CashierForm `json:"form"`
}

// AddCashier handles POST /cashiers
func (h *Handler) AddCashier(w http.ResponseWriter, r *http.Request) {
	var req addCashierRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Form.Name = validation.SanitizeString(req.Form.Name)
	req.Form.Email = validation.SanitizeString(req.Form.Email)

	h.respondJSON(w, http.StatusOK, h.cashiers.Add(r.Context(), req.Form, validation.SanitizeString(req.AccountID)))
}

// RemoveCashier handles DELETE /cashiers/{cashier_id}?account_id=
func (h *Handler) RemoveCashier(w http.ResponseWriter, r *http.Request) {
	cashierID := chi.URLParam(r, "cashier_id")
	accountID := validation.SanitizeString(r.URL.Query().Get("account_id"))
	if accountID == "" {
		h.respondError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	h.respondJSON(w, http.StatusOK, h.cashiers.Remove(r.Context(), accountID, cashierID))
}

type verifyCouponRequest struct {
	Raw    string `json:"raw"`
	ShopID string `json:"shop_id"`
}

type verifyCouponResponse struct {
	Valid  bool           `json:"valid"`
	Coupon *models.Coupon `json:"coupon,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// VerifyCoupon handles POST /coupons/verify. The raw field is the decoded QR
// payload coming from the scanner in the UI host.
func (h *Handler) VerifyCoupon(w http.ResponseWriter, r *http.Request) {
	var req verifyCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	res := h.coupons.Verify(req.Raw, validation.SanitizeString(req.ShopID))
	if !res.IsOk() {
		h.respondJSON(w, http.StatusOK, verifyCouponResponse{Error: res.Err().Message})
		return
	}
	coupon := res.Value()
	h.respondJSON(w, http.StatusOK, verifyCouponResponse{Valid: true, Coupon: &coupon})
}

type redeemCouponRequest struct {
	Coupon      models.Coupon      `json:"coupon"`
	Transaction models.Transaction `json:"transaction"`
}

// RedeemCoupon handles POST /coupons/redeem
func (h *Handler) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var req redeemCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.respondJSON(w, http.StatusOK, h.coupons.Redeem(r.Context(), req.Coupon, req.Transaction))
}

type uploadResponse struct {
	FileID string `json:"file_id"`
}

// Upload handles POST /uploads. The returned file id feeds the creation forms
// and the image-URI convention.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // media files get a larger cap

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	fileID, err := h.uploader.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, uploadResponse{FileID: fileID})
}

// decode reads the request body into dest, answering the error response
// itself when the body is missing or malformed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		if err == io.EOF {
			h.respondError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return false
	}
	return true
}

// respondJSON sends a JSON response with the given status code.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorw("failed to encode response", "error", err)
	}
}

// respondError sends an error response with the given status code and message.
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
