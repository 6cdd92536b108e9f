// Package transport exposes the wallet over HTTP JSON and gRPC.
package transport

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/picker"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes bounds request bodies; a raw transaction is far below it.
const maxBodyBytes = 1 << 20

// Wallet is the account service the routes call into.
type Wallet interface {
	Accounts() []string
	Status(ctx context.Context, uid string) (service.Status, error)
	Sync(ctx context.Context, uid string) (synchronizer.Result, error)
	Operations(ctx context.Context, uid string) ([]model.Operation, error)
	Utxos(ctx context.Context, uid string, addresses []string) (utxocache.Snapshot, error)
	Pick(ctx context.Context, uid string, req service.PickRequest) (picker.Selection, error)
	Broadcast(ctx context.Context, uid string, raw []byte) (string, error)
	Reset(ctx context.Context, uid string, toDate time.Time) (model.SyncCursor, error)
}

// Handler serves the wallet routes.
type Handler struct {
	wallet       Wallet
	healthServer *health.Server
	logger       *zap.Logger
}

func NewHandler(wallet Wallet, healthServer *health.Server, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		wallet:       wallet,
		healthServer: healthServer,
		logger:       logger.Named("http"),
	}
}

type route struct {
	method  string
	pattern string
	handle  gwruntime.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{http.MethodGet, "/v1/health", h.health},
		{http.MethodGet, "/v1/accounts", h.accounts},
		{http.MethodGet, "/v1/accounts/{account}", h.status},
		{http.MethodPost, "/v1/accounts/{account}/sync", h.sync},
		{http.MethodGet, "/v1/accounts/{account}/operations", h.operations},
		{http.MethodGet, "/v1/accounts/{account}/utxos", h.utxos},
		{http.MethodPost, "/v1/accounts/{account}/pick", h.pick},
		{http.MethodPost, "/v1/accounts/{account}/broadcast", h.broadcast},
		{http.MethodPost, "/v1/accounts/{account}/reset", h.reset},
	}
}

// Register adds the wallet routes to mux.
func (h *Handler) Register(mux *gwruntime.ServeMux) error {
	for _, r := range h.routes() {
		if err := mux.HandlePath(r.method, r.pattern, r.handle); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

// HTTPHandler returns the routes on a gateway mux behind a permissive CORS policy.
func (h *Handler) HTTPHandler() (http.Handler, error) {
	mux := gwruntime.NewServeMux()
	if err := h.Register(mux); err != nil {
		return nil, err
	}
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux), nil
}

func (h *Handler) accounts(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, accountsResponse{Accounts: h.wallet.Accounts()})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request, params map[string]string) {
	status, err := h.wallet.Status(r.Context(), params["account"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newStatusResponse(status))
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request, params map[string]string) {
	result, err := h.wallet.Sync(r.Context(), params["account"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, syncResponse{
		Cursor:    newCursorResponse(result.Cursor),
		Upserted:  result.Upserted,
		Deleted:   result.Deleted,
		Rollbacks: result.Rollbacks,
	})
}

func (h *Handler) operations(w http.ResponseWriter, r *http.Request, params map[string]string) {
	ops, err := h.wallet.Operations(r.Context(), params["account"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := operationsResponse{Operations: make([]operationResponse, 0, len(ops))}
	for _, op := range ops {
		resp.Operations = append(resp.Operations, newOperationResponse(op))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// utxos serves the last good snapshot flagged as stale when the cache could not catch up.
func (h *Handler) utxos(w http.ResponseWriter, r *http.Request, params map[string]string) {
	snapshot, err := h.wallet.Utxos(r.Context(), params["account"], r.URL.Query()["address"])
	stale := err != nil && errors.Is(err, utxocache.ErrReplay)
	if err != nil && !stale {
		h.writeError(w, r, err)
		return
	}
	if stale {
		h.logger.Warn("serving stale utxo snapshot", zap.String("account", params["account"]), zap.Error(err))
	}
	h.writeJSON(w, http.StatusOK, newUtxosResponse(snapshot, stale))
}

func (h *Handler) pick(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body pickRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := body.toService()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	selection, err := h.wallet.Pick(r.Context(), params["account"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newSelectionResponse(selection))
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body broadcastRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	raw, err := hex.DecodeString(body.RawTx)
	if err != nil {
		h.writeError(w, r, badRequest("raw_tx is not hex: %v", err))
		return
	}
	hash, err := h.wallet.Broadcast(r.Context(), params["account"], raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, broadcastResponse{Hash: hash})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body resetRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	if body.ToDate == nil {
		h.writeError(w, r, badRequest("to_date is required"))
		return
	}
	cursor, err := h.wallet.Reset(r.Context(), params["account"], *body.ToDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newCursorResponse(cursor))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return badRequest("decode body: %v", err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
