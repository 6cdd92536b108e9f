package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/picker"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
)

// requestError is a malformed request caught before reaching the wallet.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

type errorResponse struct {
	Error     string `json:"error"`
	Shortfall string `json:"shortfall,omitempty"`
}

func statusCode(err error) int {
	var reqErr *requestError
	var fundsErr *picker.InsufficientFundsError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrForeignAddress),
		errors.Is(err, picker.ErrInvalidRequest),
		errors.Is(err, bitcoin.ErrInvalidTransaction):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, synchronizer.ErrSyncInProgress),
		errors.Is(err, synchronizer.ErrIrreconcilableReorg):
		return http.StatusConflict
	case errors.As(err, &fundsErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, synchronizer.ErrRemoteUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrClosed),
		errors.Is(err, utxocache.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	resp := errorResponse{Error: err.Error()}

	var fundsErr *picker.InsufficientFundsError
	if errors.As(err, &fundsErr) && fundsErr.Shortfall != nil {
		resp.Shortfall = fundsErr.Shortfall.String()
	}

	if code == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		resp.Error = http.StatusText(code)
	} else {
		h.logger.Debug("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("code", code),
			zap.Error(err),
		)
	}
	h.writeJSON(w, code, resp)
}
