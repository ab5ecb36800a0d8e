package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"tradejournal/pkg/tradejournal"
)

// ErrorResponse represents an error API response with structured information.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	recordOutcome(w, requestOutcome{message: message})
	writeJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// writeErrorResponse writes err with the HTTP status of its error code.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	response := ErrorResponse{Message: err.Error(), RequestID: middleware.GetReqID(r.Context())}

	var tjErr *tradejournal.Error
	if errors.As(err, &tjErr) {
		response.ErrorCode = string(tjErr.Code)
		response.Message = tjErr.Message
		status = mapErrorCodeToHTTPStatus(tjErr.Code)
	}
	if status >= http.StatusInternalServerError && response.ErrorCode == string(tradejournal.ErrCodeDatabase) {
		response.Message = tradejournal.MsgStorageFailure
	}
	response.Code = status

	recordOutcome(w, requestOutcome{errorCode: response.ErrorCode, message: err.Error()})
	writeJSON(w, status, response)
}

// writeMutation writes a ledger mutation result. The HTTP status mirrors the
// result code.
func writeMutation(w http.ResponseWriter, result tradejournal.MutationResult, err error) {
	status, convErr := strconv.Atoi(result.Code)
	if convErr != nil || status == 0 {
		status = http.StatusInternalServerError
	}
	o := requestOutcome{resultCode: result.Code, errorCode: string(result.ErrorCode)}
	if err != nil {
		o.message = err.Error()
	}
	recordOutcome(w, o)
	writeJSON(w, status, result)
}

// writeMalformedMutation answers a mutation whose body could not be decoded
// with the same rejected result shape the ledger returns.
func writeMalformedMutation(w http.ResponseWriter, err error) {
	decodeErr := tradejournal.WrapError(tradejournal.ErrCodeInvalidInput, "invalid request body", err)
	writeMutation(w, tradejournal.MutationResult{
		Code:      tradejournal.CodeRejected,
		Success:   false,
		Message:   decodeErr.Message,
		ErrorCode: decodeErr.Code,
	}, decodeErr)
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code tradejournal.ErrorCode) int {
	switch code {
	case tradejournal.ErrCodeInvalidInput, tradejournal.ErrCodeValidation:
		return http.StatusBadRequest
	case tradejournal.ErrCodeEmptyLot, tradejournal.ErrCodeEmptyWallet,
		tradejournal.ErrCodeInsufficientFund, tradejournal.ErrCodeOversell:
		return http.StatusBadRequest
	case tradejournal.ErrCodeNotFound:
		return http.StatusNotFound
	case tradejournal.ErrCodeDatabase, tradejournal.ErrCodeInternal:
		return http.StatusInternalServerError
	case tradejournal.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
