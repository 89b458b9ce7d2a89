// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package callable serves handlers over the Firebase callable-functions
// protocol: a POST with a JSON {"data": ...} envelope, answered with
// {"result": ...} on success or {"error": {"status", "message"}} on
// failure. Handlers signal coded failures with google.golang.org/grpc
// status errors; anything else is logged and surfaced as INTERNAL.
package callable

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type requestEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type responseEnvelope struct {
	Result any            `json:"result,omitempty"`
	Error  *errorEnvelope `json:"error,omitempty"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handle registers handler on mux as POST /{name}.
func Handle[Req any, Res any](mux chi.Router, name string, handler func(context.Context, *Req) (*Res, error)) {
	mux.Post("/"+name, func(w http.ResponseWriter, r *http.Request) {
		var env requestEnvelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			writeError(w, r, name, status.Error(codes.InvalidArgument, "request body must be a JSON data envelope"))
			return
		}

		req := new(Req)
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, req); err != nil {
				writeError(w, r, name, status.Error(codes.InvalidArgument, "malformed request data"))
				return
			}
		}

		res, err := handler(r.Context(), req)
		if err != nil {
			writeError(w, r, name, err)
			return
		}
		writeJSON(w, http.StatusOK, responseEnvelope{Result: res})
	})
}

func writeError(w http.ResponseWriter, r *http.Request, name string, err error) {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.Unknown || st.Code() == codes.Internal {
		slog.ErrorContext(r.Context(), "callable: handler failed", "function", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, responseEnvelope{Error: &errorEnvelope{
			Status:  "INTERNAL",
			Message: "internal error",
		}})
		return
	}
	writeJSON(w, httpStatus(st.Code()), responseEnvelope{Error: &errorEnvelope{
		Status:  statusName(st.Code()),
		Message: st.Message(),
	}})
}

func writeJSON(w http.ResponseWriter, code int, body responseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("callable: encoding response", "error", err)
	}
}

// httpStatus maps a status code to the HTTP status the callable protocol
// expects.
func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// statusName maps a status code to the SCREAMING_SNAKE_CASE name the
// client SDK matches on.
func statusName(code codes.Code) string {
	switch code {
	case codes.InvalidArgument:
		return "INVALID_ARGUMENT"
	case codes.Unauthenticated:
		return "UNAUTHENTICATED"
	case codes.PermissionDenied:
		return "PERMISSION_DENIED"
	case codes.NotFound:
		return "NOT_FOUND"
	case codes.AlreadyExists:
		return "ALREADY_EXISTS"
	case codes.FailedPrecondition:
		return "FAILED_PRECONDITION"
	case codes.Aborted:
		return "ABORTED"
	case codes.OutOfRange:
		return "OUT_OF_RANGE"
	case codes.ResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case codes.Unavailable:
		return "UNAVAILABLE"
	case codes.DeadlineExceeded:
		return "DEADLINE_EXCEEDED"
	default:
		return "INTERNAL"
	}
}
