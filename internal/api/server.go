// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"time"

	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"
)

const internalErrorMessage = "An unexpected error occurred. Please try again later."

// Server lists the member-svc service endpoint HTTP handlers.
type Server struct {
	Mounts            []*MountPoint
	SearchMembers     http.Handler
	SearchMembersText http.Handler
	UpdateMember      http.Handler
	Readyz            http.Handler
	Livez             http.Handler
}

// MountPoint holds information about the mounted endpoints.
type MountPoint struct {
	// Method is the name of the service method served by the mounted HTTP handler.
	Method string
	// Verb is the HTTP method used to match requests to the mounted handler.
	Verb string
	// Pattern is the HTTP request path pattern used to match requests to the
	// mounted handler.
	Pattern string
}

// New instantiates HTTP handlers for all the member-svc service endpoints
// using the provided encoder and decoder. errhandler is called whenever a
// response fails to be encoded.
func New(
	e *Endpoints,
	mux goahttp.Muxer,
	decoder func(*http.Request) goahttp.Decoder,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) *Server {
	return &Server{
		Mounts: []*MountPoint{
			{"SearchMembers", "POST", "/api/members/search"},
			{"SearchMembersText", "POST", "/api/members/search/text"},
			{"UpdateMember", "PUT", "/api/members/{id}"},
			{"Readyz", "GET", "/readyz"},
			{"Livez", "GET", "/livez"},
		},
		SearchMembers: newHandler("search-members", e.SearchMembers,
			DecodeSearchMembersRequest(mux, decoder), EncodeJSONResponse(encoder), encoder, errhandler),
		SearchMembersText: newHandler("search-members-text", e.SearchMembersText,
			DecodeSearchMembersTextRequest(mux, decoder), EncodeJSONResponse(encoder), encoder, errhandler),
		UpdateMember: newHandler("update-member", e.UpdateMember,
			DecodeUpdateMemberRequest(mux, decoder), EncodeJSONResponse(encoder), encoder, errhandler),
		Readyz: newHandler("readyz", e.Readyz,
			decodeEmptyRequest, EncodeTextResponse(), encoder, errhandler),
		Livez: newHandler("livez", e.Livez,
			decodeEmptyRequest, EncodeTextResponse(), encoder, errhandler),
	}
}

// Service returns the name of the service served.
func (s *Server) Service() string { return ServiceName }

// MethodNames returns the methods served.
func (s *Server) MethodNames() []string { return MethodNames[:] }

// Use wraps the server handlers with the given middleware.
func (s *Server) Use(m func(http.Handler) http.Handler) {
	s.SearchMembers = m(s.SearchMembers)
	s.SearchMembersText = m(s.SearchMembersText)
	s.UpdateMember = m(s.UpdateMember)
	s.Readyz = m(s.Readyz)
	s.Livez = m(s.Livez)
}

// Mount configures the mux to serve the member-svc endpoints.
func Mount(mux goahttp.Muxer, h *Server) {
	mux.Handle("POST", "/api/members/search", h.SearchMembers.ServeHTTP)
	mux.Handle("POST", "/api/members/search/text", h.SearchMembersText.ServeHTTP)
	mux.Handle("PUT", "/api/members/{id}", h.UpdateMember.ServeHTTP)
	mux.Handle("GET", "/readyz", h.Readyz.ServeHTTP)
	mux.Handle("GET", "/livez", h.Livez.ServeHTTP)
}

func newHandler(
	method string,
	endpoint goa.Endpoint,
	decodeRequest func(*http.Request) (any, error),
	encodeResponse func(context.Context, http.ResponseWriter, any) error,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), goahttp.AcceptTypeKey, r.Header.Get("Accept"))
		ctx = context.WithValue(ctx, goa.MethodKey, method)
		ctx = context.WithValue(ctx, goa.ServiceKey, ServiceName)

		payload, err := decodeRequest(r)
		if err != nil {
			if errEncode := EncodeError(ctx, w, r.URL.Path, encoder, err); errEncode != nil {
				errhandler(ctx, w, errEncode)
			}
			return
		}

		res, err := endpoint(ctx, payload)
		if err != nil {
			if errEncode := EncodeError(ctx, w, r.URL.Path, encoder, err); errEncode != nil {
				errhandler(ctx, w, errEncode)
			}
			return
		}

		if err := encodeResponse(ctx, w, res); err != nil {
			errhandler(ctx, w, err)
		}
	})
}

// EncodeJSONResponse returns an encoder for 200 responses carrying a JSON body.
func EncodeJSONResponse(encoder func(context.Context, http.ResponseWriter) goahttp.Encoder) func(context.Context, http.ResponseWriter, any) error {
	return func(ctx context.Context, w http.ResponseWriter, v any) error {
		enc := encoder(ctx, w)
		w.WriteHeader(http.StatusOK)
		return enc.Encode(v)
	}
}

// EncodeTextResponse returns an encoder for the plain text health responses.
func EncodeTextResponse() func(context.Context, http.ResponseWriter, any) error {
	return func(ctx context.Context, w http.ResponseWriter, v any) error {
		res, _ := v.([]byte)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(res)
		return err
	}
}

// NewErrorResponse builds the error body for the given status.
func NewErrorResponse(status int, message, path string) *ErrorResponse {
	return &ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      path,
	}
}

// EncodeError writes err as an ErrorResponse with the matching status code.
// Messages of internal errors are not exposed.
func EncodeError(ctx context.Context, w http.ResponseWriter, path string, encoder func(context.Context, http.ResponseWriter) goahttp.Encoder, err error) error {
	status := StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = internalErrorMessage
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	enc := encoder(ctx, w)
	w.WriteHeader(status)
	return enc.Encode(NewErrorResponse(status, message, path))
}

// StatusCode maps a service error to its HTTP status code.
func StatusCode(err error) int {
	switch err.(type) {
	case *BadRequestError:
		return http.StatusBadRequest
	case *UnauthorizedError:
		return http.StatusUnauthorized
	case *NotFoundError:
		return http.StatusNotFound
	case *ServiceUnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
