package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DeviceIDHeader carries the caller's stable device identity. Each browser
// generates a UUID once and sends it on every request; it scopes the trip
// list and settings the way local storage scopes them client-side.
const DeviceIDHeader = "X-Device-ID"

// deviceIDKey is the context key for the parsed device ID.
type deviceIDKey struct{}

// RequireDeviceID rejects requests without a valid device UUID and stores the
// parsed ID in the request context for handlers to read via DeviceID.
func RequireDeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(DeviceIDHeader))
		if err != nil {
			http.Error(w, "missing or invalid "+DeviceIDHeader+" header", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), deviceIDKey{}, id)))
	})
}

// DeviceID returns the device ID placed in the context by RequireDeviceID.
// The zero UUID comes back only when the middleware did not run, which is a
// wiring bug, not a runtime condition.
func DeviceID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(deviceIDKey{}).(uuid.UUID)
	return id
}
