package errhttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	shopdomain "github.com/ghuser/storefront/services/shop/domain"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"member not found", shopdomain.ErrMemberNotFound, http.StatusNotFound},
		{"item not found", shopdomain.ErrItemNotFound, http.StatusNotFound},
		{"order not found", shopdomain.ErrOrderNotFound, http.StatusNotFound},
		{"duplicate member", shopdomain.ErrDuplicateMember, http.StatusConflict},
		{"insufficient stock", shopdomain.ErrInsufficientStock, http.StatusConflict},
		{"delivery completed", shopdomain.ErrDeliveryCompleted, http.StatusConflict},
		{"empty order", shopdomain.ErrEmptyOrder, http.StatusUnprocessableEntity},
		{"unrecognized error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped sentinel keeps its status", fmt.Errorf("load item: %w", shopdomain.ErrItemNotFound), http.StatusNotFound},
		{"doubly wrapped sentinel keeps its status", fmt.Errorf("place order: %w", fmt.Errorf("remove stock: %w", shopdomain.ErrInsufficientStock)), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tt.err.Error() {
				t.Fatalf("error = %q, want %q", body["error"], tt.err.Error())
			}
		})
	}
}
