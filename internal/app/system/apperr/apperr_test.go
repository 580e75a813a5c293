package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("Missing role"), http.StatusBadRequest},
		{"not found", NotFound("Not found"), http.StatusNotFound},
		{"method", MethodNotAllowed("Method Not Allowed"), http.StatusMethodNotAllowed},
		{"infra", Infrastructure("db down", errors.New("dial tcp")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("detail: %w", NotFound("Not found")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPublicMessage_DoesNotLeakCause(t *testing.T) {
	err := errors.New("connection refused 10.0.0.5:27017")
	if got := PublicMessage(err); got != "Internal Server Error" {
		t.Errorf("PublicMessage = %q", got)
	}

	err = Infrastructure("A database error occurred.", errors.New("secret detail"))
	if got := PublicMessage(err); got != "A database error occurred." {
		t.Errorf("PublicMessage = %q", got)
	}
}

func TestFromStatus(t *testing.T) {
	if !IsNotFound(FromStatus(http.StatusNotFound, "")) {
		t.Error("404 should map to not found")
	}
	if !IsValidation(FromStatus(http.StatusBadRequest, "Missing id")) {
		t.Error("400 should map to validation")
	}
	if KindOf(FromStatus(http.StatusMethodNotAllowed, "")) != KindMethodNotAllowed {
		t.Error("405 should map to method not allowed")
	}
	err := FromStatus(http.StatusBadGateway, "")
	if KindOf(err) != KindInfrastructure {
		t.Error("502 should map to infrastructure")
	}
	if err.Error() != "Bad Gateway" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp")
	err := Infrastructure("db down", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if err.Error() != "db down: dial tcp" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsHelpers_Nil(t *testing.T) {
	if IsNotFound(nil) || IsValidation(nil) {
		t.Error("nil error must not match any kind")
	}
}
