package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatus(t *testing.T) {
	cases := map[int]Code{
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusForbidden:           CodeForbidden,
		http.StatusNotFound:            CodeNotFound,
		http.StatusBadRequest:          CodeValidation,
		http.StatusUnprocessableEntity: CodeValidation,
		http.StatusInternalServerError: CodeNetwork,
		http.StatusServiceUnavailable:  CodeNetwork,
		http.StatusTeapot:              CodeInternal,
		http.StatusMethodNotAllowed:    CodeInternal,
		http.StatusBadGateway:          CodeNetwork,
	}
	for status, want := range cases {
		if got := FromStatus(status); got != want {
			t.Fatalf("status %d: expected %s, got %s", status, want, got)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeNetwork, cause, "fetch products")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable")
	}
	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil || typed.Code() != CodeNetwork {
		t.Fatalf("expected network code through wrapping, got %v", typed)
	}
}

func TestReasonFallsBackToPublicMessage(t *testing.T) {
	err := New(CodeStockLimit, "")
	if err.Reason() != MetadataFor(CodeStockLimit).PublicMessage {
		t.Fatalf("expected public message fallback, got %q", err.Reason())
	}

	err = New(CodeStockLimit, "only 2 left in stock")
	if err.Reason() != "only 2 left in stock" {
		t.Fatalf("expected explicit reason, got %q", err.Reason())
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(New(CodeUnauthorized, "session expired")) {
		t.Fatal("expected unauthorized detection")
	}
	if IsUnauthorized(New(CodeNotFound, "missing")) {
		t.Fatal("not-found should not read as unauthorized")
	}
	if IsUnauthorized(nil) {
		t.Fatal("nil should not read as unauthorized")
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.PublicMessage != metadataByCode[CodeInternal].PublicMessage {
		t.Fatalf("unknown code should map to internal metadata, got %+v", meta)
	}
}
