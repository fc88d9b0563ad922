package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValid_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/orders", strings.NewReader("{not json"))
	var dst createOrderRequest
	errs := decodeValid(req, &dst)
	require.Len(t, errs, 1)
	require.Equal(t, "body", errs[0].Path)
}

func TestDecodeValid_FieldPathsUseJSONNames(t *testing.T) {
	req := httptest.NewRequest("POST", "/orders",
		strings.NewReader(`{"order":{},"items":[{"productId":1,"quantity":0}]}`))
	var dst createOrderRequest
	errs := decodeValid(req, &dst)
	require.Len(t, errs, 1)
	require.Equal(t, "items[0].quantity", errs[0].Path)
	require.Equal(t, "body", errs[0].Location)
}

func TestDecodeValid_MissingItems(t *testing.T) {
	req := httptest.NewRequest("POST", "/orders", strings.NewReader(`{"order":{}}`))
	var dst createOrderRequest
	errs := decodeValid(req, &dst)
	require.Len(t, errs, 1)
	require.Equal(t, "items", errs[0].Path)
}

func TestDecodeValid_Valid(t *testing.T) {
	req := httptest.NewRequest("POST", "/orders",
		strings.NewReader(`{"order":{},"items":[{"productId":1,"quantity":2}]}`))
	var dst createOrderRequest
	require.Nil(t, decodeValid(req, &dst))
	require.Len(t, dst.Items, 1)
}

func TestTrimNamespace(t *testing.T) {
	require.Equal(t, "items[0].productId", trimNamespace("createOrderRequest.items[0].productId"))
	require.Equal(t, "status", trimNamespace("updateOrderRequest.status"))
	require.Equal(t, "plain", trimNamespace("plain"))
}
