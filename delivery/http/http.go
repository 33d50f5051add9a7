package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultClient represents default HTTP client for issuing outgoing HTTP requests.
var DefaultClient = &http.Client{
	Timeout:   5 * time.Second, // Adjusted timeout to 5 seconds
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

// UnexpectedStatusCodeError is returned by Get when the server responds with a non 200 status.
type UnexpectedStatusCodeError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("unexpected status code (%d) from (%s)", e.StatusCode, e.URL)
}

// Get issues a GET request to url with DefaultClient and returns the response body.
func Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, UnexpectedStatusCodeError{URL: url, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// RequestUnmarshaler is any type capable to unmarshal data from HTTP request to itself.
type RequestUnmarshaler interface {
	UnmarshalHTTPRequest(c echo.Context) error
}

// UnmarshalRequest unmarshals HTTP request into m.
func UnmarshalRequest(c echo.Context, m RequestUnmarshaler) error {
	return m.UnmarshalHTTPRequest(c)
}

// Validator is any request type able to validate its parsed fields.
type Validator interface {
	Validate() error
}

// ParseRequest encapsulates the request unmarshalling and validation logic.
// It unmarshals the request and validates it if the request implements the Validator interface.
func ParseRequest(c echo.Context, req RequestUnmarshaler) error {
	if err := UnmarshalRequest(c, req); err != nil {
		return err
	}

	v, ok := req.(Validator)
	if !ok {
		return nil
	}
	return v.Validate()
}

// TxResponse is returned by every mutating endpoint once the transaction is sent.
type TxResponse struct {
	TxHash string `json:"tx_hash"`
}

// NewTxResponse creates a new TxResponse.
func NewTxResponse(txHash common.Hash) *TxResponse {
	return &TxResponse{TxHash: txHash.Hex()}
}
