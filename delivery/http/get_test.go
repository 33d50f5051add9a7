package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	deliveryhttp "github.com/batchauction/dexclient/delivery/http"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedBody   string
		expectError    bool
		timeout        time.Duration
		serverResponse func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name:         "Success",
			url:          "/success",
			expectedBody: "Hello, World!",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("Hello, World!"))
			},
		},
		{
			name:        "Timeout",
			url:         "/timeout",
			expectError: true,
			timeout:     10 * time.Millisecond,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(50 * time.Millisecond)
				w.Write([]byte("Too late"))
			},
		},
		{
			name:        "Server Error",
			url:         "/error",
			expectError: true,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			},
		},
	}

	defaultTimeout := deliveryhttp.DefaultClient.Timeout
	resetClient := func() {
		deliveryhttp.DefaultClient.Timeout = defaultTimeout
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			deliveryhttp.DefaultClient.Timeout = tt.timeout
			defer resetClient()

			ctx := context.Background()
			body, err := deliveryhttp.Get(ctx, server.URL+tt.url)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, string(body))
		})
	}
}

func TestGet_UnexpectedStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := deliveryhttp.Get(context.Background(), server.URL)

	var statusErr deliveryhttp.UnexpectedStatusCodeError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
