package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},   // loopback
		{"10.0.0.1", true},    // private
		{"172.16.0.1", true},  // private
		{"192.168.1.1", true}, // private
		{"169.254.1.1", true}, // link-local
		{"::1", true},
		{"0.0.0.0", true},
		{"::", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip, "failed to parse IP: %s", tt.ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestLookupPublicIPsRejectsLoopback(t *testing.T) {
	_, err := lookupPublicIPs(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client)
	assert.NotZero(t, client.Timeout)
	assert.NotNil(t, client.Transport)
	require.NotNil(t, client.CheckRedirect)

	req := &http.Request{URL: &url.URL{Scheme: "http", Host: "127.0.0.1"}}
	req = req.WithContext(context.Background())
	assert.Error(t, client.CheckRedirect(req, nil), "redirect to loopback must be refused")

	via := make([]*http.Request, maxRedirects)
	err := client.CheckRedirect(req, via)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirects")
}

func TestSafeHTTPClientRefusesLoopbackURL(t *testing.T) {
	specCache.reset()
	_, err := specInput{URL: "http://127.0.0.1:1/api.yaml"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}
