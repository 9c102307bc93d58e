package markdown

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/notes.md"
}

func TestLoadHTMLNotFound(t *testing.T) {
	url := serve(t, http.StatusNotFound, "<!DOCTYPE html><html><body><h1>404</h1> Page not found</body></html>")

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, url, nf.FailedURL())
}

func TestLoadHTMLNotFoundWithOKStatus(t *testing.T) {
	url := serve(t, http.StatusOK, "<html><head><title>404 Not Found</title></head></html>")

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLoadNonSuccessStatus(t *testing.T) {
	url := serve(t, http.StatusInternalServerError, "boom")

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

func TestLoadTooShort(t *testing.T) {
	url := serve(t, http.StatusOK, "abc")

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	var ec *EmptyContentError
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, 3, ec.Length)
}

func TestLoadWhitespaceOnlyIsEmpty(t *testing.T) {
	url := serve(t, http.StatusOK, "   \n\n  ok  \n")

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	var ec *EmptyContentError
	assert.ErrorAs(t, err, &ec)
}

func TestLoadProse(t *testing.T) {
	prose := strings.Repeat("Lorem ipsum dolor sit amet. ", 18)[:500]
	url := serve(t, http.StatusOK, prose)

	text, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	require.NoError(t, err)
	assert.Equal(t, prose, text)
	assert.Contains(t, Render(text), "<p>Lorem ipsum")
}

func TestLoadNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/gone.md"
	srv.Close()

	_, err := NewLoader(time.Second, 0, AllowPrivateHosts()).Load(context.Background(), url)

	cfe, ok := AsContentFetchError(err)
	require.True(t, ok)
	assert.Equal(t, url, cfe.FailedURL())
	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestLoadRejectsInternalAddresses(t *testing.T) {
	local := serve(t, http.StatusOK, strings.Repeat("reachable ", 10))
	loader := NewLoader(time.Second, 0)

	for _, url := range []string{
		local,
		"http://169.254.169.254/latest/meta-data/",
		"http://127.0.0.1:1/admin",
		"http://10.0.0.1/notes.md",
		"http://[::1]:1/notes.md",
	} {
		_, err := loader.Load(context.Background(), url)
		require.ErrorIs(t, err, ErrDisallowedAddress, url)

		var fe *FetchError
		assert.ErrorAs(t, err, &fe, url)
	}
}

func TestDisallowedIP(t *testing.T) {
	for _, ip := range []string{"127.0.0.1", "10.1.2.3", "172.16.0.1", "192.168.1.1", "169.254.169.254", "0.0.0.0", "::1", "fe80::1", "fd00::1"} {
		assert.True(t, disallowedIP(net.ParseIP(ip)), ip)
	}
	for _, ip := range []string{"93.184.216.34", "2606:4700::1111"} {
		assert.False(t, disallowedIP(net.ParseIP(ip)), ip)
	}
}
