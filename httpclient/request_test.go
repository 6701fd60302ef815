package httpclient

import (
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilderDefaultsToGet(t *testing.T) {
	req, err := NewRequestBuilder().URL("http://example.com").Build()
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
}

func TestRequestBuilderMalformedURL(t *testing.T) {
	_, err := NewRequestBuilder().URL("://missing-scheme").Build()
	assert.Error(t, err)
}

func TestRequestBuilderFormBody(t *testing.T) {
	req, err := NewRequestBuilder().
		Method(http.MethodPost).
		URL("http://example.com/post").
		FormBody(url.Values{"arg": {"foo"}}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, ContentTypeForm, req.Header.Get("Content-Type"))
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "arg=foo", string(body))
}

func TestRequestBuilderAcceptHeader(t *testing.T) {
	req, err := NewRequestBuilder().
		URL("http://example.com").
		Accept(ContentTypeJSON).
		Build()
	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, req.Header.Get("Accept"))
}

func TestRequestBuilderLowercasesMethodInput(t *testing.T) {
	req, err := NewRequestBuilder().
		Method("post").
		URL("http://example.com").
		Build()
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
}

func TestRequestBuilderTimeoutContext(t *testing.T) {
	req, err := NewRequestBuilder().
		URL("http://example.com").
		Timeout(5 * time.Second).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, req.Context().Value(ctxKeyTimeout))
}

func TestHeaderMaker(t *testing.T) {
	header := NewHeaderMaker().
		Set("Accept", ContentTypeText).
		Set("X-Extra", "1").
		Remove("X-Extra").
		Make()
	assert.Equal(t, ContentTypeText, header.Get("Accept"))
	assert.Empty(t, header.Get("X-Extra"))
}
