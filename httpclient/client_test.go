package httpclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zscgrhg/httpkit/demoserver"
)

// One server and one client shared by every test in this package.
var (
	server *httptest.Server
	client HTTPClient
)

func TestMain(m *testing.M) {
	server = httptest.NewServer(demoserver.Handler("helloworld"))
	client = NewBuilder().
		Id("suite").
		MaxConcurrentRequests(5).
		MaxQueueSize(128).
		TimeoutSec(30).
		MaxConnsPerHost(5).
		Interceptors(CurlInterceptor).
		Build()
	code := m.Run()
	client.Stop()
	server.Close()
	os.Exit(code)
}

func pageURL(page string) string {
	return server.URL + "/helloworld/" + page
}

func buildRequest(t *testing.T, b RequestBuilder) *http.Request {
	t.Helper()
	req, err := b.Build()
	require.NoError(t, err)
	return req
}

func TestGetPlainText(t *testing.T) {
	req := buildRequest(t, NewRequestBuilder().
		URL(pageURL("helloWorld")).
		Accept(ContentTypeText))
	resp, err := client.Request(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, demoserver.HelloWorldHTML, resp.Text())
}

func TestGetParsedHTMLTree(t *testing.T) {
	req := buildRequest(t, NewRequestBuilder().URL(pageURL("helloWorld")))
	resp, err := client.Request(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	doc, err := ParseHTMLResponseBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "hello world", doc.Find("body p").Text())
}

func TestGetJSON(t *testing.T) {
	type page struct {
		HTML struct {
			Body struct {
				P string `json:"p"`
			} `json:"body"`
		} `json:"html"`
	}
	req := buildRequest(t, NewRequestBuilder().
		URL(pageURL("indexJson")).
		Accept(ContentTypeJSON))
	resp, err := client.Request(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	parsed, err := ParseJSONResponseBody[page](resp)
	require.NoError(t, err)
	assert.Equal(t, "hello world", parsed.HTML.Body.P)
}

func TestHandleFailureCallback(t *testing.T) {
	var capturedCode int
	successCalled := false
	req := buildRequest(t, NewRequestBuilder().URL(pageURL("notThere")))
	client.Handle(req,
		func(resp *Response) {
			successCalled = true
		},
		func(resp *Response, err error) {
			require.NoError(t, err)
			capturedCode = resp.Code
		})
	assert.Equal(t, http.StatusNotFound, capturedCode)
	assert.False(t, successCalled, "success handler must not run for a 404 response")
}

func TestHandleTransportFailureCallback(t *testing.T) {
	var capturedErr error
	req := buildRequest(t, NewRequestBuilder().URL("http://localhost:1/nothing"))
	client.Handle(req,
		func(resp *Response) {
			t.Error("success handler must not run on transport failure")
		},
		func(resp *Response, err error) {
			assert.Nil(t, resp)
			capturedErr = err
		})
	assert.Error(t, capturedErr)
}

func TestPostForm(t *testing.T) {
	req := buildRequest(t, NewRequestBuilder().
		Method(http.MethodPost).
		URL(pageURL("post")).
		FormBody(url.Values{"arg": {"foo"}}))
	resp, err := client.Request(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Successfully posted [arg:[foo]] with method POST", resp.Text())
}

func TestPostReverse(t *testing.T) {
	req := buildRequest(t, NewRequestBuilder().
		Method(http.MethodPost).
		URL(pageURL("reverse")).
		FormBody(url.Values{"string": {"foo bar"}}))
	resp, err := client.Request(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "rab oof", resp.Text())
}

// One blocking call fetching the body as a string; the chained
// one-liner convention is the same behavior.
func TestRequestSingleCall(t *testing.T) {
	req := buildRequest(t, NewRequestBuilder().URL(pageURL("helloWorld")))
	resp, err := client.Request(req)
	require.NoError(t, err)
	assert.Equal(t, demoserver.HelloWorldHTML, resp.Text())
}

func TestRequestAsync(t *testing.T) {
	req1 := buildRequest(t, NewRequestBuilder().URL(pageURL("helloWorld")))
	req2 := buildRequest(t, NewRequestBuilder().URL(pageURL("helloWorld")))
	tr1 := client.RequestAsync(req1)
	tr2 := client.RequestAsync(req2)
	assert.NotEqual(t, tr1.ID(), tr2.ID())
	resp1, err := tr1.WaitAndGetResponse()
	require.NoError(t, err)
	resp2, err := tr2.WaitAndGetResponse()
	require.NoError(t, err)
	assert.Equal(t, resp1.Text(), resp2.Text())
}

func TestStoppedClientRejectsRequests(t *testing.T) {
	stopped := NewBuilder().Id("stopped").Build()
	stopped.Stop()
	req := buildRequest(t, NewRequestBuilder().URL(pageURL("helloWorld")))
	_, err := stopped.Request(req)
	assert.Error(t, err)
}
