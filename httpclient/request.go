package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Request = http.Request

const (
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

type ctxKey int

const ctxKeyTimeout ctxKey = 0

// HTTP Header
type headerMaker struct {
	header http.Header
}

type HeaderMaker interface {
	Set(key string, value string) HeaderMaker
	Remove(key string) HeaderMaker
	Make() http.Header
}

func (m *headerMaker) Set(key string, value string) HeaderMaker {
	m.header.Set(key, value)
	return m
}

func (m *headerMaker) Remove(key string) HeaderMaker {
	m.header.Del(key)
	return m
}

func (m *headerMaker) Make() http.Header {
	return m.header
}

func NewHeaderMaker() HeaderMaker {
	return &headerMaker{http.Header{}}
}

// HTTP Request
type requestBuilder struct {
	ctx         context.Context
	method      string
	url         string
	header      http.Header
	contentType string
	accept      string
	bodyGetter  func() (io.ReadCloser, error)
	timeout     time.Duration
}

type RequestBuilder interface {
	Build() (*http.Request, error)
	Context(ctx context.Context) RequestBuilder
	// timeout set by this method is applied when the request is
	// handled, not to the underlying net/http client
	Timeout(timeout time.Duration) RequestBuilder
	Method(method string) RequestBuilder
	URL(url string) RequestBuilder
	Header(header http.Header) RequestBuilder
	ContentType(contentType string) RequestBuilder
	Accept(contentType string) RequestBuilder
	Body(body io.ReadCloser) RequestBuilder
	BytesBody(body []byte) RequestBuilder
	StringBody(body string) RequestBuilder
	FormBody(form url.Values) RequestBuilder
}

func NewRequestBuilder() RequestBuilder {
	return &requestBuilder{
		method:  http.MethodGet,
		header:  http.Header{},
		timeout: time.Duration(0),
	}
}

func (b *requestBuilder) Build() (*http.Request, error) {
	return b.build()
}

func (b *requestBuilder) build() (*http.Request, error) {
	if b.ctx == nil {
		b.ctx = context.Background()
	}
	var body io.ReadCloser
	if b.bodyGetter != nil {
		var err error
		body, err = b.bodyGetter()
		if err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(b.ctx, strings.ToUpper(b.method), b.url, body)
	if err != nil {
		return nil, err
	}
	req.Header = b.header
	req.GetBody = b.bodyGetter
	if b.contentType != "" {
		req.Header.Set("Content-Type", b.contentType)
	}
	if b.accept != "" {
		req.Header.Set("Accept", b.accept)
	}
	if b.timeout > 0 {
		req = req.WithContext(context.WithValue(req.Context(), ctxKeyTimeout, b.timeout))
	}
	return req, nil
}

func (b *requestBuilder) Timeout(timeout time.Duration) RequestBuilder {
	b.timeout = timeout
	return b
}

func (b *requestBuilder) Context(ctx context.Context) RequestBuilder {
	b.ctx = ctx
	return b
}

func (b *requestBuilder) Method(method string) RequestBuilder {
	b.method = strings.ToUpper(method)
	return b
}

func (b *requestBuilder) URL(url string) RequestBuilder {
	b.url = url
	return b
}

func (b *requestBuilder) Header(header http.Header) RequestBuilder {
	b.header = header
	return b
}

func (b *requestBuilder) ContentType(contentType string) RequestBuilder {
	b.contentType = contentType
	return b
}

func (b *requestBuilder) Accept(contentType string) RequestBuilder {
	b.accept = contentType
	return b
}

func (b *requestBuilder) Body(body io.ReadCloser) RequestBuilder {
	b.bodyGetter = func() (io.ReadCloser, error) {
		return body, nil
	}
	return b
}

func (b *requestBuilder) BytesBody(body []byte) RequestBuilder {
	b.bodyGetter = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return b
}

func (b *requestBuilder) StringBody(body string) RequestBuilder {
	return b.BytesBody([]byte(body))
}

// FormBody encodes form values as the request body and sets the form
// content type unless one was set explicitly.
func (b *requestBuilder) FormBody(form url.Values) RequestBuilder {
	if b.contentType == "" {
		b.contentType = ContentTypeForm
	}
	return b.StringBody(form.Encode())
}
