package httpclient

import (
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/zscgrhg/httpkit/logging"
)

type HTTPClientBuilder interface {
	Id(id string) HTTPClientBuilder
	Logger(logger zerolog.Logger) HTTPClientBuilder
	TimeoutSec(timeout int) HTTPClientBuilder
	MaxConcurrentRequests(n int) HTTPClientBuilder
	MaxQueueSize(n int) HTTPClientBuilder
	MaxConnsPerHost(n int) HTTPClientBuilder
	Interceptors(interceptors ...Interceptor) HTTPClientBuilder
	Build() HTTPClient
}

type httpClientBuilder struct {
	transport  *http.Transport
	baseClient *http.Client
	client     *httpClient
}

func numWithinRange(value, min, max int) int {
	if value < min {
		value = min
	} else if value > max {
		value = max
	}
	return value
}

func (h *httpClientBuilder) Id(id string) HTTPClientBuilder {
	h.client.id = id
	h.client.logger = logging.For("httpclient." + id)
	return h
}

func (h *httpClientBuilder) Logger(logger zerolog.Logger) HTTPClientBuilder {
	h.client.logger = logger
	return h
}

func (h *httpClientBuilder) TimeoutSec(timeout int) HTTPClientBuilder {
	h.baseClient.Timeout = time.Duration(timeout) * time.Second
	return h
}

func (h *httpClientBuilder) MaxConcurrentRequests(n int) HTTPClientBuilder {
	h.client.workerSize = int32(numWithinRange(n, 1, runtime.NumCPU()*32))
	return h
}

func (h *httpClientBuilder) MaxQueueSize(n int) HTTPClientBuilder {
	h.client.queue = make(chan *trackableRequest, numWithinRange(n, 1, runtime.NumCPU()*64))
	return h
}

func (h *httpClientBuilder) MaxConnsPerHost(n int) HTTPClientBuilder {
	numMaxConnsPerHost := numWithinRange(n, 1, runtime.NumCPU()*8)
	h.transport.MaxConnsPerHost = numMaxConnsPerHost
	h.transport.MaxIdleConnsPerHost = numMaxConnsPerHost
	return h
}

func (h *httpClientBuilder) Interceptors(interceptors ...Interceptor) HTTPClientBuilder {
	h.client.interceptors = interceptors
	return h
}

func (h *httpClientBuilder) Build() HTTPClient {
	h.baseClient.Transport = h.transport
	h.client.baseClient = h.baseClient
	return h.client
}

func NewBuilder() HTTPClientBuilder {
	return &httpClientBuilder{
		transport: http.DefaultTransport.(*http.Transport).Clone(),
		baseClient: &http.Client{
			Timeout: time.Minute,
		},
		client: &httpClient{
			id:         "http_client",
			queue:      make(chan *trackableRequest, 128),
			logger:     logging.For("httpclient"),
			status:     statusIdle,
			workerSize: 5,
			stopChan:   make(chan struct{}),
		},
	}
}
