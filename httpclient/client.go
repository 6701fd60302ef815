// Package httpclient is a builder-style HTTP client: fluent request
// construction, a pooled worker loop over one shared transport,
// awaitable responses, an interceptor chain and per-call
// success/failure handlers.
package httpclient

import (
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// client lifecycle status
const (
	statusIdle int32 = iota
	statusRunning
	statusStopped
)

type HTTPClient interface {
	ID() string
	// Request issues the request and blocks for the response.
	Request(request *http.Request) (*Response, error)
	// RequestAsync enqueues the request and returns a handle the
	// caller can await.
	RequestAsync(request *http.Request) TrackableRequest
	// Handle issues the request and routes the outcome: onSuccess for
	// 2xx responses only, onFailure for everything else (non-2xx
	// status or transport error). Handlers are scoped to this call.
	Handle(request *http.Request, onSuccess func(*Response), onFailure func(*Response, error))
	Status() int32
	Stop()
}

type httpClient struct {
	id           string
	baseClient   *http.Client
	queue        chan *trackableRequest
	logger       zerolog.Logger
	interceptors []Interceptor
	workerSize   int32
	numWorkers   int32
	status       int32
	stopChan     chan struct{}
}

func (c *httpClient) ID() string {
	return c.id
}

func (c *httpClient) Status() int32 {
	return atomic.LoadInt32(&c.status)
}

func (c *httpClient) Request(request *http.Request) (*Response, error) {
	return c.RequestAsync(request).WaitAndGetResponse()
}

func (c *httpClient) RequestAsync(request *http.Request) TrackableRequest {
	tr := newTrackableRequest(request)
	if c.Status() == statusStopped {
		tr.response.reject(errors.Errorf("client %s is stopped", c.id))
		return tr
	}
	atomic.CompareAndSwapInt32(&c.status, statusIdle, statusRunning)
	c.maybeStartWorker()
	select {
	case c.queue <- tr:
	case <-c.stopChan:
		tr.response.reject(errors.Errorf("client %s is stopped", c.id))
	}
	return tr
}

func (c *httpClient) Handle(request *http.Request, onSuccess func(*Response), onFailure func(*Response, error)) {
	resp, err := c.Request(request)
	if err != nil {
		onFailure(nil, err)
		return
	}
	if !resp.Success() {
		onFailure(resp, nil)
		return
	}
	onSuccess(resp)
}

func (c *httpClient) Stop() {
	if atomic.CompareAndSwapInt32(&c.status, statusRunning, statusStopped) ||
		atomic.CompareAndSwapInt32(&c.status, statusIdle, statusStopped) {
		close(c.stopChan)
		c.baseClient.CloseIdleConnections()
		c.logger.Info().Msg("client stopped")
	}
}

// maybeStartWorker lazily spins workers up to workerSize.
func (c *httpClient) maybeStartWorker() {
	for {
		n := atomic.LoadInt32(&c.numWorkers)
		if n >= c.workerSize {
			return
		}
		if atomic.CompareAndSwapInt32(&c.numWorkers, n, n+1) {
			go c.workerLoop(n)
			return
		}
	}
}

func (c *httpClient) workerLoop(workerID int32) {
	workerLogger := c.logger.With().Int32("worker", workerID).Logger()
	workerLogger.Debug().Msg("worker started")
	for {
		select {
		case <-c.stopChan:
			workerLogger.Debug().Msg("worker stopped")
			return
		case tr := <-c.queue:
			c.executeRequest(workerLogger, tr)
		}
	}
}

func (c *httpClient) executeRequest(workerLogger zerolog.Logger, tr *trackableRequest) {
	defer tr.complete()
	resp, err := intercept(c.interceptors, tr.getRequest(), c.doRequest)
	if err != nil {
		workerLogger.Warn().Str("request", tr.ID()).Err(err).Msg("request failed")
		tr.response.reject(err)
		return
	}
	workerLogger.Debug().
		Str("request", tr.ID()).
		Str("uri", resp.URI).
		Int("status", resp.Code).
		Msg("request resolved")
	tr.response.resolve(resp)
}

func (c *httpClient) doRequest(request *Request) (*Response, error) {
	rawResponse, err := c.baseClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "request execution failed")
	}
	resp, err := fromRawResponse(rawResponse)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return resp, nil
}
