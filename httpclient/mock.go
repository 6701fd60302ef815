package httpclient

import (
	"net/http"
	"sync"

	"github.com/pkg/errors"
)

// MockHTTPClient is a test double for HTTPClient returning predefined
// responses keyed by request method and URL.
type MockHTTPClient struct {
	responses    map[string][]*Response
	requestCount map[string]int
	mutex        sync.Mutex
}

func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		responses:    make(map[string][]*Response),
		requestCount: make(map[string]int),
	}
}

func (m *MockHTTPClient) ID() string {
	return "mock-client"
}

func (m *MockHTTPClient) Status() int32 {
	return statusRunning
}

func (m *MockHTTPClient) Stop() {}

// Request returns the next predefined response for the request; once a
// sequence is exhausted its last response keeps being served.
func (m *MockHTTPClient) Request(request *http.Request) (*Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := m.requestKey(request)
	seq, exists := m.responses[key]
	if !exists {
		return nil, errors.New("no predefined response for request")
	}
	respIndex := m.requestCount[key]
	if respIndex >= len(seq) {
		respIndex = len(seq) - 1
	}
	m.requestCount[key]++
	return seq[respIndex], nil
}

func (m *MockHTTPClient) RequestAsync(request *http.Request) TrackableRequest {
	tr := newTrackableRequest(request)
	defer tr.complete()
	r, e := m.Request(request)
	if e != nil {
		tr.response.reject(e)
	} else {
		tr.response.resolve(r)
	}
	return tr
}

func (m *MockHTTPClient) Handle(request *http.Request, onSuccess func(*Response), onFailure func(*Response, error)) {
	resp, err := m.Request(request)
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

// SetResponseForRequest configures a single response for a request.
func (m *MockHTTPClient) SetResponseForRequest(request *http.Request, response *Response) {
	m.SetResponsesForRequest(request, []*Response{response})
}

// SetResponsesForRequest configures a response sequence for a request.
func (m *MockHTTPClient) SetResponsesForRequest(request *http.Request, responses []*Response) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := m.requestKey(request)
	m.responses[key] = responses
	m.requestCount[key] = 0
}

// Reset clears all configured responses and request counts.
func (m *MockHTTPClient) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.responses = make(map[string][]*Response)
	m.requestCount = make(map[string]int)
}

func (m *MockHTTPClient) requestKey(request *http.Request) string {
	return request.Method + ":" + request.URL.String()
}
