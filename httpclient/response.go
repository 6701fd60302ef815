package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// Response is a fully-consumed HTTP response.
type Response struct {
	Code   int
	Header http.Header // usage just like map, ["headerKey"] gives an array of strings
	Body   []byte
	URI    string
}

func (r *Response) Success() bool {
	return r.Code >= 200 && r.Code < 300
}

func (r *Response) Text() string {
	return string(r.Body)
}

// ParseJSONResponseBody decodes the response body into T.
func ParseJSONResponseBody[T any](resp *Response) (holder T, err error) {
	err = json.Unmarshal(resp.Body, &holder)
	if err != nil {
		err = errors.Wrapf(err, "failed to decode JSON body of %s", resp.URI)
	}
	return
}

// ParseHTMLResponseBody parses the response body into a queryable HTML
// document tree.
func ParseHTMLResponseBody(resp *Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse HTML body of %s", resp.URI)
	}
	return doc, nil
}

func fromRawResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close() // very important for reusing connections in go http client
	uri := resp.Request.URL.Path
	statusCode := resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	return &Response{statusCode, resp.Header, body, uri}, err
}

type awaitableResponse struct {
	response *Response
	err      error
	cond     *sync.Cond
	isClosed atomic.Bool
}

type AwaitableResponse interface {
	Wait()
	Get() (*Response, error)
}

func newAwaitableResponse() *awaitableResponse {
	return &awaitableResponse{cond: sync.NewCond(&sync.Mutex{})}
}

func (ar *awaitableResponse) Wait() {
	ar.cond.L.Lock()
	for !ar.isClosed.Load() {
		ar.cond.Wait()
	}
	ar.cond.L.Unlock()
}

func (ar *awaitableResponse) Get() (*Response, error) {
	ar.Wait()
	return ar.response, ar.err
}

func (ar *awaitableResponse) resolve(resp *Response) {
	ar.cond.L.Lock()
	if !ar.isClosed.Load() {
		ar.response = resp
		ar.isClosed.Store(true)
		ar.cond.Broadcast()
	}
	ar.cond.L.Unlock()
}

func (ar *awaitableResponse) reject(err error) {
	ar.cond.L.Lock()
	if !ar.isClosed.Load() {
		ar.err = err
		ar.isClosed.Store(true)
		ar.cond.Broadcast()
	}
	ar.cond.L.Unlock()
}
