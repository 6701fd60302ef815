package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Trackable Request
type trackableRequest struct {
	id         string
	cancelFunc func()
	request    *http.Request
	response   *awaitableResponse
}

type TrackableRequest interface {
	ID() string
	WaitAndGetResponse() (*Response, error)
}

func newTrackableRequest(request *http.Request) *trackableRequest {
	var (
		ctx        context.Context
		cancelFunc func()
	)
	if timeoutVal := request.Context().Value(ctxKeyTimeout); timeoutVal != nil {
		ctx, cancelFunc = context.WithTimeout(request.Context(), timeoutVal.(time.Duration))
	} else {
		ctx, cancelFunc = context.WithCancel(request.Context())
	}
	request = request.WithContext(ctx)
	return &trackableRequest{uuid.NewString(), cancelFunc, request, newAwaitableResponse()}
}

func (tr *trackableRequest) ID() string {
	return tr.id
}

// complete releases the timeout context timer.
func (tr *trackableRequest) complete() {
	if tr.cancelFunc != nil {
		tr.cancelFunc()
		tr.cancelFunc = nil
	}
}

func (tr *trackableRequest) getRequest() *http.Request {
	return tr.request
}

func (tr *trackableRequest) WaitAndGetResponse() (*Response, error) {
	return tr.response.Get()
}
