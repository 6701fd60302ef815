// Package fetch offers the low-level, one-shot access styles for the
// demo endpoints: whole-body text fetch, manual line-buffered reads,
// scoped readers with guaranteed release, and form POSTs. Anything
// fancier (pooling, handlers, content negotiation) lives in httpclient.
package fetch

import (
	"bufio"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zscgrhg/httpkit/logging"
)

var defaultClient = &http.Client{Timeout: 30 * time.Second}

var logger = logging.For("fetch")

// Result is a fully-read response. The body is only reachable through
// Text/Bytes, which refuse to hand out payloads of non-2xx answers.
type Result struct {
	Status int
	URL    string
	body   []byte
}

// Text returns the body as a string. Accessing the body of a non-2xx
// response is an error carrying the status, matching the behavior of
// reading the input stream of a failed URL connection.
func (r *Result) Text() (string, error) {
	b, err := r.Bytes()
	return string(b), err
}

func (r *Result) Bytes() ([]byte, error) {
	if r.Status < 200 || r.Status >= 300 {
		return nil, &StatusError{Code: r.Status, URL: r.URL}
	}
	return r.body, nil
}

// ParseURL validates a raw address before any network use. Only http
// and https schemes are accepted; everything else is an InvalidURLError
// raised at construction time.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &InvalidURLError{Raw: raw, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &InvalidURLError{Raw: raw, Err: errors.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &InvalidURLError{Raw: raw, Err: errors.New("missing host")}
	}
	return u, nil
}

// Get issues one GET and drains the body regardless of status, so the
// underlying connection is always reusable. Status interpretation is
// deferred to the Result accessors.
func Get(rawurl string) (*Result, error) {
	u, err := ParseURL(rawurl)
	if err != nil {
		return nil, err
	}
	resp, err := defaultClient.Get(u.String())
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s failed", rawurl)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body of %s", rawurl)
	}
	logger.Debug().Str("url", rawurl).Int("status", resp.StatusCode).Msg("GET done")
	return &Result{Status: resp.StatusCode, URL: rawurl, body: body}, nil
}

// Text fetches the full response body of a GET as text.
func Text(rawurl string) (string, error) {
	res, err := Get(rawurl)
	if err != nil {
		return "", err
	}
	return res.Text()
}

// Lines reads the response line by line into a slice, the manual
// buffered-read style. Joining with "\n" reproduces the body modulo a
// trailing newline.
func Lines(rawurl string) ([]string, error) {
	var lines []string
	err := WithReader(rawurl, func(r *bufio.Reader) error {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		return errors.Wrap(scanner.Err(), "line scan failed")
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// WithReader opens a buffered reader over the response stream, hands it
// to fn, and closes the stream on every path. A non-2xx status is
// reported before fn ever runs.
func WithReader(rawurl string, fn func(*bufio.Reader) error) error {
	u, err := ParseURL(rawurl)
	if err != nil {
		return err
	}
	resp, err := defaultClient.Get(u.String())
	if err != nil {
		return errors.Wrapf(err, "GET %s failed", rawurl)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: rawurl}
	}
	return fn(bufio.NewReader(resp.Body))
}

// PostForm submits form values and returns the response body as text.
// Non-2xx answers surface as StatusError, same as the GET paths.
func PostForm(rawurl string, form url.Values) (string, error) {
	u, err := ParseURL(rawurl)
	if err != nil {
		return "", err
	}
	resp, err := defaultClient.Post(u.String(),
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrapf(err, "POST %s failed", rawurl)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read body of %s", rawurl)
	}
	logger.Debug().Str("url", rawurl).Int("status", resp.StatusCode).Msg("POST done")
	res := &Result{Status: resp.StatusCode, URL: rawurl, body: body}
	return res.Text()
}
