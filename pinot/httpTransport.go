package pinot

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	applicationJSON = "application/json"
)

// HTTPClient is an interface for http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// httpTransport executes every controller and broker request of a fetcher.
type httpTransport struct {
	client  HTTPClient
	config  *ClusterConfig
	monitor RequestMonitor
}

type httpResponse struct {
	statusCode int
	body       []byte
}

// getURL joins an address and an API path. Addresses without a scheme default to http.
func getURL(address string, path string) (string, error) {
	tokenized := strings.Split(address, "://")
	addressWithScheme := address
	if len(tokenized) > 1 {
		scheme := tokenized[0]
		if scheme != "https" && scheme != "http" {
			return "", newClusterError(
				CodeInvalidConfiguration, nil,
				"unsupported URL scheme: %s, only http (default) and https are allowed",
				scheme,
			)
		}
	} else {
		addressWithScheme = "http://" + address
	}
	return strings.TrimSuffix(addressWithScheme, "/") + "/" + path, nil
}

func isValidPinotHTTPResponseCode(status int) bool {
	return status >= 200 && status < 300
}

func (t *httpTransport) createHTTPRequest(url string, body []byte, rpcService string) (*http.Request, error) {
	var reader io.Reader
	method := http.MethodGet
	if body != nil {
		reader = bytes.NewReader(body)
		method = http.MethodPost
	}
	r, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Error("Invalid HTTP Request", err)
		return nil, err
	}
	r.Header.Set("Accept", applicationJSON)
	if body != nil {
		r.Header.Set("Content-Type", applicationJSON)
	}
	if rpcService != "" {
		r.Header.Set(t.config.CallerHeaderParam, t.config.CallerHeaderValue)
		r.Header.Set(t.config.ServiceHeaderParam, rpcService)
	}
	for k, v := range t.config.ExtraHTTPHeaders {
		r.Header.Set(k, v)
	}
	return r, nil
}

// doHTTPActionWithHeaders sends one request and returns the raw body of a 2xx response.
// The request duration is reported to the monitor whether or not the request succeeds.
func (t *httpTransport) doHTTPActionWithHeaders(url string, body []byte, rpcService string) ([]byte, error) {
	req, err := t.createHTTPRequest(url, body, rpcService)
	if err != nil {
		return nil, err
	}

	var resp *httpResponse
	var duration time.Duration
	func() {
		start := time.Now()
		defer func() {
			duration = time.Since(start)
		}()
		resp, err = t.send(req)
	}()
	statusCode := 0
	if resp != nil {
		statusCode = resp.statusCode
	}
	t.monitor.MonitorRequest(req, statusCode, duration)
	if err != nil {
		log.Errorf("Got exceptions while sending request to %s, Error: %v", url, err)
		return nil, err
	}

	if isValidPinotHTTPResponseCode(resp.statusCode) {
		return resp.body, nil
	}
	return nil, &HTTPError{
		StatusCode:  resp.statusCode,
		URI:         req.URL.String(),
		Header:      req.Header.Clone(),
		Body:        string(resp.body),
		RequestBody: string(body),
	}
}

func (t *httpTransport) send(req *http.Request) (*httpResponse, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("Unable to close response body. ", err)
		}
	}()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("an error occurred when reading response from %s: %w", req.URL, err)
	}
	return &httpResponse{statusCode: resp.StatusCode, body: bodyBytes}, nil
}

func (t *httpTransport) sendHTTPGetToController(path string) ([]byte, error) {
	if len(t.config.ControllerURLs) == 0 {
		return nil, newClusterError(CodeInvalidConfiguration, nil, "no pinot controllers specified")
	}
	url, err := getURL(selectAddress(t.config.ControllerURLs), path)
	if err != nil {
		return nil, err
	}
	return t.doHTTPActionWithHeaders(url, nil, t.config.ControllerRestService)
}

func (t *httpTransport) sendHTTPGetToBroker(brokerHost string, path string) ([]byte, error) {
	url, err := getURL(brokerHost, path)
	if err != nil {
		return nil, err
	}
	return t.doHTTPActionWithHeaders(url, nil, "")
}
