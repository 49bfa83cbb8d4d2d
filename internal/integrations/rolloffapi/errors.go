package rolloffapi

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindTransport: запрос не завершился (сеть, таймаут, битое тело ответа).
	KindTransport Kind = iota + 1
	// KindHTTP: сервер ответил не-2xx.
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	}
	return "unknown"
}

// RequestError is returned by every Client method on a non-2xx response or a transport failure.
// ServerMessage holds the {"error": "..."} body when the server sent one.
type RequestError struct {
	Op            string
	Kind          Kind
	StatusCode    int
	ServerMessage string
	Err           error
}

func (e *RequestError) Error() string {
	switch {
	case e.Kind == KindHTTP && e.ServerMessage != "":
		return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, e.ServerMessage)
	case e.Kind == KindHTTP:
		return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": request failed"
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Transport() bool { return e.Kind == KindTransport }

func (e *RequestError) NotFound() bool {
	return e.Kind == KindHTTP && e.StatusCode == http.StatusNotFound
}

func (e *RequestError) Conflict() bool {
	return e.Kind == KindHTTP && e.StatusCode == http.StatusConflict
}

// HTTPError builds the error a server-side failure maps to. Used by fakes and tests.
func HTTPError(op string, status int, msg string) *RequestError {
	return &RequestError{Op: op, Kind: KindHTTP, StatusCode: status, ServerMessage: msg}
}

func TransportError(op string, err error) *RequestError {
	return &RequestError{Op: op, Kind: KindTransport, Err: err}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}
