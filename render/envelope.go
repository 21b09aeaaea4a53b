package render

import (
	"net/http"
	"reflect"
)

// Envelope wraps every response body unless a route opts out.
type Envelope struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Message    string `json:"message" yaml:"message"`
	IsSuccess  bool   `json:"is_success" yaml:"is_success"`
	Error      any    `json:"error" yaml:"error"`
	Response   any    `json:"response" yaml:"response"`
}

// StatusMessage returns the text used as the envelope message.
func StatusMessage(status int) string {
	return http.StatusText(status)
}

// Success wraps data returned with a 2xx status.
func Success(status int, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Message:    StatusMessage(status),
		IsSuccess:  true,
		Response:   data,
	}
}

// Failure wraps an error record.
func Failure(status int, record any) Envelope {
	return Envelope{
		StatusCode: status,
		Message:    StatusMessage(status),
		Error:      record,
	}
}

// Wrap applies the envelope rules to a body that did not come from the error
// mapper: 2xx bodies become successes, 4xx bodies become unsuccessful
// envelopes carrying the body as response, and everything else (including
// values that already are envelopes) is returned unchanged.
func Wrap(status int, data any) any {
	if isEnvelope(data) {
		return data
	}
	switch {
	case status >= 200 && status < 300:
		return Success(status, data)
	case status >= 400 && status < 500:
		return Envelope{
			StatusCode: status,
			Message:    StatusMessage(status),
			Response:   data,
		}
	}
	return data
}

// isEnvelope also accepts any string-keyed map (gin.H included) that already
// carries a status_code.
func isEnvelope(data any) bool {
	switch v := data.(type) {
	case Envelope, *Envelope:
		return true
	case map[string]any:
		_, ok := v["status_code"]
		return ok
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return false
	}
	key := reflect.ValueOf("status_code").Convert(rv.Type().Key())
	return rv.MapIndex(key).IsValid()
}
