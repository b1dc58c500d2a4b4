package client

import (
	"net/http"

	"github.com/GriffinCanCode/wpapi/apierr"
	"github.com/GriffinCanCode/wpapi/transport"
	"github.com/bytedance/sonic"
)

// errorCodeKey marks a WP_Error payload returned with a 2xx status
const errorCodeKey = "code"

// resultJSON rejects strings that are not valid UTF-8
var resultJSON = sonic.Config{ValidateString: true}.Froze()

// Classify turns a response into a Result or one of the apierr failures
func Classify(method, uri string, resp *transport.Response) (Result, error) {
	body := string(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return Result{}, &apierr.NotFoundError{Method: method, URI: uri, Body: body}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, &apierr.ProtocolError{
			Reason:     apierr.ReasonUnexpectedStatus,
			Method:     method,
			URI:        uri,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var decoded any
	if err := resultJSON.Unmarshal(resp.Body, &decoded); err != nil {
		return Result{}, protocolError(apierr.ReasonInvalidResult, method, uri, resp)
	}

	switch v := decoded.(type) {
	case map[string]any:
		if code, ok := v[errorCodeKey]; ok && code != nil {
			return Result{}, protocolError(apierr.ReasonErrorPayload, method, uri, resp)
		}
		return Result{raw: resp.Body, value: v}, nil
	case []any:
		return Result{raw: resp.Body, value: v}, nil
	default:
		return Result{}, protocolError(apierr.ReasonInvalidResult, method, uri, resp)
	}
}

func protocolError(reason, method, uri string, resp *transport.Response) *apierr.ProtocolError {
	return &apierr.ProtocolError{
		Reason:     reason,
		Method:     method,
		URI:        uri,
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
}
