package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/wpapi/client"
	"github.com/bytedance/sonic"
)

// parseItems splits command line items into body data and query parameters
func parseItems(method string, items []string) (client.Data, client.Query, error) {
	data := client.Data{}
	query := client.Query{}
	bodyless := method == http.MethodGet || method == http.MethodDelete

	for _, item := range items {
		eq := strings.Index(item, "=")
		at := strings.Index(item, "@")

		switch {
		case eq > 0 && (at < 0 || eq < at):
			if item[eq-1] == ':' {
				key := item[:eq-1]
				if key == "" {
					return nil, nil, fmt.Errorf("invalid item %q: empty key", item)
				}
				var v any
				if err := sonic.UnmarshalString(item[eq+1:], &v); err != nil {
					return nil, nil, fmt.Errorf("invalid JSON in item %q: %w", item, err)
				}
				data[key] = v
				continue
			}
			key, value := item[:eq], item[eq+1:]
			if bodyless {
				query[key] = value
			} else {
				data[key] = value
			}
		case at > 0:
			file, err := client.OpenFile(item[at+1:])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid item %q: %w", item, err)
			}
			data[item[:at]] = file
		default:
			return nil, nil, fmt.Errorf("invalid item %q: expected key=value, key:=json or field@path", item)
		}
	}

	if bodyless && len(data) > 0 {
		return nil, nil, fmt.Errorf("%s requests cannot carry a body", method)
	}
	return data, query, nil
}
