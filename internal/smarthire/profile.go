package smarthire

import (
	"context"
	"fmt"
	"net/http"
)

const profilePath = "/cv/me"

type profileResponse struct {
	ID       any  `json:"id"`
	Uploaded bool `json:"uploaded"`
}

// MyProfile reports whether the session has a resume on file, and its id.
// Any non-2xx response means "no profile", not an error; only transport
// failures are surfaced.
func (c *Client) MyProfile(ctx context.Context) (bool, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+profilePath, nil)
	if err != nil {
		return false, "", err
	}
	req = c.setHeaders(req)

	if err := c.limiter.Wait(ctx); err != nil {
		return false, "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", nil
	}

	var profile profileResponse
	if err := decodeBody(resp, &profile); err != nil {
		return false, "", err
	}

	id := valueAsString(profile.ID)
	return id != "", id, nil
}

// valueAsBool folds the backend's mixed boolean shapes (true, 1, "1", "true")
// into a bool, the same weak typing normalizeItem applies to ids.
func valueAsBool(v any) bool {
	switch typed := v.(type) {
	case bool:
		return typed
	case float64:
		return typed != 0
	case string:
		return typed == "true" || typed == "1"
	default:
		return false
	}
}

func valueAsString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return fmt.Sprintf("%.0f", typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
