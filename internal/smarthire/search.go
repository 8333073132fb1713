package smarthire

import (
	"context"
	"fmt"

	"github.com/smarthire/smarthire-cli/internal/match"
)

const searchPath = "/search/advanced"

const defaultLimit = 20

type searchResponse struct {
	Success      bool             `json:"success"`
	TotalResults int              `json:"totalResults"`
	ModeUsed     string           `json:"modeUsed"`
	Results      []map[string]any `json:"results"`
	Error        string           `json:"error"`
}

// AdvancedSearch runs one ranked search against the requested collection and
// normalizes every result before core code sees it. A non-2xx response is
// propagated as a search error; no partial results are returned.
func (c *Client) AdvancedSearch(ctx context.Context, req *match.SearchRequest) (*match.ResultPage, error) {
	if req.Limit <= 0 {
		req = &match.SearchRequest{
			Query:   req.Query,
			Filters: req.Filters,
			Target:  req.Target,
			Mode:    req.Mode,
			Limit:   defaultLimit,
		}
	}

	var resp searchResponse
	if err := c.postJSON(ctx, c.APIURL+searchPath, req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("search: %s", resp.Error)
	}

	items := make([]match.Item, 0, len(resp.Results))
	for _, raw := range resp.Results {
		item, err := normalizeItem(req.Target, raw)
		if err != nil {
			return nil, fmt.Errorf("normalize result: %w", err)
		}
		items = append(items, item)
	}

	return &match.ResultPage{
		Items:    items,
		Total:    resp.TotalResults,
		ModeUsed: match.Mode(resp.ModeUsed),
	}, nil
}
