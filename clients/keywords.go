package clients

import (
	"context"
	"strings"
)

type keywordsReq struct {
	Text string `json:"text"`
	Max  int    `json:"max_keywords,omitempty"`
}

type keywordsResp struct {
	Keywords []string `json:"keywords"`
}

// ExtractKeywords asks the keyword service for the topic terms of text,
// in the service's order, with blanks and duplicates removed.
func (h *HTTP) ExtractKeywords(ctx context.Context, ep Endpoint, text string, max int) ([]string, error) {
	var out keywordsResp
	if err := h.postJSON(ctx, ep, "/keywords", "keywords", keywordsReq{Text: text, Max: max}, &out); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(out.Keywords))
	kw := make([]string, 0, len(out.Keywords))
	for _, k := range out.Keywords {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		kw = append(kw, k)
	}
	return kw, nil
}
