package mcp

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/llmstxt"
)

type fetchArgs struct {
	URL  *string  `json:"url"`
	URLs []string `json:"urls"`
}

// ParseFetchInput normalizes fetch_llms_txt arguments into an ordered list of
// locations. It accepts {"url": "..."}, {"urls": [...]} (url first when both
// are present) and a bare JSON array of strings. The result is never empty.
func ParseFetchInput(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)

	var inputs []string
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "invalid arguments: expected an array of strings: %v", err)
		}
	default:
		var args fetchArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "invalid arguments: %v", err)
		}
		if args.URL != nil {
			inputs = append(inputs, *args.URL)
		}
		inputs = append(inputs, args.URLs...)
	}

	if len(inputs) == 0 {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, `a location is required: pass {"url": "..."} or {"urls": ["..."]}`)
	}
	return inputs, nil
}
