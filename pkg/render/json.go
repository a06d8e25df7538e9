package render

import (
	"encoding/json"

	"github.com/matzehuels/iconsvg/pkg/svg"
)

// encodeJSON writes res with its body already processed, for clients that
// build their own elements.
func encodeJSON(res svg.Result, opts ...Option) ([]byte, error) {
	body, err := Body(res, opts...)
	if err != nil {
		return nil, err
	}
	res.Body = body
	return json.MarshalIndent(res, "", "  ")
}
