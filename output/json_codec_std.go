//go:build !jsonv2

package output

import "encoding/json"

// Codec seam: building with -tags jsonv2 swaps in encoding/json/v2
// without touching call sites.

func marshalJSON(value any) ([]byte, error) {
	return json.Marshal(value)
}

func marshalJSONIndent(value any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(value, prefix, indent)
}
