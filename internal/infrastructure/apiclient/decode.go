package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// envelopeMarkers identify the {success, data, message} wrapper some backend
// controllers return instead of the bare resource.
var envelopeMarkers = []string{"success", "statusCode", "message"}

// unwrap returns the resource inside an envelope, or the body unchanged.
func unwrap(body []byte) gjson.Result {
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return parsed
	}
	data := parsed.Get("data")
	if !data.Exists() {
		return parsed
	}
	for _, marker := range envelopeMarkers {
		if parsed.Get(marker).Exists() {
			return data
		}
	}
	// {"data": ...} alone is also an envelope
	if len(parsed.Map()) == 1 {
		return data
	}
	return parsed
}

// DecodeData decodes a single resource, unwrapping envelopes.
func DecodeData(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("response is not valid JSON")
	}
	return json.Unmarshal([]byte(unwrap(body).Raw), out)
}

// listKeys are where list endpoints put their items.
var listKeys = []string{"items", "data", "docs", "results"}

// totalKeys are where list endpoints put the total count.
var totalKeys = []string{"total", "meta.total", "pagination.total", "totalItems", "count"}

// DecodeList decodes a list payload that is either a bare array or an object
// holding the array under a well-known key, with an optional total count.
// When no total is present, the item count is returned.
func DecodeList[T any](body []byte) ([]T, int64, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, fmt.Errorf("response is not valid JSON")
	}

	root := unwrap(body)
	container := root
	arr := root
	if !root.IsArray() {
		found := false
		for _, key := range listKeys {
			if v := root.Get(key); v.IsArray() {
				arr, found = v, true
				break
			}
		}
		if !found {
			return nil, 0, fmt.Errorf("response holds no list")
		}
	}
	// The envelope may carry the pagination next to data
	if root.Raw != gjson.ParseBytes(body).Raw {
		container = gjson.ParseBytes(body)
	}

	items := make([]T, 0, len(arr.Array()))
	if err := json.Unmarshal([]byte(arr.Raw), &items); err != nil {
		return nil, 0, err
	}

	total := int64(len(items))
	for _, src := range []gjson.Result{root, container} {
		for _, key := range totalKeys {
			if v := src.Get(key); v.Type == gjson.Number {
				return items, v.Int(), nil
			}
		}
	}
	return items, total, nil
}
