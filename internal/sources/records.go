package sources

import (
	"codefolio/internal/providers"

	json "github.com/goccy/go-json"
)

// decodeEach decodes list items one by one so a single malformed entry is
// dropped instead of failing the whole payload.
func decodeEach[T any](logger providers.Logger, platform string, items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for i, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			logger.Warnf(providers.TypeSource, "%s: dropping item %d: %v", platform, i, err)
			continue
		}
		out = append(out, v)
	}
	return out
}
