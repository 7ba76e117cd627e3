package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"arguminds/internal/domain"
)

// ExtractJSONObject decodes the JSON object embedded in a model answer.
// Models sometimes wrap the object in prose or a markdown fence, so the span
// from the first '{' to the last '}' is decoded.
func ExtractJSONObject(raw string) (map[string]interface{}, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in answer", domain.ErrInvalidAIResponse)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAIResponse, err)
	}

	return obj, nil
}
