package adapter

import "strings"

var (
	metadataModelKeys = []string{
		"model",
		"model_id",
		"selected_model",
		"selectedModel",
		"modelName",
		"default_model",
	}
	nestedModelContainers = []string{"default_params", "request", "options", "config"}
	nestedModelKeys       = []string{"model", "model_id", "selected_model"}
)

// ResolveModel finds the model name recorded in request metadata, falling
// back to fallback. It returns "" when nothing usable is found.
func ResolveModel(metadata map[string]any, fallback string) string {
	if model := modelFromMetadata(metadata); model != "" {
		return model
	}
	return strings.TrimSpace(fallback)
}

func modelFromMetadata(metadata map[string]any) string {
	for _, key := range metadataModelKeys {
		if model := trimmedString(metadata[key]); model != "" {
			return model
		}
	}

	for _, container := range nestedModelContainers {
		nested, ok := metadata[container].(map[string]any)
		if !ok {
			continue
		}
		// The first string-valued key decides for this container, even when
		// it is blank.
		for _, key := range nestedModelKeys {
			if s, ok := nested[key].(string); ok {
				if model := strings.TrimSpace(s); model != "" {
					return model
				}
				break
			}
		}
	}
	return ""
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
