package aida

import "strings"

// ExtractCompletionText pulls the reply text out of a decoded gateway
// response. The gateway may answer in the chat-completions shape, the
// OpenResponses shape, or as a bare {"content": "..."} object.
func ExtractCompletionText(data interface{}) string {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}

	// chat-completions: choices[0].message.content
	if choices, ok := obj["choices"].([]interface{}); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]interface{}); ok {
			if message, ok := choice["message"].(map[string]interface{}); ok {
				if content, ok := message["content"].(string); ok && strings.TrimSpace(content) != "" {
					return content
				}
			}
		}
	}

	// OpenResponses: output[].content[].text for output_text parts
	if output, ok := obj["output"].([]interface{}); ok {
		var parts []string
		for _, rawItem := range output {
			item, ok := rawItem.(map[string]interface{})
			if !ok || item["type"] != "message" {
				continue
			}
			contents, ok := item["content"].([]interface{})
			if !ok {
				continue
			}
			for _, rawContent := range contents {
				content, ok := rawContent.(map[string]interface{})
				if !ok || content["type"] != "output_text" {
					continue
				}
				if text, ok := content["text"].(string); ok {
					parts = append(parts, text)
				}
			}
		}
		joined := strings.TrimSpace(strings.Join(parts, ""))
		if joined != "" {
			return joined
		}
	}

	if content, ok := obj["content"].(string); ok && strings.TrimSpace(content) != "" {
		return content
	}

	return ""
}
