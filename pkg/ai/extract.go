package ai

import "encoding/json"

// ExtractText normalizes the successful response shapes the upstream is
// known to produce into plain text:
//
//   - a bare JSON string,
//   - an object with a top-level "text" field,
//   - a structured output array of messages with text content parts.
//
// Any other shape is an extraction error.
func ExtractText(resp *Response) (string, error) {
	if resp == nil || len(resp.raw) == 0 {
		return "", &Error{Kind: ErrKindExtraction, Message: "empty response"}
	}

	// Bare string.
	var s string
	if err := json.Unmarshal(resp.raw, &s); err == nil {
		return s, nil
	}

	// {"text": "..."}.
	var textField struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(resp.raw, &textField); err == nil && textField.Text != nil {
		return *textField.Text, nil
	}

	// {"output": [{"type": "message", "content": [{"type": "output_text", "text": "..."}]}]}.
	var structured struct {
		Output []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(resp.raw, &structured); err == nil {
		for _, item := range structured.Output {
			if item.Type != "message" {
				continue
			}
			for _, part := range item.Content {
				if part.Type == "output_text" && part.Text != "" {
					return part.Text, nil
				}
			}
		}
	}

	return "", &Error{
		Kind:    ErrKindExtraction,
		Message: "no text output in response",
		Body:    truncate(string(resp.raw)),
	}
}
