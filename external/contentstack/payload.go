package contentstack

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

type entriesEnvelope struct {
	Entries []map[string]any `json:"entries"`
}

type entryEnvelope struct {
	Entry struct {
		UID string `json:"uid"`
	} `json:"entry"`
}

type errorEnvelope struct {
	ErrorMessage string         `json:"error_message"`
	ErrorCode    int            `json:"error_code"`
	Errors       map[string]any `json:"errors"`
}

func errorMessage(raw []byte) string {
	var payload errorEnvelope
	if err := sonic.Unmarshal(raw, &payload); err == nil && payload.ErrorMessage != "" {
		return payload.ErrorMessage
	}
	return abbreviateBody(raw)
}

func abbreviateBody(raw []byte) string {
	const max = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= max {
		return text
	}
	return text[:max] + "...(truncated)"
}
