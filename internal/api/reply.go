package api

import (
	"bytes"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/hotmess/internal/errors"
)

// ExtractReply pulls the assistant text out of a chat response body.
//
// It returns the first non-empty string found under ReplyPaths. found is
// false when the body is valid JSON but carries none of them. A body that is
// not JSON, or is the JSON literal null, is a parse error.
func ExtractReply(body []byte) (reply string, found bool, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !gjson.ValidBytes(trimmed) {
		return "", false, apierrors.NewParseError("response body is not valid JSON", "chat")
	}

	parsed := gjson.ParseBytes(trimmed)
	if parsed.Type == gjson.Null {
		return "", false, apierrors.NewParseError("response body is null", "chat")
	}
	if !parsed.IsObject() {
		return "", false, nil
	}

	for _, path := range ReplyPaths {
		value := parsed.Get(path)
		if value.Type == gjson.String && value.String() != "" {
			return value.String(), true, nil
		}
	}

	return "", false, nil
}
