package executor

import (
	"encoding/json"
	"strings"
)

// decodeOutput turns captured process output into result fields.
//
// Stdout that parses as a JSON object is treated as the tool protocol:
// its "status" field decides success and "data" plus "message"/"error"
// are lifted into the result. Stdout that parses as any other JSON
// value becomes the data wholesale, and stdout that is not JSON is kept
// as raw text data; in both of those cases success follows the exit
// code. Stderr is only consulted when the process exited non-zero with
// no usable stdout.
func decodeOutput(stdout, stderr string, exitCode int) (success bool, data any, errMsg string) {
	if strings.TrimSpace(stdout) != "" {
		var parsed any
		if err := json.Unmarshal([]byte(stdout), &parsed); err == nil {
			if obj, ok := parsed.(map[string]any); ok {
				status, _ := obj["status"].(string)
				errMsg = stringField(obj, "message")
				if errMsg == "" {
					errMsg = stringField(obj, "error")
				}
				return status == "success", obj["data"], errMsg
			}
			return exitCode == 0, parsed, ""
		}
		return exitCode == 0, stdout, ""
	}

	if exitCode == 0 {
		return true, nil, ""
	}
	return false, nil, stderrMessage(stderr)
}

// stderrMessage extracts an error message from stderr, preferring the
// structured form when stderr happens to be a JSON object.
func stderrMessage(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return ""
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		if obj, ok := parsed.(map[string]any); ok {
			if msg := stringField(obj, "message"); msg != "" {
				return msg
			}
			if msg := stringField(obj, "error"); msg != "" {
				return msg
			}
		}
	}
	return trimmed
}

func stringField(obj map[string]any, key string) string {
	value, _ := obj[key].(string)
	return value
}
