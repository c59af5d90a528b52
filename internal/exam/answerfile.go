package exam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseAnswers decodes an answers file. Two shapes are accepted: a map from
// question id to answer, and a list of UserAnswer objects. Statuses missing
// from the file are derived from the answer.
func ParseAnswers(data []byte) (map[int]UserAnswer, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty answers file")
	}

	out := make(map[int]UserAnswer)
	if data[0] == '[' {
		var list []UserAnswer
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode answer list: %w", err)
		}
		for _, ua := range list {
			if ua.Status == "" {
				ua.Status = statusFor(ua.Answer, false)
			}
			out[ua.QuestionID] = ua
		}
		return out, nil
	}

	var raw map[string]Answer
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode answer map: %w", err)
	}
	for k, a := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("answer key %q is not a question id", k)
		}
		out[id] = UserAnswer{QuestionID: id, Answer: a, Status: statusFor(a, false)}
	}
	return out, nil
}
