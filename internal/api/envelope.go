package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

// DefaultErrorMessage is shown when the backend gives no usable message.
const DefaultErrorMessage = "Đã có lỗi xảy ra, vui lòng thử lại sau."

// Result is the canonical outcome of every backend call. Repository
// functions never return a Go error; failures arrive as Success=false.
type Result[T any] struct {
	Success     bool
	Message     string
	Data        T
	FieldErrors map[string][]string
}

// Failed builds an unsuccessful result, using DefaultErrorMessage when msg is empty.
func Failed[T any](msg string) Result[T] {
	if strings.TrimSpace(msg) == "" {
		msg = DefaultErrorMessage
	}
	return Result[T]{Success: false, Message: msg}
}

// Normalize reads either envelope convention. PascalCase keys win over
// camelCase ones; Success is false when neither variant is present.
func Normalize(body []byte) Result[json.RawMessage] {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Result[json.RawMessage]{}
	}

	var res Result[json.RawMessage]
	if raw, ok := pick(fields, "Success", "success"); ok {
		_ = json.Unmarshal(raw, &res.Success)
	}
	if raw, ok := pick(fields, "Message", "message"); ok {
		_ = json.Unmarshal(raw, &res.Message)
	}
	if raw, ok := pick(fields, "Data", "data"); ok && !isNull(raw) {
		res.Data = raw
	}
	res.FieldErrors = fieldErrors(fields)
	return res
}

// errorMessage pulls a human readable message out of an error response body.
func errorMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range [][2]string{{"Message", "message"}, {"Title", "title"}, {"Error", "error"}} {
		raw, ok := pick(fields, key[0], key[1])
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// fieldErrors reads a {"errors": {"Email": ["..."]}} map, as returned on registration.
func fieldErrors(fields map[string]json.RawMessage) map[string][]string {
	raw, ok := pick(fields, "Errors", "errors")
	if !ok {
		return nil
	}
	var multi map[string][]string
	if err := json.Unmarshal(raw, &multi); err == nil && len(multi) > 0 {
		return lowerKeys(multi)
	}
	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil && len(single) > 0 {
		out := make(map[string][]string, len(single))
		for k, v := range single {
			out[k] = []string{v}
		}
		return lowerKeys(out)
	}
	return nil
}

// lowerKeys turns "Email" and "email" into the same form field key.
func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		key := k
		if key != "" {
			key = strings.ToLower(key[:1]) + key[1:]
		}
		out[key] = append(out[key], v...)
	}
	return out
}

func pick(fields map[string]json.RawMessage, pascal, camel string) (json.RawMessage, bool) {
	if raw, ok := fields[pascal]; ok {
		return raw, true
	}
	raw, ok := fields[camel]
	return raw, ok
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeData converts the raw payload of a normalised result into T.
func decodeData[T any](res Result[json.RawMessage]) Result[T] {
	out := Result[T]{Success: res.Success, Message: res.Message, FieldErrors: res.FieldErrors}
	if !res.Success || isNull(res.Data) {
		return out
	}
	// Mutations that return nothing useful decode into struct{}.
	if _, ok := any(&out.Data).(*struct{}); ok {
		return out
	}
	if err := json.Unmarshal(res.Data, &out.Data); err != nil {
		return Failed[T]("Dữ liệu trả về không hợp lệ.")
	}
	return out
}

// decodePage accepts both {items,total,page,pageSize} and a bare array.
func decodePage[T any](res Result[json.RawMessage], page, pageSize int) Result[models.Page[T]] {
	out := Result[models.Page[T]]{Success: res.Success, Message: res.Message}
	if !res.Success {
		return out
	}
	out.Data = models.Page[T]{Items: []T{}, Page: page, PageSize: pageSize}
	if isNull(res.Data) {
		return out
	}

	trimmed := bytes.TrimSpace(res.Data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Failed[models.Page[T]]("Dữ liệu trả về không hợp lệ.")
		}
		out.Data.Items = items
		out.Data.Total = len(items)
		return out
	}

	var p models.Page[T]
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Failed[models.Page[T]]("Dữ liệu trả về không hợp lệ.")
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.Page == 0 {
		p.Page = page
	}
	if p.PageSize == 0 {
		p.PageSize = pageSize
	}
	out.Data = p
	return out
}
