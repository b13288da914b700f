package messaging

import "encoding/json"

// Response is a message reply: success plus either a payload or error.
type Response map[string]any

// Success reports the success field.
func (r Response) Success() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// Error returns the error field, or "".
func (r Response) Error() string {
	msg, _ := r["error"].(string)
	return msg
}

func ok(kv ...any) Response {
	r := Response{"success": true}
	for i := 0; i+1 < len(kv); i += 2 {
		r[kv[i].(string)] = kv[i+1]
	}
	return r
}

func fail(err error) Response {
	return Response{"success": false, "error": err.Error()}
}

// Marshal encodes r, falling back to an error reply if a payload value
// cannot be encoded.
func (r Response) Marshal() []byte {
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		data, _ = json.Marshal(fail(err))
	}
	return data
}
