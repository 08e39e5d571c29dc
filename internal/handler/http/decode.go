package http

import (
	"encoding/json"
	"net/http"
)

// decodeJSON decodes a request body into dst. Unknown payload fields are
// rejected so misspelled keys fail loudly instead of being dropped.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
