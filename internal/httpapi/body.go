package httpapi

import (
    "bytes"
    "encoding/json"
    "errors"
    "mime"
    "net/http"
)

const mediaTypeJSON = "application/json"

var errTrailingData = errors.New("body must contain a single JSON object")

// requireJSON answers 415 unless the request declares a JSON body.
// Parameters such as charset are accepted.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
    mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
    if err == nil && mt == mediaTypeJSON { return true }
    writeErr(w, http.StatusUnsupportedMediaType, "Content-Type must be "+mediaTypeJSON, "unsupported_media_type")
    return false
}

// decodeBody decodes exactly one JSON object into v, rejecting unknown
// fields. An empty body is reported as io.EOF.
func decodeBody(r *http.Request, v any) error {
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(v); err != nil { return err }
    if dec.More() { return errTrailingData }
    return nil
}

// writeJSON encodes v before touching w, so an encoding failure still
// produces a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
    var buf bytes.Buffer
    if err := json.NewEncoder(&buf).Encode(v); err != nil {
        status = http.StatusInternalServerError
        buf.Reset()
        _ = json.NewEncoder(&buf).Encode(errorResponse{Error: msgInternal, Code: codeInternal})
    }
    w.Header().Set("Content-Type", mediaTypeJSON)
    w.WriteHeader(status)
    _, _ = w.Write(buf.Bytes())
}
