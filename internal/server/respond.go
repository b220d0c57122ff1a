package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBody caps JSON request bodies
const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeStrict reads exactly one JSON object without unknown fields
func decodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}

// decodeLoose reads one JSON object and ignores fields we do not model
func decodeLoose(r io.Reader, dst any) error {
	return json.NewDecoder(io.LimitReader(r, maxBody)).Decode(dst)
}
