package color

import (
	"encoding/json"
	"net/http"
	"strings"
)

// PalettesHandler serves the built-in color palettes.
func PalettesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Palettes())
}

// HarmoniesHandler computes color harmonies for a base color passed in the
// "base" query parameter (hex, Pantone code or color name). Unlike fills,
// which fall back to black, an unrecognized base here is rejected: harmonies
// of the fallback would look like an answer.
func HarmoniesHandler(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSpace(r.URL.Query().Get("base"))
	if base == "" {
		writeError(w, http.StatusBadRequest, "base parameter is required")
		return
	}

	hex, ok := lookup(base)
	if !ok {
		writeError(w, http.StatusBadRequest, "unrecognized color: "+base)
		return
	}

	harmony, err := Harmonies(hex)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(harmony)
}

// lookup tries the same three forms Resolve does, but reports a miss instead
// of defaulting.
func lookup(s string) (string, bool) {
	if hex, ok := Pantone(s); ok {
		return hex, true
	}
	if IsHex(s) {
		return strings.ToUpper(s), true
	}
	if hex, ok := nameToHex[strings.ToLower(s)]; ok {
		return hex, true
	}
	return "", false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
