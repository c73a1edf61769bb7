package template

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// ListHandler serves the garment template catalog.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(List())
}

// GetHandler serves a single template by id.
func GetHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["templateId"]
	tmpl, ok := Lookup(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "template not found"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tmpl)
}
