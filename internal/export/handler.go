package export

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/modaria/modaria/backend-go/internal/canvas"
)

const maxDocumentSize = 10 << 20 // 10MB

// Handler serves stateless export endpoints: the client posts a serialized
// scene document and gets back the rendered SVG or its data URL.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG handles POST /export/svg. The body is the opaque scene document.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	scene, err := sceneFromBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "design"
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".svg"))
	io.WriteString(w, SVG(scene))
}

// ExportRaster handles POST /export/raster?format=png|jpg|svg. The svg
// format funnels into the vector path so one endpoint covers every download
// format.
func (h *Handler) ExportRaster(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	if format == "svg" {
		h.ExportSVG(w, r)
		return
	}

	scene, err := sceneFromBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := Raster(scene, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "design"
	}
	contentType := "image/png"
	ext := ".png"
	if format != "png" {
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+ext))
	w.Write(data)
}

// ExportDataURL handles POST /export/dataurl, returning the canvas as a
// base64 data URL ready to hand to the render service.
func (h *Handler) ExportDataURL(w http.ResponseWriter, r *http.Request) {
	scene, err := sceneFromBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"dataUrl": DataURL(scene)})
}

func sceneFromBody(r *http.Request) (*canvas.Scene, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read scene document: %w", err)
	}

	scene := canvas.NewScene()
	if err := scene.Deserialize(body); err != nil {
		return nil, fmt.Errorf("invalid scene document: %w", err)
	}
	return scene, nil
}
