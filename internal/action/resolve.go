package action

import (
	"fmt"
	"strings"

	"github.com/modaria/modaria/backend-go/internal/canvas"
	"github.com/modaria/modaria/backend-go/internal/color"
)

// TargetSelected is the sentinel meaning "whatever is currently selected".
const TargetSelected = "selected"

// targetDelimiter separates an instance id from a region id in a direct
// region address.
const targetDelimiter = ":"

// resolveColor picks the concrete hex color for an action. Pantone codes win
// over literal hex, which wins over English names.
func resolveColor(p Params) string {
	return color.Resolve(p.PantoneCode, p.Color)
}

// resolveRegion turns an action target into (instanceID, regionID). Natural
// language targets rarely carry exact ids, so after direct addressing this
// falls back to a case-insensitive substring match over region names of the
// placed instances, and finally to the current selection.
func resolveRegion(scene *canvas.Scene, target string) (string, string, error) {
	target = strings.TrimSpace(target)

	if strings.Contains(target, targetDelimiter) {
		parts := strings.SplitN(target, targetDelimiter, 2)
		return parts[0], parts[1], nil
	}

	if target != "" && target != TargetSelected {
		needle := strings.ToLower(target)
		for _, ti := range scene.Instances() {
			for _, rp := range ti.Regions {
				if strings.Contains(strings.ToLower(rp.Name), needle) ||
					strings.Contains(strings.ToLower(rp.RegionID), needle) {
					return ti.InstanceID, rp.RegionID, nil
				}
			}
		}
	}

	if sel := scene.SelectedRegion(); sel != nil {
		return sel.TemplateInstanceID, sel.RegionID, nil
	}
	return "", "", fmt.Errorf("no region matches target %q and nothing is selected", target)
}

// resolveElement turns an action target into a top-level element id.
func resolveElement(scene *canvas.Scene, target string) (string, error) {
	target = strings.TrimSpace(target)

	if target != "" && target != TargetSelected {
		if _, ok := scene.Object(target); ok {
			return target, nil
		}
		return "", fmt.Errorf("no element with id %q", target)
	}

	if id := scene.SelectedElement(); id != "" {
		return id, nil
	}
	if sel := scene.SelectedRegion(); sel != nil {
		return sel.TemplateInstanceID, nil
	}
	return "", fmt.Errorf("no element target and nothing is selected")
}
