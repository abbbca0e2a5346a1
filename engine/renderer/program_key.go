package renderer

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/effect"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
)

// ProgramKey identifies a compiled program. Two draws with equal keys compose identical shader
// source, so they share one program for the lifetime of the context.
//
// Exactly one of Material and Effect is set. Lights holds the kind tags of the light list and
// is only set when the fragment stage reads lights.
type ProgramKey struct {
	Geometry geometry.ID
	Material material.ID
	Effect   effect.ID
	Lights   string
}

// String is used as the program label and in errors.
func (k ProgramKey) String() string {
	parts := []string{k.Geometry.String()}
	if k.Material != (material.ID{}) {
		parts = append(parts, k.Material.String())
	}
	if k.Effect != (effect.ID{}) {
		parts = append(parts, k.Effect.String())
	}
	if k.Lights != "" {
		parts = append(parts, "lights["+k.Lights+"]")
	}
	return strings.Join(parts, "+")
}
