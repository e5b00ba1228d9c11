package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Body         string                 `json:"body,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	N1           float64                `json:"n1,omitempty"`
	N2           float64                `json:"n2,omitempty"`
	Color        string                 `json:"color"` // shaded pixel color
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes the first body hit by an inspection ray
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the camera ray through the center of a pixel and resolves the first hit
func inspectPixel(world *scene.World, camera *geometry.Camera, maxDepth, pixelX, pixelY int) InspectResult {
	ray := camera.RayForPixel(pixelX, pixelY)
	color := integrator.NewWhitted(maxDepth).RayColor(ray, world)

	xs := world.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return InspectResult{Color: color}
	}
	return InspectResult{
		Hit:   true,
		Comps: geometry.PrepareComputations(hit, ray, xs),
		Color: color,
	}
}

func hexColor(c core.Color) string {
	rgba := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(rgba.R*255+0.5), int(rgba.G*255+0.5), int(rgba.B*255+0.5))
}

func vec(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// extractMaterialInfo lists a material's coefficients
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"ambient":         mat.Ambient,
		"diffuse":         mat.Diffuse,
		"specular":        mat.Specular,
		"shininess":       mat.Shininess,
		"reflective":      mat.Reflective,
		"transparency":    mat.Transparency,
		"refractiveIndex": mat.RefractiveIndex,
		"castsShadow":     mat.CastsShadow,
		"receivesShadow":  mat.ReceivesShadow,
	}
	if mat.Pattern != nil {
		properties["pattern"] = patternName(mat.Pattern)
	} else {
		properties["color"] = hexColor(mat.Color)
	}
	return properties
}

func patternName(p material.Pattern) string {
	switch p.(type) {
	case *material.SolidPattern:
		return "color"
	case *material.StripePattern:
		return "stripes"
	case *material.GradientPattern:
		return "gradient"
	case *material.RingPattern:
		return "rings"
	case *material.RadialGradientPattern:
		return "radial_gradient"
	case *material.CheckersPattern:
		return "checkers"
	case *material.BlendPattern:
		return "blend"
	case *material.PerturbedPattern:
		return "perturbed"
	default:
		return fmt.Sprintf("%T", p)
	}
}

// extractGeometryInfo lists the shape parameters of a body
func extractGeometryInfo(body *geometry.Body) (string, map[string]interface{}) {
	properties := map[string]interface{}{}

	switch shape := body.Shape.(type) {
	case *geometry.Cylinder:
		properties["minimum"] = boundValue(shape.Minimum)
		properties["maximum"] = boundValue(shape.Maximum)
		properties["closedMin"] = shape.ClosedMin
		properties["closedMax"] = shape.ClosedMax
	case *geometry.Cone:
		properties["minimum"] = boundValue(shape.Minimum)
		properties["maximum"] = boundValue(shape.Maximum)
		properties["closedMin"] = shape.ClosedMin
		properties["closedMax"] = shape.ClosedMax
	}
	properties["transform"] = body.Transform().Matrix()
	return body.Shape.Kind(), properties
}

// boundValue keeps infinite bounds JSON-encodable
func boundValue(v float64) interface{} {
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := s.setupCamera(sceneObj, inspectReq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= camera.HSize || pixelY < 0 || pixelY >= camera.VSize {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj.World, camera, s.maxDepth(sceneObj, inspectReq), pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(result.Color)})
		return
	}

	comps := result.Comps
	geometryType, geometryProps := extractGeometryInfo(comps.Body)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		Body:         comps.Body.Name,
		GeometryType: geometryType,
		Point:        vec(comps.Point),
		Normal:       vec(comps.NormalV),
		Distance:     comps.T,
		FrontFace:    !comps.Inside,
		N1:           comps.N1,
		N2:           comps.N2,
		Color:        hexColor(result.Color),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(comps.Body.Material),
			"geometry": geometryProps,
		},
	})
}
