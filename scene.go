package pushy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Entities []EntityDef `json:"entities"`
	Cameras  []CameraDef `json:"cameras"`
	// Selection holds identifiers such as "|cube" or "|cube.f[2]".
	Selection []string `json:"selection,omitempty"`
}

// EntityDef places a named node. For children Position, Rotation and Scale
// are relative to Parent, the path of an entity listed earlier.
type EntityDef struct {
	Name     string      `json:"name"`
	Parent   string      `json:"parent,omitempty"`
	Position mgl32.Vec3  `json:"position"`
	Rotation mgl32.Vec3  `json:"rotation,omitempty"` // euler XYZ, degrees
	Scale    *mgl32.Vec3 `json:"scale,omitempty"`
	Mesh     *MeshDef    `json:"mesh,omitempty"`
}

type MeshDef struct {
	Type     string       `json:"type"` // "cube", "grid", "custom"
	Size     float32      `json:"size,omitempty"`
	Cols     int          `json:"cols,omitempty"`
	Rows     int          `json:"rows,omitempty"`
	Vertices []mgl32.Vec3 `json:"vertices,omitempty"`
	Faces    [][]int      `json:"faces,omitempty"`
}

type CameraDef struct {
	Name     string     `json:"name"`
	Position mgl32.Vec3 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`
	Ortho    bool       `json:"ortho,omitempty"`
	Active   bool       `json:"active,omitempty"`
}

// DefaultScene is a unit cube in front of a perspective camera, selected.
func DefaultScene() SceneDef {
	return SceneDef{
		Entities: []EntityDef{
			{Name: "cube", Mesh: &MeshDef{Type: "cube", Size: 1}},
		},
		Cameras: []CameraDef{
			{Name: "persp", Position: mgl32.Vec3{0, 0, 10}, Active: true},
		},
		Selection: []string{"|cube"},
	}
}

func LoadScene(path string) (SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneDef{}, fmt.Errorf("load scene: %w", err)
	}

	var def SceneDef
	if err := json.Unmarshal(data, &def); err != nil {
		return SceneDef{}, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return SceneDef{}, fmt.Errorf("scene %s: %w", path, err)
	}
	return def, nil
}

func (d SceneDef) Validate() error {
	known := make(map[string]bool)
	for i, e := range d.Entities {
		if err := validName(e.Name); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		if e.Parent != "" && !known[e.Parent] {
			return fmt.Errorf("entity %q: parent %q is not defined before it", e.Name, e.Parent)
		}
		path := e.Parent + "|" + e.Name
		if known[path] {
			return fmt.Errorf("entity %q: duplicate path %s", e.Name, path)
		}
		known[path] = true

		if e.Mesh != nil {
			if err := e.Mesh.validate(); err != nil {
				return fmt.Errorf("entity %q: %w", e.Name, err)
			}
		}
	}

	for i, c := range d.Cameras {
		if err := validName(c.Name); err != nil {
			return fmt.Errorf("camera %d: %w", i, err)
		}
		if known["|"+c.Name] {
			return fmt.Errorf("camera %q: duplicate path |%s", c.Name, c.Name)
		}
		known["|"+c.Name] = true
	}
	return nil
}

func validName(name string) error {
	if name == "" {
		return errors.New("empty name")
	}
	if strings.ContainsAny(name, "|.[] ") {
		return fmt.Errorf("name %q contains a reserved character", name)
	}
	return nil
}

func (m MeshDef) validate() error {
	switch m.Type {
	case "cube", "grid":
		return nil
	case "custom":
		for fi, f := range m.Faces {
			if len(f) < 3 {
				return fmt.Errorf("face %d has %d vertices", fi, len(f))
			}
			for _, v := range f {
				if v < 0 || v >= len(m.Vertices) {
					return fmt.Errorf("face %d: vertex %d out of range", fi, v)
				}
			}
		}
		return nil
	}
	return fmt.Errorf("unknown mesh type %q", m.Type)
}

func (m MeshDef) build() MeshComponent {
	size := m.Size
	if size == 0 {
		size = 1
	}
	switch m.Type {
	case "cube":
		return NewCubeMesh(size)
	case "grid":
		return NewGridMesh(m.Cols, m.Rows, size)
	}
	verts := append([]mgl32.Vec3(nil), m.Vertices...)
	faces := make([][]int, len(m.Faces))
	for i, f := range m.Faces {
		faces[i] = append([]int(nil), f...)
	}
	return NewMesh(verts, faces)
}

// SpawnScene queues the scene's entities on cmd and replaces the selection.
// Entities exist once commands are flushed.
func SpawnScene(cmd *Commands, def SceneDef) error {
	if err := def.Validate(); err != nil {
		return err
	}

	type spawned struct {
		eid   EntityId
		world TransformComponent
	}
	nodes := make(map[string]spawned)

	for _, e := range def.Entities {
		scale := mgl32.Vec3{1, 1, 1}
		if e.Scale != nil {
			scale = *e.Scale
		}
		local := LocalTransformComponent{
			Position: e.Position,
			Rotation: mgl32.AnglesToQuat(
				mgl32.DegToRad(e.Rotation.X()),
				mgl32.DegToRad(e.Rotation.Y()),
				mgl32.DegToRad(e.Rotation.Z()),
				mgl32.XYZ,
			),
			Scale: scale,
		}

		components := []any{NameComponent{Name: e.Name}, local}
		world := TransformComponent(local)
		if e.Parent != "" {
			parent := nodes[e.Parent]
			world = composeTransform(parent.world, local)
			components = append(components, Parent{Entity: parent.eid})
		}
		components = append(components, world)
		if e.Mesh != nil {
			components = append(components, e.Mesh.build())
		}

		eid := cmd.AddEntity(components...)
		nodes[e.Parent+"|"+e.Name] = spawned{eid: eid, world: world}
	}

	nav := navCamera(def.Cameras)
	for i, c := range def.Cameras {
		components := []any{
			NameComponent{Name: c.Name},
			CameraComponent{
				Position: c.Position,
				Yaw:      c.Yaw,
				Pitch:    c.Pitch,
				Ortho:    c.Ortho,
				Active:   c.Active,
			},
		}
		if i == nav {
			components = append(components, CameraNavComponent{})
		}
		cmd.AddEntity(components...)
	}

	sel := ensureResource(cmd.App(), func() *Selection { return &Selection{} })
	if err := sel.SelectPaths(def.Selection...); err != nil {
		return fmt.Errorf("scene selection: %w", err)
	}
	cmd.App().Logger().Infof("scene: %d entities, %d cameras, %d selected",
		len(def.Entities), len(def.Cameras), sel.Len())
	return nil
}

// navCamera picks the camera the user navigates: the first active one, else
// the first listed. Returns -1 when there are no cameras.
func navCamera(cams []CameraDef) int {
	for i, c := range cams {
		if c.Active {
			return i
		}
	}
	if len(cams) == 0 {
		return -1
	}
	return 0
}
