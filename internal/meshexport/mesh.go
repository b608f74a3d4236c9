// Package meshexport turns a heightmap into a textured triangle mesh:
// one vertex per depth sample, displaced along Y, written out as a
// glTF document. Useful for sanity-checking a depthmap in a 3D viewer
// before committing to a stereogram render.
package meshexport

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/wb4/sgcreate/internal/heightmap"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/sgerrors"
)

// Options controls how a heightmap is turned into a mesh.
type Options struct {
	// HeightScale converts a heightmap sample in [0,1] into a Y
	// displacement in the same units as the X/Z grid spacing.
	HeightScale float64
	// Texture, if non-nil, is embedded as the mesh's base color
	// texture and UV-mapped 1:1 onto the grid.
	Texture *raster.Image
	// MeshName labels the exported gltf.Mesh.
	MeshName string
}

// Build converts hm into a triangle mesh: one vertex per heightmap
// pixel (vertex count equals width*height) and two triangles per
// 2x2 cell of the grid, returning a ready-to-save glTF document.
func Build(hm *heightmap.Heightmap, opts Options) (*gltf.Document, error) {
	width, height := hm.Width(), hm.Height()
	if width < 2 || height < 2 {
		return nil, sgerrors.New(sgerrors.InvalidArgument, "meshexport: heightmap must be at least 2x2 to form a mesh")
	}

	positions := make([][3]float32, 0, width*height)
	uvs := make([][2]float32, 0, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := hm.Get(float64(x), y)
			positions = append(positions, [3]float32{
				float32(x),
				float32(v * opts.HeightScale),
				float32(y),
			})
			uvs = append(uvs, [2]float32{
				float32(x) / float32(width-1),
				float32(y) / float32(height-1),
			})
		}
	}

	indices := make([]uint32, 0, (width-1)*(height-1)*6)
	index := func(x, y int) uint32 { return uint32(y*width + x) }
	for y := 0; y < height-1; y++ {
		for x := 0; x < width-1; x++ {
			topLeft := index(x, y)
			topRight := index(x+1, y)
			bottomLeft := index(x, y+1)
			bottomRight := index(x+1, y+1)

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	doc := gltf.NewDocument()

	positionAccessor := modeler.WritePosition(doc, positions)
	uvAccessor := modeler.WriteTextureCoord(doc, uvs)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	material, err := buildMaterial(doc, opts.Texture)
	if err != nil {
		return nil, err
	}

	prim := &gltf.Primitive{
		Indices: gltf.Index(indicesAccessor),
		Attributes: map[string]int{
			gltf.POSITION:   positionAccessor,
			gltf.TEXCOORD_0: uvAccessor,
		},
		Material: material,
	}

	meshName := opts.MeshName
	if meshName == "" {
		meshName = "heightmap"
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       meshName,
		Primitives: []*gltf.Primitive{prim},
	})

	nodeIndex := len(doc.Nodes)
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: meshName,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	})

	doc.Scenes = append(doc.Scenes, &gltf.Scene{Nodes: []int{nodeIndex}})
	doc.Scene = gltf.Index(len(doc.Scenes) - 1)

	return doc, nil
}

// buildMaterial embeds texture (if non-nil) as a base-color texture
// and returns the material index for the mesh primitive to reference.
func buildMaterial(doc *gltf.Document, texture *raster.Image) (*int, error) {
	if texture == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := texture.Encode(&buf, "png"); err != nil {
		return nil, sgerrors.Wrap(sgerrors.IOFailure, "meshexport: encode texture", err)
	}

	imageIndex, err := modeler.WriteImage(doc, "texture", "image/png", &buf)
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.InternalInvariantViolation, "meshexport: embed texture", err)
	}

	doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(imageIndex)})

	doc.Materials = append(doc.Materials, &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: len(doc.Textures) - 1},
		},
	})

	return gltf.Index(len(doc.Materials) - 1), nil
}

// Save writes doc to path, choosing binary (.glb) or text (.gltf)
// encoding from the file extension.
func Save(doc *gltf.Document, path string) error {
	if err := gltf.Save(doc, path); err != nil {
		return sgerrors.Wrap(sgerrors.IOFailure, fmt.Sprintf("meshexport: save %q", path), err)
	}
	return nil
}
