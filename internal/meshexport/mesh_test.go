package meshexport

import (
	"testing"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/heightmap"
	"github.com/wb4/sgcreate/internal/raster"
)

func flatHeightmap(width, height int, value float64) *heightmap.Heightmap {
	img := raster.New(width, height)
	img.Fill(colorx.RGBA(value, value, value, 1))
	return heightmap.New(img)
}

func TestBuildFlatHeightmapProducesPlanarMesh(t *testing.T) {
	hm := flatHeightmap(6, 5, 0.5)
	doc, err := Build(hm, Options{HeightScale: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("expected exactly one mesh, got %d", len(doc.Meshes))
	}
	if len(doc.Accessors) == 0 {
		t.Fatal("expected accessors to be populated")
	}

	posAccessorIdx := doc.Meshes[0].Primitives[0].Attributes["POSITION"]
	posAccessor := doc.Accessors[posAccessorIdx]
	if int(posAccessor.Count) != 6*5 {
		t.Errorf("vertex count = %d, want %d", posAccessor.Count, 6*5)
	}
	if len(posAccessor.Min) < 3 || len(posAccessor.Max) < 3 {
		t.Fatalf("expected POSITION accessor bounds, got min=%v max=%v", posAccessor.Min, posAccessor.Max)
	}
	if posAccessor.Min[1] != posAccessor.Max[1] {
		t.Errorf("flat heightmap should give a planar mesh, but Y spans %v..%v", posAccessor.Min[1], posAccessor.Max[1])
	}
}

func TestBuildRejectsTooSmallHeightmap(t *testing.T) {
	hm := flatHeightmap(1, 1, 0.0)
	if _, err := Build(hm, Options{HeightScale: 1}); err == nil {
		t.Error("expected an error for a 1x1 heightmap")
	}
}

func TestBuildWithoutTextureOmitsMaterial(t *testing.T) {
	hm := flatHeightmap(3, 3, 0.2)
	doc, err := Build(hm, Options{HeightScale: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.Meshes[0].Primitives[0].Material != nil {
		t.Error("expected no material when no texture is supplied")
	}
	if len(doc.Materials) != 0 {
		t.Errorf("expected zero materials, got %d", len(doc.Materials))
	}
}

func TestBuildWithTextureAddsMaterial(t *testing.T) {
	hm := flatHeightmap(3, 3, 0.2)
	tex := raster.New(2, 2)
	doc, err := Build(hm, Options{HeightScale: 1, Texture: tex})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.Meshes[0].Primitives[0].Material == nil {
		t.Fatal("expected a material when a texture is supplied")
	}
	if len(doc.Images) != 1 {
		t.Errorf("expected one embedded image, got %d", len(doc.Images))
	}
}
