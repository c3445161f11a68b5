package renderer

import (
	"math"
	"testing"

	"github.com/Faultbox/objviewer/pkg/model"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v      float32
		limits [2]float32
		want   float32
	}{
		{1, [2]float32{1, 10}, 1},
		{0.5, [2]float32{1, 10}, 1},
		{12, [2]float32{1, 10}, 10},
		{4, [2]float32{1, 10}, 4},
		{7, [2]float32{0, 0}, 7},
		{float32(math.NaN()), [2]float32{1, 10}, 1},
		{float32(math.NaN()), [2]float32{2, 10}, 2},
		{float32(math.NaN()), [2]float32{0, 0}, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.limits); got != tt.want {
			t.Errorf("clamp(%v, %v): expected %v, got %v", tt.v, tt.limits, tt.want, got)
		}
	}
}

func TestStaleIndices(t *testing.T) {
	r := &Renderer{}

	var empty model.Model
	if r.staleIndices(&empty) {
		t.Error("empty model should match an empty element buffer")
	}

	a := &model.Model{Faces: []uint32{1, 2, 3}}
	if !r.staleIndices(a) {
		t.Error("expected a new model to need an upload")
	}

	// Mirror what Upload records.
	r.indexCount = len(a.Faces)
	r.indexData = firstIndex(a.Faces)
	if r.staleIndices(a) {
		t.Error("uploaded model should not be stale")
	}

	b := &model.Model{Faces: []uint32{3, 2, 1}}
	if !r.staleIndices(b) {
		t.Error("a different model with the same index count should be stale")
	}

	a.Faces = append(a.Faces[:0:0], 1, 2, 3, 4)
	if !r.staleIndices(a) {
		t.Error("a model whose faces changed should be stale")
	}
}
