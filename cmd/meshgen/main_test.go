package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Faultbox/terramesh/internal/mesh"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exhausted", &mesh.Error{Kind: mesh.KindResourceExhausted, Triangle: 8, Neighbour: -1, Edge: -1}, 6},
		{"degenerate", fmt.Errorf("refine mesh: %w", &mesh.Error{Kind: mesh.KindDegenerate, Triangle: 3, Neighbour: -1, Edge: -1}), 5},
		{"edge mismatch", &mesh.Error{Kind: mesh.KindEdgeMismatch, Triangle: 1, Neighbour: 2, Edge: 0}, 4},
		{"asymmetric", &mesh.Error{Kind: mesh.KindAsymmetric, Triangle: 1, Neighbour: 2, Edge: 0}, 4},
		{"index mismatch", &mesh.Error{Kind: mesh.KindIndexMismatch, Triangle: 2, Neighbour: -1, Edge: -1}, 4},
		{"other", errors.New("load raster: no such file"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
