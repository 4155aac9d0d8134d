package physics

import (
	"fmt"
	"testing"
)

func TestQuadTree_InsertAndQuery(t *testing.T) {
	qt := NewQuadTree(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 4)

	if !qt.Insert(Vector2D{X: 10, Y: 10}, "a") {
		t.Fatal("Insert() inside the boundary failed")
	}
	if !qt.Insert(Vector2D{X: 90, Y: 90}, "b") {
		t.Fatal("Insert() inside the boundary failed")
	}

	found := qt.Query(Rect{MinX: 0, MinY: 0, MaxX: 50, MaxY: 50})
	if len(found) != 1 || found[0] != "a" {
		t.Errorf("Query() = %v, want [a]", found)
	}
}

func TestQuadTree_RejectsOutsidePoints(t *testing.T) {
	qt := NewQuadTree(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 4)
	if qt.Insert(Vector2D{X: 200, Y: 200}, "outside") {
		t.Error("Insert() outside the boundary should fail")
	}
}

func TestQuadTree_SubdividesPastCapacity(t *testing.T) {
	qt := NewQuadTree(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 2)

	// Far more points than one node holds.
	for i := 0; i < 20; i++ {
		x := float64(i*5 + 1)
		if !qt.Insert(Vector2D{X: x, Y: x}, fmt.Sprintf("p%d", i)) {
			t.Fatalf("Insert() %d failed", i)
		}
	}

	found := qt.Query(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	if len(found) != 20 {
		t.Errorf("Query() over everything returned %d objects, want 20", len(found))
	}
}

func TestQuadTree_Clear(t *testing.T) {
	qt := NewQuadTree(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 2)
	for i := 0; i < 10; i++ {
		qt.Insert(Vector2D{X: float64(i * 9), Y: float64(i * 9)}, i)
	}

	qt.Clear()

	found := qt.Query(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	if len(found) != 0 {
		t.Errorf("Query() after Clear() returned %d objects, want 0", len(found))
	}

	// The tree is reusable after clearing.
	if !qt.Insert(Vector2D{X: 50, Y: 50}, "again") {
		t.Error("Insert() after Clear() failed")
	}
}
