// pkg/physics/spatial.go
package physics

// QuadTree is a point quadtree used as the broad phase for projectile hit
// testing: hull centers are inserted each tick and projectiles query a box
// around themselves instead of scanning every hull.
type QuadTree struct {
	boundary Rect
	capacity int
	points   []Vector2D
	objects  []any
	divided  bool
	children [4]*QuadTree
}

// NewQuadTree creates a quadtree covering the given boundary. capacity is
// the number of points a node holds before it subdivides.
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		boundary: boundary,
		capacity: capacity,
		points:   make([]Vector2D, 0, capacity),
		objects:  make([]any, 0, capacity),
	}
}

// Insert adds an object at the given point. Points outside the boundary are
// rejected.
func (qt *QuadTree) Insert(point Vector2D, object any) bool {
	if !qt.boundary.Contains(point) {
		return false
	}

	if len(qt.points) < qt.capacity && !qt.divided {
		qt.points = append(qt.points, point)
		qt.objects = append(qt.objects, object)
		return true
	}

	if !qt.divided {
		qt.subdivide()
	}

	for _, child := range qt.children {
		if child.Insert(point, object) {
			return true
		}
	}
	return false
}

// subdivide splits the node into four quadrants
func (qt *QuadTree) subdivide() {
	midX := (qt.boundary.MinX + qt.boundary.MaxX) / 2
	midY := (qt.boundary.MinY + qt.boundary.MaxY) / 2

	qt.children[0] = NewQuadTree(Rect{MinX: qt.boundary.MinX, MinY: qt.boundary.MinY, MaxX: midX, MaxY: midY}, qt.capacity)
	qt.children[1] = NewQuadTree(Rect{MinX: midX, MinY: qt.boundary.MinY, MaxX: qt.boundary.MaxX, MaxY: midY}, qt.capacity)
	qt.children[2] = NewQuadTree(Rect{MinX: qt.boundary.MinX, MinY: midY, MaxX: midX, MaxY: qt.boundary.MaxY}, qt.capacity)
	qt.children[3] = NewQuadTree(Rect{MinX: midX, MinY: midY, MaxX: qt.boundary.MaxX, MaxY: qt.boundary.MaxY}, qt.capacity)
	qt.divided = true
}

// Query returns all objects whose insertion point lies inside the area
func (qt *QuadTree) Query(area Rect) []any {
	found := make([]any, 0)
	return qt.queryInto(area, found)
}

func (qt *QuadTree) queryInto(area Rect, found []any) []any {
	if !qt.intersects(area) {
		return found
	}

	for i, point := range qt.points {
		if area.Contains(point) {
			found = append(found, qt.objects[i])
		}
	}

	if qt.divided {
		for _, child := range qt.children {
			found = child.queryInto(area, found)
		}
	}
	return found
}

// Clear removes all points and collapses the tree back to a single node
func (qt *QuadTree) Clear() {
	qt.points = qt.points[:0]
	qt.objects = qt.objects[:0]
	qt.divided = false
	for i := range qt.children {
		qt.children[i] = nil
	}
}

func (qt *QuadTree) intersects(area Rect) bool {
	return !(area.MinX > qt.boundary.MaxX ||
		area.MaxX < qt.boundary.MinX ||
		area.MinY > qt.boundary.MaxY ||
		area.MaxY < qt.boundary.MinY)
}
