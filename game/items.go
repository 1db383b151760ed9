package game

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/apmckelvey/boat-man-shooters/shared/gamemath"
)

const (
	itemSize         = 0.1
	itemKinds        = 5
	itemPushDistance = 0.009
	tagItem          = "item"

	// resolv's broadphase works in whole points, so the space runs at a
	// fixed points-per-unit scale; world geometry is fractional.
	collisionScale = 100
	collisionCell  = 25
)

// The rock field layout is fixed so every client sees the same map.
var (
	itemXs = []float64{3, 14, 7, 11, 2, 9, 13, 5, 12, 6, 8, 1, 13, 4, 10}
	itemYs = []float64{8, 2, 14, 6, 11, 3, 10, 7, 10, 4, 13, 5, 9, 1, 12}
)

// Item is a solid pickup/obstacle on the water.
type Item struct {
	X, Y float64
	Kind int
	obj  *resolv.Object
}

// ItemManager owns the item field and resolves ship-vs-item collisions. The
// resolv space narrows candidates by cell; actual contact is a circle-vs-
// rectangle test in world units. Frame-local use only; not safe for
// concurrent callers.
type ItemManager struct {
	space       *resolv.Space
	items       []*Item
	probe       *resolv.Object
	probeRadius float64
}

// NewItemManager lays out the item field. probeRadius is the ship's
// collision radius in world units.
func NewItemManager(probeRadius float64) *ItemManager {
	m := &ItemManager{
		space: resolv.NewSpace(
			int(WorldWidth*collisionScale), int(WorldHeight*collisionScale),
			collisionCell, collisionCell,
		),
		probeRadius: probeRadius,
	}

	size := itemSize * collisionScale
	for i := range itemXs {
		item := &Item{
			X:    itemXs[i],
			Y:    itemYs[i],
			Kind: i%itemKinds + 1,
		}
		item.obj = resolv.NewObject(
			(item.X-itemSize/2)*collisionScale, (item.Y-itemSize/2)*collisionScale,
			size, size, tagItem,
		)
		item.obj.SetShape(resolv.NewRectangle(0, 0, size, size))
		item.obj.Data = item
		m.space.Add(item.obj)
		m.items = append(m.items, item)
	}

	probeSize := probeRadius * 2 * collisionScale
	m.probe = resolv.NewObject(0, 0, probeSize, probeSize, "ship")
	m.probe.SetShape(resolv.NewRectangle(0, 0, probeSize, probeSize))
	m.space.Add(m.probe)

	return m
}

// Items returns the full field.
func (m *ItemManager) Items() []*Item {
	return m.items
}

// VisibleItems returns items within radius of the camera.
func (m *ItemManager) VisibleItems(cameraX, cameraY, radius float64) []*Item {
	var out []*Item
	for _, item := range m.items {
		if math.Hypot(item.X-cameraX, item.Y-cameraY) <= radius {
			out = append(out, item)
		}
	}
	return out
}

// Resolve pushes the ship out of any item it is driving into and kills the
// velocity component pointing at it, so boats slide along rocks instead of
// sticking. Call once per frame after Ship.Update.
func (m *ItemManager) Resolve(s *Ship, dt float64) *Item {
	m.probe.X = (s.X - m.probeRadius) * collisionScale
	m.probe.Y = (s.Y - m.probeRadius) * collisionScale
	m.probe.Update()

	check := m.probe.Check(s.VelocityX*dt*collisionScale, s.VelocityY*dt*collisionScale, tagItem)
	if check == nil {
		return nil
	}

	var item *Item
	for _, obj := range check.ObjectsByTags(tagItem) {
		if cand := obj.Data.(*Item); m.contacts(s.X, s.Y, cand) {
			item = cand
			break
		}
	}
	if item == nil {
		return nil
	}

	nx := s.X - item.X
	ny := s.Y - item.Y
	dist := math.Hypot(nx, ny)
	if dist == 0 {
		return item
	}
	nx /= dist
	ny /= dist

	s.X += nx * itemPushDistance
	s.Y += ny * itemPushDistance

	// Cancel the velocity component aimed into the item.
	if dot := s.VelocityX*nx + s.VelocityY*ny; dot < 0 {
		s.VelocityX -= dot * nx
		s.VelocityY -= dot * ny
	}

	return item
}

// contacts reports whether the ship circle touches the item rectangle.
func (m *ItemManager) contacts(x, y float64, item *Item) bool {
	closestX := gamemath.Clamp(x, item.X-itemSize/2, item.X+itemSize/2)
	closestY := gamemath.Clamp(y, item.Y-itemSize/2, item.Y+itemSize/2)
	return math.Hypot(x-closestX, y-closestY) < m.probeRadius
}
