package game

import "testing"

func TestItemFieldIsDeterministic(t *testing.T) {
	a := NewItemManager(0.15)
	b := NewItemManager(0.15)

	if len(a.Items()) != len(itemXs) {
		t.Fatalf("spawned %d items, want %d", len(a.Items()), len(itemXs))
	}
	for i, item := range a.Items() {
		other := b.Items()[i]
		if item.X != other.X || item.Y != other.Y || item.Kind != other.Kind {
			t.Fatalf("item %d differs between managers: %+v vs %+v", i, item, other)
		}
		if item.Kind < 1 || item.Kind > itemKinds {
			t.Fatalf("item %d has kind %d outside 1..%d", i, item.Kind, itemKinds)
		}
	}
}

func TestResolveContactGeometries(t *testing.T) {
	// Contact radius is probeRadius (0.15) plus the item half-width (0.05):
	// center distance 0.20 on axis.
	cases := []struct {
		name string
		gap  float64 // ship center offset from item center, -X side
		vx   float64
		want bool
	}{
		{"overlapping", 0.05, 0.5, true},
		{"approaching in reach", 0.19, 0.5, true},
		{"just outside contact", 0.21, 0.5, false},
		{"well clear", 2.0, 0.5, false},
	}

	for _, tc := range cases {
		m := NewItemManager(0.15)
		item := m.Items()[0]

		s := NewShip(item.X-tc.gap, item.Y)
		s.VelocityX = tc.vx

		hit := m.Resolve(s, 1.0/60.0)
		if (hit != nil) != tc.want {
			t.Errorf("%s: hit=%v, want %v", tc.name, hit != nil, tc.want)
			continue
		}
		if hit != nil && s.X >= item.X-tc.gap {
			t.Errorf("%s: ship was not pushed away: X=%v", tc.name, s.X)
		}
	}
}

func TestResolveDeadCenterReportsContact(t *testing.T) {
	m := NewItemManager(0.15)
	item := m.Items()[0]

	s := NewShip(item.X, item.Y)
	before := *s

	hit := m.Resolve(s, 1.0/60.0)
	if hit != item {
		t.Fatal("ship dead on an item should report contact")
	}
	// No normal exists at zero distance; the ship is left alone.
	if s.X != before.X || s.Y != before.Y {
		t.Fatalf("dead-center resolve moved the ship to (%v,%v)", s.X, s.Y)
	}
}

func TestResolvePushesShipOffItem(t *testing.T) {
	m := NewItemManager(0.15)
	item := m.Items()[0]

	// Park the ship on top of the item, moving into it.
	s := NewShip(item.X-0.05, item.Y)
	s.VelocityX = 0.5

	hit := m.Resolve(s, 1.0/60.0)
	if hit == nil {
		t.Fatal("expected a collision with the item under the ship")
	}
	if hit != item {
		t.Fatalf("collided with item at (%v,%v), want (%v,%v)", hit.X, hit.Y, item.X, item.Y)
	}

	if s.X >= item.X-0.05 {
		t.Fatalf("ship was not pushed away: X=%v", s.X)
	}
	if s.VelocityX > 0 {
		t.Fatalf("velocity into the item should be cancelled, got %v", s.VelocityX)
	}
}

func TestResolveNoContact(t *testing.T) {
	m := NewItemManager(0.15)
	s := NewShip(0.6, 0.6) // open water corner
	s.VelocityX = 0.5

	if hit := m.Resolve(s, 1.0/60.0); hit != nil {
		t.Fatalf("unexpected collision at (%v,%v) with item (%v,%v)", s.X, s.Y, hit.X, hit.Y)
	}
}

func TestVisibleItemsRadius(t *testing.T) {
	m := NewItemManager(0.15)
	item := m.Items()[0]

	near := m.VisibleItems(item.X, item.Y, 0.5)
	found := false
	for _, it := range near {
		if it == item {
			found = true
		}
	}
	if !found {
		t.Fatal("item at the camera position should be visible")
	}

	far := m.VisibleItems(item.X, item.Y, 0.0001)
	if len(far) != 1 {
		t.Fatalf("radius ~0 at an item's position returned %d items, want 1", len(far))
	}
}
