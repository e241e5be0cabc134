package catalog

import "testing"

func testInfos() []VariationInfo {
	return []VariationInfo{
		{ID: 1, Name: "Arena", TicketID: 1, TicketName: "Dome Live", ArtistID: 1, ArtistName: "NHN48", TotalSeats: 4096},
		{ID: 2, Name: "Stand", TicketID: 1, TicketName: "Dome Live", ArtistID: 1, ArtistName: "NHN48", TotalSeats: 4096},
		{ID: 3, Name: "Arena", TicketID: 2, TicketName: "Hall Live", ArtistID: 2, ArtistName: "MGMT48", TotalSeats: 256},
	}
}

func TestIndexResolve(t *testing.T) {
	t.Parallel()
	ix := NewIndex(testInfos())

	info, ok := ix.Resolve(2)
	if !ok {
		t.Fatal("Resolve(2): not found")
	}
	if info.Name != "Stand" || info.TicketName != "Dome Live" || info.ArtistName != "NHN48" {
		t.Errorf("Resolve(2): got %+v", info)
	}

	if _, ok := ix.Resolve(99); ok {
		t.Error("Resolve(99): found, want not found")
	}
}

func TestIndexVariationsByTicket(t *testing.T) {
	t.Parallel()
	ix := NewIndex(testInfos())

	vars := ix.VariationsByTicket(1)
	if len(vars) != 2 {
		t.Fatalf("VariationsByTicket(1): got %d variations, want 2", len(vars))
	}
	// Catalog order must be preserved.
	if vars[0].ID != 1 || vars[1].ID != 2 {
		t.Errorf("VariationsByTicket(1): got IDs %d,%d, want 1,2", vars[0].ID, vars[1].ID)
	}
	if vars := ix.VariationsByTicket(9); len(vars) != 0 {
		t.Errorf("VariationsByTicket(9): got %d variations, want 0", len(vars))
	}
}

func TestIndexHasTicket(t *testing.T) {
	t.Parallel()
	ix := NewIndex(testInfos())
	if !ix.HasTicket(2) {
		t.Error("HasTicket(2): got false, want true")
	}
	if ix.HasTicket(9) {
		t.Error("HasTicket(9): got true, want false")
	}
}

func TestEmptyIndex(t *testing.T) {
	t.Parallel()
	ix := NewIndex(nil)
	if ix.Len() != 0 {
		t.Errorf("Len: got %d, want 0", ix.Len())
	}
	if _, ok := ix.Resolve(1); ok {
		t.Error("Resolve on empty index: found, want not found")
	}
}
