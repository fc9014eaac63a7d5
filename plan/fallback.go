package plan

import (
	"fmt"
	"strconv"
)

// Fixed template used when the rooms field does not parse as a positive count
var canonicalRooms = []Room{
	{Room: "Master Bedroom", Size: "12x14 ft"},
	{Room: "Living Room", Size: "14x16 ft"},
	{Room: "Kitchen", Size: "10x12 ft"},
}

// minRoomSide is the per-room square footage floor in feet
const minRoomSide = 8

// Fallback produces a deterministic Plan from the request alone, with no
// backend involvement. It has no failure mode: every branch yields a
// complete plan with all five keys populated, regardless of input shape.
//
// When the rooms field parses as a positive integer r, the plan contains r
// sequentially named square rooms sided max(8, area/r); a non-numeric area
// counts as zero, which still yields the 8 ft floor. Any other rooms value
// falls back to the canonical three-room template.
func Fallback(req Request) *Plan {
	req = req.Trimmed()

	roomPlan := make([]Room, 0)
	if rooms, err := strconv.Atoi(req.Rooms); err == nil && rooms > 0 {
		area, _ := strconv.Atoi(req.Area)
		side := area / rooms
		if side < minRoomSide {
			side = minRoomSide
		}
		for i := 1; i <= rooms; i++ {
			roomPlan = append(roomPlan, Room{
				Room: fmt.Sprintf("Room %d", i),
				Size: fmt.Sprintf("%dx%d ft", side, side),
			})
		}
	} else {
		roomPlan = append(roomPlan, canonicalRooms...)
	}

	return &Plan{
		Summary:       fmt.Sprintf("Local fallback plan: %s rooms, style=%s, furniture=%s", req.Rooms, req.Style, req.Furniture),
		RoomPlan:      roomPlan,
		Materials:     []string{"Cement - 30 bags", "Bricks - 5000 units", "Sand - 10 tons"},
		EstimatedCost: fmt.Sprintf("₹%s (approx)", req.Budget),
		DesignFeatures: []string{
			"Natural ventilation",
			"Basic modern lighting",
		},
	}
}
