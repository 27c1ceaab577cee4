package service

import (
	"time"

	"guestcal/pkg/model"
)

// ProjectMonth builds the full availability grid for the month containing
// ref: one cell per (day, room), day-major, rooms in the order given.
// Cells default to Available; holds are painted over them clipped to the
// month. Holds are processed in the order given, so when two holds
// illegally cover the same cell the one processed last wins.
func ProjectMonth(ref time.Time, rooms []*model.Room, holds []*model.Hold) []model.RoomDayState {
	first, last := model.MonthBounds(ref)
	days := int(last.Sub(first).Hours()/24) + 1

	roomIdx := make(map[string]int, len(rooms))
	for i, room := range rooms {
		roomIdx[room.ID] = i
	}

	grid := make([]model.RoomDayState, 0, days*len(rooms))
	for d := 0; d < days; d++ {
		day := first.AddDate(0, 0, d)
		for _, room := range rooms {
			grid = append(grid, model.RoomDayState{
				Date:     day,
				RoomID:   room.ID,
				RoomName: room.Name,
				Status:   model.StatusAvailable,
			})
		}
	}

	for _, hold := range holds {
		idx, ok := roomIdx[hold.RoomID]
		if !ok {
			continue
		}

		start := hold.StartDate
		if start.Before(first) {
			start = first
		}
		end := hold.EndDate
		if end.After(last) {
			end = last
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			d := int(day.Sub(first).Hours() / 24)
			cell := &grid[d*len(rooms)+idx]
			cell.Status = hold.Status
			cell.HolderID = hold.HolderID
		}
	}

	return grid
}

// ProjectHolds expands each hold into one cell per covered day. Unlike
// ProjectMonth it is not month-scoped and emits no Available filler.
func ProjectHolds(rooms []*model.Room, holds []*model.Hold) []model.RoomDayState {
	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}

	var cells []model.RoomDayState
	for _, hold := range holds {
		for day := hold.StartDate; !day.After(hold.EndDate); day = day.AddDate(0, 0, 1) {
			cells = append(cells, model.RoomDayState{
				Date:     day,
				RoomID:   hold.RoomID,
				RoomName: names[hold.RoomID],
				Status:   hold.Status,
				HolderID: hold.HolderID,
			})
		}
	}

	return cells
}
