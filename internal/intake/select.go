package intake

import "github.com/spec-kit/campus-helpdesk/internal/domain"

// Selection is the result of running the assignment policy over a
// technician snapshot.
type Selection struct {
	Technician   *domain.Technician
	StartTime    int
	EndTime      int
	AssignedHour int
	Outcome      domain.RequestStatus
}

// SelectTechnician picks a technician of the given trade under the
// load-balancing and availability-window policy. Outcomes, in priority:
//
//   - matched: the student stated an hour and a free technician's window
//     contains it; lowest current load wins, ties broken by encounter
//     order (stable scan, never resorted);
//   - no_time_match: either no hour was stated, or no free technician's
//     window contains it; the lowest-load free technician of the trade is
//     chosen with the window ignored, and the assigned hour is that
//     technician's window start;
//   - no_technician: no free technician of the trade exists at all.
//
// Technicians with malformed windows are skipped, never fatal. The caller
// passes a fresh snapshot per decision; selection never caches.
func SelectTechnician(role domain.Trade, desiredHour *int, techs []domain.Technician) Selection {
	if desiredHour != nil {
		if best := lowestLoadFree(techs, role, func(t domain.Technician) bool {
			return t.WindowValid() && t.StartTime <= *desiredHour && *desiredHour <= t.EndTime
		}); best != nil {
			return Selection{
				Technician:   best,
				StartTime:    best.StartTime,
				EndTime:      best.EndTime,
				AssignedHour: *desiredHour,
				Outcome:      domain.RequestStatusMatched,
			}
		}
	}

	if best := lowestLoadFree(techs, role, func(t domain.Technician) bool { return t.WindowValid() }); best != nil {
		return Selection{
			Technician:   best,
			StartTime:    best.StartTime,
			EndTime:      best.EndTime,
			AssignedHour: best.StartTime,
			Outcome:      domain.RequestStatusNoTimeMatch,
		}
	}

	return Selection{Outcome: domain.RequestStatusNoTechnician}
}

func lowestLoadFree(techs []domain.Technician, role domain.Trade, eligible func(domain.Technician) bool) *domain.Technician {
	var best *domain.Technician
	for i := range techs {
		t := techs[i]
		if t.Role != role || t.Status != domain.TechnicianStatusFree {
			continue
		}
		if !eligible(t) {
			continue
		}
		if best == nil || t.CurrentLoad < best.CurrentLoad {
			best = &techs[i]
		}
	}
	return best
}
