package game

import "time"

// Durations holds the three phase lengths of a session.
type Durations struct {
	Headstart time.Duration
	MainGame  time.Duration
	EndTime   time.Duration
}

// Valid reports whether every phase length is positive.
func (d Durations) Valid() bool {
	return d.Headstart > 0 && d.MainGame > 0 && d.EndTime > 0
}

// Minutes returns whole-minute lengths for log lines and announcements.
func (d Durations) Minutes() (headstart, maingame, endtime int) {
	return int(d.Headstart / time.Minute),
		int(d.MainGame / time.Minute),
		int(d.EndTime / time.Minute)
}

// DurationsFromMinutes builds Durations from command arguments.
func DurationsFromMinutes(headstart, maingame, endtime int) Durations {
	return Durations{
		Headstart: time.Duration(headstart) * time.Minute,
		MainGame:  time.Duration(maingame) * time.Minute,
		EndTime:   time.Duration(endtime) * time.Minute,
	}
}

// Boundaries are the three strictly increasing phase-end instants.
type Boundaries struct {
	HeadstartEnd time.Time
	MainGameEnd  time.Time
	EndTimeEnd   time.Time
}

// BoundariesAt derives the boundaries from a start instant and durations.
func BoundariesAt(start time.Time, d Durations) Boundaries {
	t1 := start.Add(d.Headstart)
	t2 := t1.Add(d.MainGame)
	t3 := t2.Add(d.EndTime)
	return Boundaries{HeadstartEnd: t1, MainGameEnd: t2, EndTimeEnd: t3}
}

// Crossings reports which boundaries lie strictly in the past.
type Crossings struct {
	Headstart bool
	MainGame  bool
	EndTime   bool
}

// CrossingsAt is pure: a boundary is crossed iff now is strictly after it.
func (b Boundaries) CrossingsAt(now time.Time) Crossings {
	return Crossings{
		Headstart: now.After(b.HeadstartEnd),
		MainGame:  now.After(b.MainGameEnd),
		EndTime:   now.After(b.EndTimeEnd),
	}
}
