package game

// Roster partitions the active players into runners and hunters.
// A player is never on both sides at once. The Roster assumes
// single-writer access: the owning Session serializes every mutation.
type Roster struct {
	sides map[string]Side
	order []string // insertion order, for stable listings and log lines
}

func NewRoster() *Roster {
	return &Roster{sides: make(map[string]Side)}
}

// PlayerEntry is a snapshot row for listings.
type PlayerEntry struct {
	Name string
	Side Side
}

func (r *Roster) AddRunner(id string) error {
	if _, ok := r.sides[id]; ok {
		return ErrAlreadyPlaying
	}
	r.sides[id] = SideRunner
	r.order = append(r.order, id)
	return nil
}

func (r *Roster) AddHunter(id string) error {
	if _, ok := r.sides[id]; ok {
		return ErrAlreadyPlaying
	}
	r.sides[id] = SideHunter
	r.order = append(r.order, id)
	return nil
}

// MoveToHunter converts a runner into a hunter. The reverse move does
// not exist in the game.
func (r *Roster) MoveToHunter(id string) error {
	if r.sides[id] != SideRunner {
		return ErrNotARunner
	}
	r.sides[id] = SideHunter
	return nil
}

// Remove drops the player from whichever side holds them and reports
// which side that was.
func (r *Roster) Remove(id string) (Side, error) {
	side, ok := r.sides[id]
	if !ok {
		return SideNone, ErrNotAPlayer
	}
	delete(r.sides, id)
	for i, n := range r.order {
		if n == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return side, nil
}

func (r *Roster) Side(id string) Side { return r.sides[id] }

func (r *Roster) Contains(id string) bool {
	_, ok := r.sides[id]
	return ok
}

func (r *Roster) Runners() []string { return r.names(SideRunner) }
func (r *Roster) Hunters() []string { return r.names(SideHunter) }

func (r *Roster) RunnerCount() int { return r.count(SideRunner) }
func (r *Roster) HunterCount() int { return r.count(SideHunter) }

// Players returns the full roster snapshot in join order.
func (r *Roster) Players() []PlayerEntry {
	out := make([]PlayerEntry, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, PlayerEntry{Name: n, Side: r.sides[n]})
	}
	return out
}

func (r *Roster) names(side Side) []string {
	var out []string
	for _, n := range r.order {
		if r.sides[n] == side {
			out = append(out, n)
		}
	}
	return out
}

func (r *Roster) count(side Side) int {
	n := 0
	for _, s := range r.sides {
		if s == side {
			n++
		}
	}
	return n
}
