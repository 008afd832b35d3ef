package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in a fixed order, once per frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

// Clock is the shared simulation clock, advanced by the frame driver and
// read by time-dependent systems.
type Clock struct {
	Time  float64
	Step  float64
	Frame int
}

// Advance moves the clock one fixed step forward.
func (c *Clock) Advance() {
	if c == nil {
		return
	}
	c.Frame++
	c.Time += c.Step
}
