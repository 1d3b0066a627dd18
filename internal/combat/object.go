package combat

// GameObject is the state shared by everything that lives in an arena:
// a name and a health pool that never drops below zero.
type GameObject struct {
	name   string
	health int
}

func (o *GameObject) Name() string { return o.name }
func (o *GameObject) Health() int  { return o.health }

// setHealth is the only writer of health.
func (o *GameObject) setHealth(v int) {
	if v < 0 {
		v = 0
	}
	o.health = v
}
