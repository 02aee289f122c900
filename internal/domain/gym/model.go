package gym

import "fmt"

// Gym is a playing venue. Instructions carries access notes shown to
// registered players, such as which entrance to use.
type Gym struct {
	ID           string
	Name         string
	Address      string
	Instructions string
	Active       bool
}

func (g Gym) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("gym id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("gym name is required")
	}

	return nil
}
