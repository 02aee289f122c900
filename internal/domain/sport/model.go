package sport

import "fmt"

// Sport is a playable sport offered on the platform.
type Sport struct {
	ID     string
	Name   string
	Active bool
}

func (s Sport) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sport id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("sport name is required")
	}

	return nil
}
