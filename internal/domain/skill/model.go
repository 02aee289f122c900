package skill

import "fmt"

// Skill is a competitive level leagues and teams are tagged with.
type Skill struct {
	ID        string
	Name      string
	SortOrder int
}

func (s Skill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("skill id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("skill name is required")
	}

	return nil
}
