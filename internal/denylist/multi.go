package denylist

// Checker is a single denylist source.
type Checker interface {
	Contains(password string) (bool, error)
}

// Multi checks each source in order and stops at the first hit.
type Multi []Checker

func (m Multi) Contains(password string) (bool, error) {
	for _, c := range m {
		listed, err := c.Contains(password)
		if err != nil {
			return false, err
		}
		if listed {
			return true, nil
		}
	}
	return false, nil
}
