package cell

// noCopy makes "go vet" complain when a Shared cell is copied by value.
// A copy would carry its own borrow state and alias the stored value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
