package domain

// Party is the customer an order is billed to.
type Party struct {
	name    string
	contact string
}

func NewParty(name, contact string) Party {
	return Party{name: name, contact: contact}
}

func (p Party) Name() string    { return p.name }
func (p Party) Contact() string { return p.contact }
