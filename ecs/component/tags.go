package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Name identifies an entity for lookups such as a camera target.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
