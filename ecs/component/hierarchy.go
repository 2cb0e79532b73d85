package component

// Parent links an attached entity (a sensor, say) to its owner.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Children lists the entities attached to an owner. Destroying the owner
// recursively destroys these too.
type Children struct {
	Entities []uint64
}

var ChildrenComponent = NewComponent[Children]()
