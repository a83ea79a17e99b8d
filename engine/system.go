package engine

// System is one step of the tick
type System interface {
	Name() string
	Priority() int
	Update()
}
