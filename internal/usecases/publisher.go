package usecases

// Publisher pushes events to connected socket clients. Delivery is
// best-effort; an empty room is not an error.
type Publisher interface {
	ToRoom(room string, event string, data interface{})
	ToAll(event string, data interface{})
}
