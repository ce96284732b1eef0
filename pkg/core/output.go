package core

// OutputWriter publishes key=value pairs to the CI system.
type OutputWriter interface {
	Write(key, value string) error
}
