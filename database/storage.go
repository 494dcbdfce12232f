package database

// Storage is the backing store handed to the router and handlers.
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	GetDB() interface{}
}
