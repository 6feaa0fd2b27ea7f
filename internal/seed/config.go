package seed

// Config controls the shape of the generated demo graph.
type Config struct {
	NumUsers         int
	NumProducts      int
	FriendsPerUser   int
	MaxOrdersPerUser int
	Seed             int64
}

// DefaultConfig returns the default generation parameters.
func DefaultConfig() Config {
	return Config{
		NumUsers:         50,
		NumProducts:      120,
		FriendsPerUser:   4,
		MaxOrdersPerUser: 6,
		Seed:             1,
	}
}
