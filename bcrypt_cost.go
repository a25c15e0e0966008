//go:build !race

package auth

func passwordHashCost() int {
	// Matches the cost the legacy seeding scripts used, so freshly hashed
	// and seeded credentials verify interchangeably.
	return 12
}
