package config

// Credentials holds the demo storefront accounts
type Credentials struct {
	Password        string
	StandardUser    string
	LockedUser      string
	ProblemUser     string
	PerformanceUser string
}

// LoadCredentials loads account names from environment variables, falling
// back to the accounts the demo site publishes on its login page
func LoadCredentials(getenv func(string) string) *Credentials {
	return &Credentials{
		Password:        envOr(getenv, "SAUCE_PASSWORD", "secret_sauce"),
		StandardUser:    envOr(getenv, "SAUCE_STANDARD_USER", "standard_user"),
		LockedUser:      envOr(getenv, "SAUCE_LOCKED_USER", "locked_out_user"),
		ProblemUser:     envOr(getenv, "SAUCE_PROBLEM_USER", "problem_user"),
		PerformanceUser: envOr(getenv, "SAUCE_PERFORMANCE_USER", "performance_glitch_user"),
	}
}

// AllowedUsers returns the accounts that are expected to reach the shop
func (c *Credentials) AllowedUsers() []string {
	return []string{c.StandardUser, c.ProblemUser, c.PerformanceUser}
}
