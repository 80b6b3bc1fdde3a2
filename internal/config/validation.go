package config

import "slices"

// IsAdmin reports whether userID may run admin commands. With no admins
// configured every user is allowed.
func (c *Config) IsAdmin(userID int64) bool {
	if len(c.Telegram.AdminUserIDs) == 0 {
		return true
	}
	return slices.Contains(c.Telegram.AdminUserIDs, userID)
}
