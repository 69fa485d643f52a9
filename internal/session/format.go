package session

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a timestamp the way the product displays it:
// relative for recent activity, the plain date beyond a week.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Ahora"
	case diff < time.Hour:
		return fmt.Sprintf("Hace %d min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("Hace %dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("Hace %d días", int(diff.Hours()/24))
	default:
		return t.Format("02/01/2006")
	}
}
