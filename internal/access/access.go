// Package access enforces the allow-list of association members permitted to
// use the bot.
package access

import (
	"fjacquet/flatbot/internal/logging"
)

// RefusalMessage is sent to unauthorized users. No further processing occurs.
const RefusalMessage = "Sorry, this bot is private to the flat association."

// Allowlist is the set of authorized user ids.
type Allowlist struct {
	ids map[int64]struct{}
	log logging.Logger
}

// New builds an allow-list from the configured user ids.
func New(ids []int64, log logging.Logger) *Allowlist {
	if log == nil {
		log = logging.GetLogger()
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Allowlist{ids: set, log: log}
}

// Allowed reports whether the user may use the bot. Denied attempts are
// recorded for audit.
func (a *Allowlist) Allowed(userID int64) bool {
	if _, ok := a.ids[userID]; ok {
		return true
	}
	a.log.Warn("Unauthorized access attempt",
		logging.Field{Key: logging.FieldUserID, Value: userID})
	return false
}
