package services

import "strings"

// adminList is the set of emails granted the global elevated role, parsed
// from the ADMIN_EMAILS configuration value.
type adminList map[string]struct{}

func newAdminList(csv string) adminList {
	list := make(adminList)
	for _, p := range strings.Split(csv, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			list[trimmed] = struct{}{}
		}
	}
	return list
}

func (a adminList) contains(email string) bool {
	_, ok := a[email]
	return ok
}
