package notify

import (
	"strings"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// placeholderPrefix marks directory accounts without a real mailbox.
const placeholderPrefix = "noemail"

// RecipientSet is an ordered sequence of distinct, valid email addresses.
// The first element is the primary (To) recipient; the rest are copy (Cc)
// recipients, preserving first-seen order across the merged rule outputs.
type RecipientSet struct {
	emails []string
}

// AggregateRecipients merges the candidate lists in fixed priority order
// (depot, s2 admin, railway admin, access window), drops invalid or
// placeholder addresses and deduplicates by exact match, first occurrence
// winning. The depot-rule recipient therefore becomes the default primary
// when present.
func AggregateRecipients(lists CandidateLists) RecipientSet {
	ordered := make([]domain.StaffUser, 0,
		len(lists.DepotMatched)+len(lists.S2Admins)+len(lists.RailwayAdmins)+len(lists.AccessGranted))
	ordered = append(ordered, lists.DepotMatched...)
	ordered = append(ordered, lists.S2Admins...)
	ordered = append(ordered, lists.RailwayAdmins...)
	ordered = append(ordered, lists.AccessGranted...)

	seen := make(map[string]struct{}, len(ordered))
	var emails []string
	for _, user := range ordered {
		if !IsDeliverableEmail(user.Email) {
			continue
		}
		if _, dup := seen[user.Email]; dup {
			continue
		}
		seen[user.Email] = struct{}{}
		emails = append(emails, user.Email)
	}
	return RecipientSet{emails: emails}
}

// IsDeliverableEmail rejects empty values, values without "@" and the
// "noemail" placeholder accounts.
func IsDeliverableEmail(email string) bool {
	if email == "" {
		return false
	}
	if !strings.Contains(email, "@") {
		return false
	}
	return !strings.HasPrefix(email, placeholderPrefix)
}

// Empty reports whether no recipient survived aggregation.
func (s RecipientSet) Empty() bool {
	return len(s.emails) == 0
}

// Len returns the number of recipients.
func (s RecipientSet) Len() int {
	return len(s.emails)
}

// Primary returns the To address, or "" when the set is empty.
func (s RecipientSet) Primary() string {
	if len(s.emails) == 0 {
		return ""
	}
	return s.emails[0]
}

// Copies returns the Cc addresses in order; may be empty.
func (s RecipientSet) Copies() []string {
	if len(s.emails) <= 1 {
		return nil
	}
	return s.emails[1:]
}

// All returns every recipient in order.
func (s RecipientSet) All() []string {
	return s.emails
}
