package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

func staffWithEmail(id int64, email string) domain.StaffUser {
	return domain.StaffUser{ID: id, Email: email}
}

func TestAggregateRecipientsPriorityOrder(t *testing.T) {
	lists := CandidateLists{
		DepotMatched:  []domain.StaffUser{staffWithEmail(1, "warroom@example.com")},
		S2Admins:      []domain.StaffUser{staffWithEmail(2, "s2@example.com")},
		RailwayAdmins: []domain.StaffUser{staffWithEmail(3, "railway@example.com")},
		AccessGranted: []domain.StaffUser{staffWithEmail(4, "grant@example.com")},
	}

	set := AggregateRecipients(lists)

	assert.Equal(t, "warroom@example.com", set.Primary())
	assert.Equal(t, []string{"s2@example.com", "railway@example.com", "grant@example.com"}, set.Copies())
	assert.Equal(t, 4, set.Len())
}

func TestAggregateRecipientsDeduplicatesFirstSeen(t *testing.T) {
	lists := CandidateLists{
		DepotMatched:  []domain.StaffUser{staffWithEmail(1, "shared@example.com")},
		S2Admins:      []domain.StaffUser{staffWithEmail(2, "shared@example.com"), staffWithEmail(3, "s2@example.com")},
		AccessGranted: []domain.StaffUser{staffWithEmail(4, "s2@example.com")},
	}

	set := AggregateRecipients(lists)

	assert.Equal(t, []string{"shared@example.com", "s2@example.com"}, set.All())
}

func TestAggregateRecipientsDropsUndeliverable(t *testing.T) {
	lists := CandidateLists{
		DepotMatched: []domain.StaffUser{
			staffWithEmail(1, ""),
			staffWithEmail(2, "not-an-address"),
			staffWithEmail(3, "noemail_42@example.com"),
		},
		S2Admins: []domain.StaffUser{staffWithEmail(4, "real@example.com")},
	}

	set := AggregateRecipients(lists)

	assert.Equal(t, []string{"real@example.com"}, set.All())
	assert.Nil(t, set.Copies())
}

func TestAggregateRecipientsEmpty(t *testing.T) {
	set := AggregateRecipients(CandidateLists{})

	assert.True(t, set.Empty())
	assert.Equal(t, "", set.Primary())
	assert.Nil(t, set.Copies())
}

func TestIsDeliverableEmail(t *testing.T) {
	assert.True(t, IsDeliverableEmail("user@example.com"))
	assert.False(t, IsDeliverableEmail(""))
	assert.False(t, IsDeliverableEmail("missing-at-sign"))
	assert.False(t, IsDeliverableEmail("noemail@example.com"))
	assert.False(t, IsDeliverableEmail("noemail123@example.com"))
}
