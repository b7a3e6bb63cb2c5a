package notify

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ComplaintDetails is the immutable complaint snapshot handed to the
// notification pipeline at creation time. All fields except ComplainID are
// optional; absent values render as empty strings in the email template.
//
// CreatedAt is preferred when set; CreatedAtText covers callers that only
// hold a serialized timestamp.
type ComplaintDetails struct {
	ComplainID      int64
	TrainNo         string
	TrainNumber     string
	TrainName       string
	TrainDepot      string
	DateOfJourney   string
	CreatedAt       time.Time
	CreatedAtText   string
	PassengerName   string
	UserPhoneNumber string
	PNR             string
	Berth           string
	Coach           string
	Description     string
}

// TrainKey returns the train number used for registry and access-grant
// lookups. The snapshot may carry the number in either field depending on
// whether the complaint was linked to a registry row.
func (d ComplaintDetails) TrainKey() string {
	if n := strings.TrimSpace(d.TrainNumber); n != "" {
		return n
	}
	return strings.TrimSpace(d.TrainNo)
}

// ComplaintDate derives the calendar date of the complaint. It accepts a
// native timestamp or an ISO-formatted string of at least ten characters
// truncated to YYYY-MM-DD; anything else reports no date, which disables
// the train-access rule for this complaint.
func (d ComplaintDetails) ComplaintDate() (time.Time, bool) {
	if !d.CreatedAt.IsZero() {
		year, month, day := d.CreatedAt.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	raw := strings.TrimSpace(d.CreatedAtText)
	if len(raw) < len(dateLayout) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, raw[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// CreatedAtDisplay renders the creation timestamp for the template.
func (d ComplaintDetails) CreatedAtDisplay() string {
	if !d.CreatedAt.IsZero() {
		return d.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return d.CreatedAtText
}
