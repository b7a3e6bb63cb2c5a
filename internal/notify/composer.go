package notify

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"text/template"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
)

const siteName = "RailSathi"

// defaultTemplate is used when no template file exists at the configured
// path. It supports the same placeholders as the file-based template.
const defaultTemplate = `Passenger Complaint Submitted

A new passenger complaint has been received.

Complaint ID   : {{.complain_id}}
Submitted At   : {{.created_at}}
Complaint Date : {{.complaint_date}}

Passenger Info:
---------------
Name           : {{.passenger_name}}
Phone Number   : {{.user_phone_number}}

Travel Details:
---------------
Train Number   : {{.train_no}}
Train Name     : {{.train_name}}
Coach          : {{.coach}}
Berth Number   : {{.berth}}
PNR            : {{.pnr}}
Journey Start  : {{.start_date_of_journey}}

Complaint Details:
------------------
Description    : {{.description}}

Train Depot    : {{.train_depo}}

Regards,
Team {{.site_name}}
`

// Composer renders the notification subject and body for a complaint.
type Composer struct {
	env          string
	templatePath string
}

// NewComposer builds a composer from mail settings and the deployment
// environment tag.
func NewComposer(cfg config.MailConfig, env string) *Composer {
	return &Composer{env: env, templatePath: cfg.TemplatePath}
}

// Render produces the subject line and plain-text body for the complaint.
func (c *Composer) Render(details ComplaintDetails) (subject, body string, err error) {
	text := defaultTemplate
	if c.templatePath != "" {
		if data, readErr := os.ReadFile(c.templatePath); readErr == nil {
			text = string(data)
		}
	}

	tmpl, parseErr := template.New("complaint_email").Parse(text)
	if parseErr != nil {
		// a broken file template falls back to the built-in one
		tmpl = template.Must(template.New("complaint_email").Parse(defaultTemplate))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c.context(details)); err != nil {
		return "", "", fmt.Errorf("render complaint email: %w", err)
	}
	return c.subject(details), buf.String(), nil
}

// subject embeds the environment tag, the train number and the journey
// commencement date when one is known.
func (c *Composer) subject(details ComplaintDetails) string {
	var tag string
	switch c.env {
	case config.EnvUAT:
		tag = "UAT "
	case config.EnvProd:
		tag = ""
	default:
		tag = "LOCAL "
	}

	subject := fmt.Sprintf("%sComplaint received for train number: %s", tag, details.TrainKey())
	if start := c.journeyStart(details); start != "" {
		subject += fmt.Sprintf(" journey date: %s", start)
	}
	return subject
}

func (c *Composer) journeyStart(details ComplaintDetails) string {
	if details.DateOfJourney != "" {
		return details.DateOfJourney
	}
	if date, ok := details.ComplaintDate(); ok {
		return date.Format(dateLayout)
	}
	return ""
}

func (c *Composer) context(details ComplaintDetails) map[string]string {
	pnr := details.PNR
	if pnr == "" {
		pnr = "PNR not provided by passenger"
	}
	complaintDate := ""
	if date, ok := details.ComplaintDate(); ok {
		complaintDate = date.Format(dateLayout)
	}

	return map[string]string{
		"complain_id":           strconv.FormatInt(details.ComplainID, 10),
		"created_at":            details.CreatedAtDisplay(),
		"passenger_name":        details.PassengerName,
		"user_phone_number":     details.UserPhoneNumber,
		"train_no":              details.TrainKey(),
		"train_name":            details.TrainName,
		"coach":                 details.Coach,
		"berth":                 details.Berth,
		"pnr":                   pnr,
		"description":           details.Description,
		"train_depo":            details.TrainDepot,
		"complaint_date":        complaintDate,
		"start_date_of_journey": c.journeyStart(details),
		"site_name":             siteName,
	}
}
