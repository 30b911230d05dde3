package mailer

import (
	"fmt"
	"strings"
)

type ReminderData struct {
	Name      string
	EventName string
	Date      string
	Time      string
	Location  string
}

func ReminderEmail(to string, d ReminderData) Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", d.Name)
	fmt.Fprintf(&b, "This is a reminder for your upcoming event: %s\n", d.EventName)
	fmt.Fprintf(&b, "Date: %s\n", d.Date)
	fmt.Fprintf(&b, "Time: %s\n", d.Time)
	fmt.Fprintf(&b, "Location: %s\n\n", d.Location)
	b.WriteString("Thank you for choosing us for your event!\n\nBest regards,\nEvent Management Team")

	return Email{
		ToEmail: to,
		ToName:  d.Name,
		Subject: "Upcoming Event Reminder",
		Text:    b.String(),
	}
}

func PasswordResetEmail(to, name, token string) Email {
	return Email{
		ToEmail: to,
		ToName:  name,
		Subject: "Password reset",
		Text: fmt.Sprintf("Hi %s,\n\nUse this token to reset your password: %s\n"+
			"Send it with your new password to /api/v1/accounts/forgot-password/%s\n\n"+
			"If you did not ask for a reset you can ignore this email.", name, token, token),
	}
}
