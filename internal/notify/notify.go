package notify

import (
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	// Add urgency
	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Add timeout (in milliseconds)
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	// Add icon if specified
	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	// Add app name
	args = append(args, "-a", "obstick")

	// Add title and body
	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	// Execute notify-send
	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendTimeUp sends a countdown completion notification
func (n *Notifier) SendTimeUp(detail string) error {
	return n.Send(Notification{
		Title:   "Time's up!",
		Body:    detail,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})
}
