package domain

import "fmt"

// Channel is a digest delivery channel
type Channel string

// supported channel identifiers
const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
)

// User is a digest reader, owned by the user management service and read-only here
type User struct {
	ID            int64
	Name          string
	DigestTime    string // HH:mm, local to the delivery time zone
	DigestChannel Channel
	Phone         string
	Email         string
	Active        bool
}

// Recipient returns the channel specific recipient identifier
func (u *User) Recipient(ch Channel) (string, error) {
	switch ch {
	case ChannelWhatsApp:
		if u.Phone == "" {
			return "", fmt.Errorf("user %d has no phone number", u.ID)
		}
		return u.Phone, nil
	case ChannelEmail:
		if u.Email == "" {
			return "", fmt.Errorf("user %d has no email", u.ID)
		}
		return u.Email, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChannel, ch)
	}
}
