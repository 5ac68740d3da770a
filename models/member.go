package models

import "time"

const (
	// GeneralMemberID is the "Umum" walk-in customer. No member price applies to it.
	GeneralMemberID   = 0
	GeneralMemberName = "Umum"
)

type Member struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeneralMember is always selectable at the cashier and is the default selection.
func GeneralMember() Member {
	return Member{ID: GeneralMemberID, Name: GeneralMemberName}
}
