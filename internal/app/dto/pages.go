package dto

import (
	domainbooking "bnb/internal/domain/booking"
)

// RoomCard is a room together with its own calendar on the listing page.
type RoomCard struct {
	Room       Room     `json:"room"`
	Calendar   Calendar `json:"calendar"`
	Focused    bool     `json:"focused"`
	ImageIndex int      `json:"image_index"`
}

// Image is the picture the carousel currently shows, or "".
func (c RoomCard) Image() string {
	if c.ImageIndex < 0 || c.ImageIndex >= len(c.Room.Images) {
		return c.Room.Cover
	}
	return c.Room.Images[c.ImageIndex]
}

type ListingPage struct {
	Site  Site       `json:"site"`
	Rooms []RoomCard `json:"rooms"`
}

// CheckoutPage has no room or calendar when the catalog is empty.
type CheckoutPage struct {
	Site     Site      `json:"site"`
	Room     *Room     `json:"room,omitempty"`
	Calendar *Calendar `json:"calendar,omitempty"`
}

type Confirmation struct {
	RequestID string                `json:"request_id"`
	RoomID    string                `json:"room_id"`
	Message   string                `json:"message"`
	Summary   domainbooking.Summary `json:"summary"`
}
