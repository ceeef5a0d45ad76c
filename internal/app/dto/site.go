package dto

import (
	domainlistings "bnb/internal/domain/listings"
)

// Site is the branding and contact block shown on every page.
type Site struct {
	Name   string `json:"name"`
	Accent string `json:"accent"`
	Gold   string `json:"gold"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

func MapSite(c domainlistings.Catalog) Site {
	c = c.WithDefaults()
	return Site{
		Name:   c.Brand.Name,
		Accent: c.Brand.Accent,
		Gold:   c.Brand.Gold,
		Email:  c.Contact.Email,
		Phone:  c.Contact.Phone,
	}
}

// Room is the public card for one room.
type Room struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Info       string   `json:"info"`
	Currency   string   `json:"currency"`
	Price      string   `json:"price"`
	PriceLabel string   `json:"price_label"`
	Cover      string   `json:"cover,omitempty"`
	Images     []string `json:"images"`
}

func MapRoom(r domainlistings.Room) Room {
	images := append([]string{}, r.Images...)
	return Room{
		ID:         r.ID,
		Name:       r.Name,
		Info:       r.Info,
		Currency:   r.Currency,
		Price:      r.Price.String(),
		PriceLabel: r.PriceLabel(),
		Cover:      r.CoverImage(),
		Images:     images,
	}
}

func MapRooms(rooms []domainlistings.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, MapRoom(r))
	}
	return out
}
