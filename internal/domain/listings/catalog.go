package listings

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"bnb/internal/domain/availability"
	"bnb/internal/domain/shared/daterange"
	"bnb/internal/domain/shared/money"
)

var (
	ErrRoomNotFound = errors.New("listings: room not found")
	ErrNoRooms      = errors.New("listings: catalog has no rooms")
)

const (
	DefaultBrandName = "Andrew's B&B"
	DefaultAccent    = "#7a0014"
	DefaultGold      = "#caa04a"
	DefaultEmail     = "example@example.com"
	DefaultPhone     = "+44 20 7946 0958"
)

type Brand struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Accent string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Gold   string `json:"gold,omitempty" yaml:"gold,omitempty"`
}

type Contact struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Room is one bookable room from the data document. Price and currency are
// taken as given.
type Room struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Info         string            `json:"info" yaml:"info"`
	Currency     string            `json:"currency" yaml:"currency"`
	Price        decimal.Decimal   `json:"price" yaml:"price"`
	Images       []string          `json:"images" yaml:"images"`
	BookedRanges []daterange.Range `json:"bookedRanges" yaml:"bookedRanges"`
}

// MarshalJSON writes the price as a JSON number, the form the data document
// uses, without touching decimal's package-wide quoting switch.
func (r Room) MarshalJSON() ([]byte, error) {
	type plain Room
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(r), Price: json.Number(r.Price.String())})
}

func (r Room) Nightly() money.Money {
	return money.New(r.Price, r.Currency)
}

func (r Room) Availability() availability.Index {
	return availability.NewIndex(r.BookedRanges...)
}

// CoverImage is the first image or "" when the room has none.
func (r Room) CoverImage() string {
	if len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}

// PriceLabel renders "£100 / night".
func (r Room) PriceLabel() string {
	return r.Nightly().String() + " / night"
}

// Catalog is the whole site data document.
type Catalog struct {
	Brand   Brand   `json:"brand" yaml:"brand"`
	Contact Contact `json:"contact" yaml:"contact"`
	Rooms   []Room  `json:"rooms" yaml:"rooms"`
}

// WithDefaults returns a copy with empty brand and contact fields filled in.
func (c Catalog) WithDefaults() Catalog {
	out := c
	out.Brand.Name = fallback(c.Brand.Name, DefaultBrandName)
	out.Brand.Accent = fallback(c.Brand.Accent, DefaultAccent)
	out.Brand.Gold = fallback(c.Brand.Gold, DefaultGold)
	out.Contact.Email = fallback(c.Contact.Email, DefaultEmail)
	out.Contact.Phone = fallback(c.Contact.Phone, DefaultPhone)
	return out
}

func (c Catalog) Room(id string) (Room, error) {
	for _, r := range c.Rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return Room{}, ErrRoomNotFound
}

// RoomOrFirst finds the room by id and falls back to the first room when the
// id is empty or unknown.
func (c Catalog) RoomOrFirst(id string) (Room, error) {
	if r, err := c.Room(id); err == nil {
		return r, nil
	}
	if len(c.Rooms) == 0 {
		return Room{}, ErrNoRooms
	}
	return c.Rooms[0], nil
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
