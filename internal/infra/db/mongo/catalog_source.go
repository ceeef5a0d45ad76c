package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bnb/internal/app/policies"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/domain/shared/daterange"
)

const (
	roomsCollection = "rooms"
	siteCollection  = "site"
	siteDocumentID  = "site"
)

// CatalogSource builds the data document from a rooms collection, ordered by
// position, and an optional site document holding brand and contact.
type CatalogSource struct {
	db *mongo.Database
}

func NewCatalogSource(db *mongo.Database) *CatalogSource {
	return &CatalogSource{db: db}
}

func (s *CatalogSource) Name() string { return "mongo:" + s.db.Name() }

func (s *CatalogSource) Load(ctx context.Context) (domainlistings.Catalog, error) {
	var site siteDocument
	err := s.db.Collection(siteCollection).FindOne(ctx, bson.M{"_id": siteDocumentID}).Decode(&site)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return domainlistings.Catalog{}, fmt.Errorf("load site document: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.db.Collection(roomsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return domainlistings.Catalog{}, fmt.Errorf("find rooms: %w", err)
	}
	var docs []roomDocument
	if err := cur.All(ctx, &docs); err != nil {
		return domainlistings.Catalog{}, fmt.Errorf("decode rooms: %w", err)
	}
	return mapCatalog(site, docs)
}

type siteDocument struct {
	Brand struct {
		Name   string `bson:"name"`
		Accent string `bson:"accent"`
		Gold   string `bson:"gold"`
	} `bson:"brand"`
	Contact struct {
		Email string `bson:"email"`
		Phone string `bson:"phone"`
	} `bson:"contact"`
}

type rangeDocument struct {
	Start string `bson:"start"`
	End   string `bson:"end"`
}

type roomDocument struct {
	ID           string               `bson:"_id"`
	Position     int                  `bson:"position"`
	Name         string               `bson:"name"`
	Info         string               `bson:"info"`
	Currency     string               `bson:"currency"`
	Price        priceValue      `bson:"price"`
	Images       []string        `bson:"images"`
	BookedRanges []rangeDocument `bson:"booked_ranges"`
}

// priceValue accepts whatever numeric type the price was written with:
// int32, int64, double, decimal128, or a decimal string.
type priceValue struct {
	decimal.Decimal
}

func (p *priceValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		p.Decimal = decimal.NewFromInt32(raw.Int32())
	case bsontype.Int64:
		p.Decimal = decimal.NewFromInt(raw.Int64())
	case bsontype.Double:
		p.Decimal = decimal.NewFromFloat(raw.Double())
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(raw.Decimal128().String())
		if err != nil {
			return fmt.Errorf("decimal128 price: %w", err)
		}
		p.Decimal = d
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return fmt.Errorf("string price: %w", err)
		}
		p.Decimal = d
	case bsontype.Null:
		p.Decimal = decimal.Zero
	default:
		return fmt.Errorf("unsupported price type %s", t)
	}
	return nil
}

func mapCatalog(site siteDocument, docs []roomDocument) (domainlistings.Catalog, error) {
	c := domainlistings.Catalog{
		Brand: domainlistings.Brand{
			Name:   site.Brand.Name,
			Accent: site.Brand.Accent,
			Gold:   site.Brand.Gold,
		},
		Contact: domainlistings.Contact{
			Email: site.Contact.Email,
			Phone: site.Contact.Phone,
		},
		Rooms: make([]domainlistings.Room, 0, len(docs)),
	}
	for _, d := range docs {
		room, err := d.toDomain()
		if err != nil {
			return domainlistings.Catalog{}, fmt.Errorf("room %s: %w", d.ID, err)
		}
		c.Rooms = append(c.Rooms, room)
	}
	return c, nil
}

func (d roomDocument) toDomain() (domainlistings.Room, error) {
	ranges := make([]daterange.Range, 0, len(d.BookedRanges))
	for _, r := range d.BookedRanges {
		rng, err := daterange.ParseRange(r.Start, r.End)
		if err != nil {
			return domainlistings.Room{}, err
		}
		ranges = append(ranges, rng)
	}
	return domainlistings.Room{
		ID:           d.ID,
		Name:         d.Name,
		Info:         d.Info,
		Currency:     d.Currency,
		Price:        d.Price.Decimal,
		Images:       append([]string{}, d.Images...),
		BookedRanges: ranges,
	}, nil
}

var _ policies.CatalogSource = (*CatalogSource)(nil)
