package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

const (
	logPrefix      = "geo"
	defaultTimeout = 5 * time.Second
)

var (
	ErrNoGeoInfoFound       = fmt.Errorf("no geo information found")
	ErrEmptyAddress         = fmt.Errorf("empty address")
	ErrGeocoderNotAvailable = fmt.Errorf("geocoder is not available")
)

// Address is the result of resolving a free-text address
type Address struct {
	schema.Location
	City             string `json:"city"`
	Country          string `json:"country"`
	FormattedAddress string `json:"formatted_address"`
}

// Geocoder resolves an address text into coordinates
type Geocoder interface {
	ResolveCoordinates(ctx context.Context, address string) (*Address, error)
}

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(client *maps.Client) *GoogleGeocoder {
	return &GoogleGeocoder{
		client: client,
	}
}

// NewGoogleGeocoderFromKey builds a maps client from an api key
func NewGoogleGeocoderFromKey(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")
		return nil, err
	}
	return NewGoogleGeocoder(client), nil
}

func (g *GoogleGeocoder) ResolveCoordinates(ctx context.Context, address string) (*Address, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: "en",
	})
	if nil != err {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"error":   err,
		}).Error("geocode address")
		return nil, err
	}

	if len(geos) == 0 {
		return nil, ErrNoGeoInfoFound
	}

	result := &Address{
		Location: schema.Location{
			Latitude:  geos[0].Geometry.Location.Lat,
			Longitude: geos[0].Geometry.Location.Lng,
		},
		FormattedAddress: geos[0].FormattedAddress,
	}

	var level1 string
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) > 0 {
			switch a.Types[0] {
			case "locality":
				result.City = a.LongName
			case "administrative_area_level_1":
				level1 = a.LongName
			case "country":
				result.Country = a.LongName
			}
		}
	}

	if result.City == "" {
		result.City = level1
	}

	return result, nil
}
