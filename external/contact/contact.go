package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

const (
	SchemeTel      = "tel"
	SchemeWhatsApp = "whatsapp"
)

var (
	ErrNoContact     = fmt.Errorf("%w: no phone number", nearby.ErrUnreachable)
	ErrUnknownScheme = fmt.Errorf("unknown contact scheme")
)

type ActorReader interface {
	GetActor(actorID string) (*schema.Actor, error)
}

// Directory composes contact handles out of the phone number of an actor
type Directory struct {
	actors ActorReader
	scheme string
}

func NewDirectory(actors ActorReader, scheme string) (*Directory, error) {
	switch scheme {
	case "":
		scheme = SchemeTel
	case SchemeTel, SchemeWhatsApp:
	default:
		return nil, ErrUnknownScheme
	}

	return &Directory{
		actors: actors,
		scheme: scheme,
	}, nil
}

// ContactHandle returns a link through which the actor can be reached
func (d *Directory) ContactHandle(ctx context.Context, actorID string) (string, error) {
	actor, err := d.actors.GetActor(actorID)
	if err != nil {
		return "", err
	}

	digits := normalizePhone(actor.Contact)
	if digits == "" {
		return "", ErrNoContact
	}

	switch d.scheme {
	case SchemeWhatsApp:
		return "https://wa.me/" + digits, nil
	default:
		return "tel:+" + digits, nil
	}
}

// normalizePhone keeps the digits of an international number
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
