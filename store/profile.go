package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// mongo measures spheres with a slightly larger radius than geo.EarthRadiusKm
const nearSphereSlack = 1.01

// ProfileLocator - actor positions kept in the profile collection
type ProfileLocator interface {
	UpsertProfile(actor schema.Actor) error
	ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error)
}

// UpsertProfile mirrors an actor into the profile collection
func (m *mongoDB) UpsertProfile(actor schema.Actor) error {
	c := m.client.Database(m.database).Collection(schema.ProfileCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	set := bson.M{
		"actor_id": actor.ID,
		"name":     actor.Name,
		"role":     actor.Role,
		"active":   actor.Active,
	}
	update := bson.M{"$set": set}
	if loc := actor.Location(); loc != nil {
		set["location"] = schema.NewGeoJSONPoint(*loc)
	} else {
		update["$unset"] = bson.M{"location": ""}
	}

	if _, err := c.UpdateOne(ctx,
		bson.M{"actor_id": actor.ID},
		update,
		options.Update().SetUpsert(true),
	); err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"actor_id": actor.ID,
			"error":    err,
		}).Error("upsert actor profile")
		return err
	}

	return nil
}

// ActorsWithin - find profiles by distance, nearest first
func (m *mongoDB) ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error) {
	c := m.client.Database(m.database).Collection(schema.ProfileCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := distanceQuery(radiusKm*1000*nearSphereSlack, origin)
	if role != "" {
		query = append(query, bson.E{Key: "role", Value: role})
	}

	cur, err := c.Find(ctx, query)
	if nil != err {
		log.WithField("prefix", mongoLogPrefix).Errorf("query actors within distance with error: %s", err)
		return nil, fmt.Errorf("actors within distance query with error: %s", err)
	}
	defer cur.Close(ctx)

	actors := make([]schema.Actor, 0)
	for cur.Next(ctx) {
		var p schema.Profile
		if err := cur.Decode(&p); err != nil {
			log.WithField("prefix", mongoLogPrefix).Errorf("decode profile with error: %s", err)
			return nil, fmt.Errorf("actors within distance decode record with error: %s", err)
		}

		a := p.Actor()
		loc := a.Location()
		if loc == nil {
			continue
		}
		if _, ok := geo.Within(origin, *loc, radiusKm); ok {
			actors = append(actors, a)
		}
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("actors within %.2fkm: %d", radiusKm, len(actors))

	return actors, nil
}

// $nearSphere provides documents from nearest to farthest
// reference: https://docs.mongodb.com/manual/reference/operator/query/nearSphere/#op._S_nearSphere
func distanceQuery(meters float64, cords schema.Location) bson.D {
	return bson.D{{
		Key: "location",
		Value: bson.D{{
			Key: "$nearSphere",
			Value: bson.D{{
				Key: "$geometry",
				Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: bson.A{cords.Longitude, cords.Latitude}},
				},
			}, {
				Key:   "$maxDistance",
				Value: meters,
			}},
		}},
	}}
}
