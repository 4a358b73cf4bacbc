package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// POIFixture - a row inserted directly, bypassing the repository
type POIFixture struct {
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// LandmarkFixtures - real places used across suites
var LandmarkFixtures = []POIFixture{
	{Name: "Taj Mahal", Latitude: 27.1751, Longitude: 78.0421},
	{Name: "Agra Fort", Latitude: 27.1795, Longitude: 78.0211},
	{Name: "Mehtab Bagh", Latitude: 27.1800, Longitude: 78.0440},
	{Name: "Fatehpur Sikri", Latitude: 27.0945, Longitude: 77.6679},
	{Name: "India Gate", Latitude: 28.6129, Longitude: 77.2295},
}

// InsertPOIs inserts fixtures with location derived the same way the service does
// and returns the assigned ids in insertion order
func InsertPOIs(ctx context.Context, db *sqlx.DB, fixtures []POIFixture) ([]int64, error) {
	ids := make([]int64, 0, len(fixtures))
	for _, f := range fixtures {
		createdAt := f.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		var id int64
		err := db.QueryRowContext(ctx, `
			INSERT INTO pois (name, latitude, longitude, location, created_at, updated_at)
			VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($3, $2), 4326), $4, $4)
			RETURNING id`,
			f.Name, f.Latitude, f.Longitude, createdAt,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert fixture %s: %w", f.Name, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// SequentialFixtures builds n fixtures with strictly increasing created_at
func SequentialFixtures(n int, start time.Time) []POIFixture {
	fixtures := make([]POIFixture, 0, n)
	for i := 1; i <= n; i++ {
		fixtures = append(fixtures, POIFixture{
			Name:      fmt.Sprintf("POI %02d", i),
			Latitude:  10 + float64(i)*0.01,
			Longitude: 20 + float64(i)*0.01,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		})
	}
	return fixtures
}
