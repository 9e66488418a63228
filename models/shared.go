package models

// GeoPoint represents a GeoJSON Point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lon, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Valid reports whether the point carries a usable coordinate pair.
func (g *GeoPoint) Valid() bool {
	return g != nil && len(g.Coordinates) == 2
}

// Lon returns the longitude component.
func (g *GeoPoint) Lon() float64 { return g.Coordinates[0] }

// Lat returns the latitude component.
func (g *GeoPoint) Lat() float64 { return g.Coordinates[1] }
