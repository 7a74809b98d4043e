package model

import (
	"time"

	"github.com/genradar/genradar/pkg/core"
	"gorm.io/datatypes"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&PointSet{},
	&PointRecord{},
}

// PointSet is a named radar configuration: one center and its points of interest.
type PointSet struct {
	ID        uint          `json:"id" gorm:"primarykey"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Name      string        `json:"name" gorm:"size:127;uniqueIndex"`
	Points    []PointRecord `json:"points" gorm:"foreignKey:PointSetID;constraint:OnDelete:CASCADE"`
}

func (*PointSet) TableName() string {
	return "point_sets"
}

// PointRecord is one stored point. Ordinal keeps the caller's order; the
// center row has IsCenter set and ordinal -1.
type PointRecord struct {
	ID         uint    `json:"-" gorm:"primarykey"`
	PointSetID uint    `json:"-" gorm:"index:idx_point_records_set_ordinal,priority:1"`
	Ordinal    int     `json:"ordinal" gorm:"index:idx_point_records_set_ordinal,priority:2"`
	IsCenter   bool    `json:"isCenter"`
	Label      string  `json:"label" gorm:"size:127"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Altitude   float64 `json:"altitude"`
	// EPSG:3857 position, for map overlays
	MercatorX float64 `json:"mercatorX"`
	MercatorY float64 `json:"mercatorY"`
	// WKB point (lon, lat, alt)
	Location []byte                         `json:"-"`
	Radius   float32                        `json:"radius"`
	Color    datatypes.JSONType[core.Color] `json:"color"`
}

func (*PointRecord) TableName() string {
	return "point_records"
}
