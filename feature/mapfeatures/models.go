package mapfeatures

// ImageNote is the user-submitted note a map feature is attached to.
// Only the columns read by linking are mapped.
type ImageNote struct {
	ID            int64   `gorm:"column:id;primaryKey"`
	Lat           float64 `gorm:"column:lat"`
	Lon           float64 `gorm:"column:lon"`
	ProcessedByID *int64  `gorm:"column:processed_by_id"`
}

// TableName overrides the table name.
func (ImageNote) TableName() string {
	return "olmap_osmimagenote"
}

// OSMFeature registers an OSM node id that something has been linked to.
type OSMFeature struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
}

// TableName overrides the table name.
func (OSMFeature) TableName() string {
	return "olmap_osmfeature"
}

// NoteOSMFeature is the image note ↔ OSM feature association row.
type NoteOSMFeature struct {
	ID           int64 `gorm:"column:id;primaryKey"`
	ImageNoteID  int64 `gorm:"column:osmimagenote_id;uniqueIndex:olmap_note_osmfeature"`
	OSMFeatureID int64 `gorm:"column:osmfeature_id;uniqueIndex:olmap_note_osmfeature"`
}

// TableName overrides the table name.
func (NoteOSMFeature) TableName() string {
	return "olmap_osmimagenote_osm_features"
}

// Address is a row of the official address registry.
type Address struct {
	ID          int64    `gorm:"column:id;primaryKey"`
	Street      string   `gorm:"column:street"`
	HouseNumber *string  `gorm:"column:housenumber"`
	City        string   `gorm:"column:city"`
	Lat         *float64 `gorm:"column:lat"`
	Lon         *float64 `gorm:"column:lon"`
}

// TableName overrides the table name.
func (Address) TableName() string {
	return "olmap_address"
}

// NoteAddress is the image note ↔ address association row.
type NoteAddress struct {
	ID          int64 `gorm:"column:id;primaryKey"`
	ImageNoteID int64 `gorm:"column:osmimagenote_id;uniqueIndex:olmap_note_address"`
	AddressID   int64 `gorm:"column:address_id;uniqueIndex:olmap_note_address"`
}

// TableName overrides the table name.
func (NoteAddress) TableName() string {
	return "olmap_osmimagenote_addresses"
}

// WorkplaceType classifies workplaces and carries the OSM tags implied by the class.
type WorkplaceType struct {
	ID      int64          `gorm:"column:id;primaryKey"`
	Label   string         `gorm:"column:label"`
	OSMTags map[string]any `gorm:"column:osm_tags;serializer:json"`
}

// TableName overrides the table name.
func (WorkplaceType) TableName() string {
	return "olmap_workplacetype"
}

// Base holds the columns shared by every map feature table.
type Base struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	ImageNoteID  int64  `gorm:"column:image_note_id"`
	OSMFeatureID *int64 `gorm:"column:osm_feature_id"`
}

func (b Base) base() Base {
	return b
}

// StreetAddress holds the address columns of addressable features.
type StreetAddress struct {
	Street      string  `gorm:"column:street"`
	HouseNumber *string `gorm:"column:housenumber"`
	Unit        string  `gorm:"column:unit"`
}

func (a StreetAddress) streetAddress() StreetAddress {
	return a
}

// Lockable holds the access columns of features that can be closed.
type Lockable struct {
	Access       string   `gorm:"column:access"`
	Width        *float64 `gorm:"column:width"`
	Height       *float64 `gorm:"column:height"`
	Buzzer       *bool    `gorm:"column:buzzer"`
	Keycode      *bool    `gorm:"column:keycode"`
	Phone        string   `gorm:"column:phone"`
	OpeningHours string   `gorm:"column:opening_hours"`
}

// Entrance is a building entrance.
type Entrance struct {
	Base
	StreetAddress
	Lockable
	Type        string `gorm:"column:type"`
	Description string `gorm:"column:description"`
	Wheelchair  *bool  `gorm:"column:wheelchair"`
	Loadingdock bool   `gorm:"column:loadingdock"`
}

// TableName overrides the table name.
func (Entrance) TableName() string {
	return "olmap_entrance"
}

// Steps is a flight of steps.
type Steps struct {
	Base
	StepCount *int     `gorm:"column:step_count"`
	Handrail  *bool    `gorm:"column:handrail"`
	Ramp      *bool    `gorm:"column:ramp"`
	Width     *float64 `gorm:"column:width"`
	Incline   string   `gorm:"column:incline"`
}

// TableName overrides the table name.
func (Steps) TableName() string {
	return "olmap_steps"
}

// Gate is a gate or lift gate.
type Gate struct {
	Base
	Lockable
	LiftGate bool `gorm:"column:lift_gate"`
}

// TableName overrides the table name.
func (Gate) TableName() string {
	return "olmap_gate"
}

// Barrier is a fence, wall, block or bollard.
type Barrier struct {
	Base
	Type string `gorm:"column:type"`
}

// TableName overrides the table name.
func (Barrier) TableName() string {
	return "olmap_barrier"
}

// Workplace is a business or office reachable through an entrance.
type Workplace struct {
	Base
	StreetAddress
	TypeID              int64         `gorm:"column:type_id"`
	Type                WorkplaceType `gorm:"foreignKey:TypeID"`
	Name                string        `gorm:"column:name"`
	Phone               string        `gorm:"column:phone"`
	OpeningHours        string        `gorm:"column:opening_hours"`
	OpeningHoursCovid19 string        `gorm:"column:opening_hours_covid19"`
	Level               string        `gorm:"column:level"`
}

// TableName overrides the table name.
func (Workplace) TableName() string {
	return "olmap_workplace"
}

// InfoBoard is a map or information board.
type InfoBoard struct {
	Base
	Type string `gorm:"column:type"`
}

// TableName overrides the table name.
func (InfoBoard) TableName() string {
	return "olmap_infoboard"
}

// TrafficSign is a road sign relevant to deliveries.
type TrafficSign struct {
	Base
	Type string `gorm:"column:type"`
	Text string `gorm:"column:text"`
}

// TableName overrides the table name.
func (TrafficSign) TableName() string {
	return "olmap_trafficsign"
}

// UnloadingPlace is a spot where vehicles can be unloaded.
type UnloadingPlace struct {
	Base
	Length       *float64 `gorm:"column:length"`
	Width        *float64 `gorm:"column:width"`
	MaxWeight    *float64 `gorm:"column:max_weight"`
	Description  string   `gorm:"column:description"`
	OpeningHours string   `gorm:"column:opening_hours"`
}

// TableName overrides the table name.
func (UnloadingPlace) TableName() string {
	return "olmap_unloadingplace"
}
