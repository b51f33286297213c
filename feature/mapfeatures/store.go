package mapfeatures

import (
	"context"
	"fmt"

	"osm-linker/core/reconcile"
	"osm-linker/core/spatial"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// noteBatchSize bounds the id list of a single note lookup.
const noteBatchSize = 500

// Store reads map features and writes links through gorm.
// It implements reconcile.Store, reconcile.AddressRegistry and, for the OSM
// pass, reconcile.LinkState.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Instances returns the processed instances of featureType.
func (s *Store) Instances(ctx context.Context, featureType string, unlinkedOnly bool) ([]reconcile.Instance, error) {
	def, ok := Lookup(featureType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", reconcile.ErrUnknownType, featureType)
	}

	rows, err := def.load(ctx, s.db, unlinkedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", def.Table, err)
	}
	if len(rows) == 0 {
		return []reconcile.Instance{}, nil
	}

	noteIDs := make([]int64, 0, len(rows))
	for _, r := range rows {
		noteIDs = append(noteIDs, r.base().ImageNoteID)
	}
	notes, err := s.notes(ctx, noteIDs)
	if err != nil {
		return nil, err
	}

	instances := make([]reconcile.Instance, 0, len(rows))
	for _, r := range rows {
		b := r.base()
		note, ok := notes[b.ImageNoteID]
		if !ok {
			continue
		}

		inst := reconcile.Instance{
			ID:       b.ID,
			Type:     def.Name,
			NoteID:   b.ImageNoteID,
			Position: spatial.Point{Lat: note.Lat, Lon: note.Lon},
			Tags:     r.OSMTags(),
		}
		if a, ok := r.(addressable); ok {
			addr := a.streetAddress()
			inst.Street = addr.Street
			inst.HouseNumber = deref(addr.HouseNumber)
		}
		instances = append(instances, inst)
	}

	return instances, nil
}

// notes loads image notes by id in batches.
func (s *Store) notes(ctx context.Context, ids []int64) (map[int64]ImageNote, error) {
	byID := make(map[int64]ImageNote, len(ids))
	for start := 0; start < len(ids); start += noteBatchSize {
		end := start + noteBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		var batch []ImageNote
		if err := s.db.WithContext(ctx).Where("id IN ?", ids[start:end]).Find(&batch).Error; err != nil {
			return nil, fmt.Errorf("failed to query image notes: %w", err)
		}
		for _, n := range batch {
			byID[n.ID] = n
		}
	}
	return byID, nil
}

// IsLinked reports whether the instance's row already carries an OSM link.
func (s *Store) IsLinked(ctx context.Context, inst reconcile.Instance) (bool, error) {
	def, ok := Lookup(inst.Type)
	if !ok {
		return false, fmt.Errorf("%w: %s", reconcile.ErrUnknownType, inst.Type)
	}

	var count int64
	err := s.db.WithContext(ctx).
		Table(def.Table).
		Where("id = ? AND osm_feature_id IS NOT NULL", inst.ID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to read link of %s %d: %w", inst.Type, inst.ID, err)
	}
	return count > 0, nil
}

// LinkOSM registers the OSM node, fills the instance's empty link column and
// associates the node with the instance's image note, all in one transaction.
// An existing link is never overwritten; in that case nothing is written and
// false is returned.
func (s *Store) LinkOSM(ctx context.Context, inst reconcile.Instance, osmID int64) (bool, error) {
	def, ok := Lookup(inst.Type)
	if !ok {
		return false, fmt.Errorf("%w: %s", reconcile.ErrUnknownType, inst.Type)
	}

	linked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&OSMFeature{ID: osmID}).Error; err != nil {
			return fmt.Errorf("failed to register osm feature %d: %w", osmID, err)
		}

		res := tx.Table(def.Table).
			Where("id = ? AND osm_feature_id IS NULL", inst.ID).
			Update("osm_feature_id", osmID)
		if res.Error != nil {
			return fmt.Errorf("failed to link %s %d: %w", inst.Type, inst.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		assoc := &NoteOSMFeature{ImageNoteID: inst.NoteID, OSMFeatureID: osmID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error; err != nil {
			return fmt.Errorf("failed to associate note %d with osm feature %d: %w", inst.NoteID, osmID, err)
		}

		linked = true
		return nil
	})

	return linked, err
}

// LinkAddress associates the instance's image note with a registry address.
// It returns false when the association already existed.
func (s *Store) LinkAddress(ctx context.Context, inst reconcile.Instance, addressID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&NoteAddress{ImageNoteID: inst.NoteID, AddressID: addressID})
	if res.Error != nil {
		return false, fmt.Errorf("failed to associate note %d with address %d: %w", inst.NoteID, addressID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Addresses returns the registry rows of city that carry a position.
func (s *Store) Addresses(ctx context.Context, city string) ([]reconcile.Address, error) {
	var rows []Address
	err := s.db.WithContext(ctx).
		Where("city = ? AND lat IS NOT NULL AND lon IS NOT NULL", city).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses of %s: %w", city, err)
	}

	out := make([]reconcile.Address, 0, len(rows))
	for _, r := range rows {
		out = append(out, reconcile.Address{
			ID:          r.ID,
			Street:      r.Street,
			HouseNumber: deref(r.HouseNumber),
			Lat:         *r.Lat,
			Lon:         *r.Lon,
		})
	}
	return out, nil
}

// NoteAddressIDs returns the addresses associated with an image note.
func (s *Store) NoteAddressIDs(ctx context.Context, noteID int64) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&NoteAddress{}).
		Where("osmimagenote_id = ?", noteID).
		Pluck("address_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses of note %d: %w", noteID, err)
	}
	return ids, nil
}

// Models returns every model the store reads or writes, for migrations in tests
// and development databases.
func Models() []any {
	return []any{
		&ImageNote{}, &OSMFeature{}, &NoteOSMFeature{}, &Address{}, &NoteAddress{}, &WorkplaceType{},
		&Entrance{}, &Steps{}, &Gate{}, &Barrier{}, &Workplace{}, &InfoBoard{}, &TrafficSign{}, &UnloadingPlace{},
	}
}

// ExpectedSchema lists the columns linking depends on, per table.
func ExpectedSchema() map[string][]string {
	schema := map[string][]string{
		ImageNote{}.TableName():      {"id", "lat", "lon", "processed_by_id"},
		OSMFeature{}.TableName():     {"id"},
		NoteOSMFeature{}.TableName(): {"osmimagenote_id", "osmfeature_id"},
		Address{}.TableName():        {"id", "street", "housenumber", "city", "lat", "lon"},
		NoteAddress{}.TableName():    {"osmimagenote_id", "address_id"},
		WorkplaceType{}.TableName():  {"id", "osm_tags"},
	}
	for _, d := range definitions {
		schema[d.Table] = concat(baseColumns, d.Columns)
	}
	return schema
}
