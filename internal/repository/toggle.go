package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pair identifies one row of a toggle set: its table model and the key predicate.
type pair struct {
	model interface{}
	where string
	args  []interface{}
}

// togglePair flips the presence of row in its table and reports whether the
// pair is present afterwards. Each call applies exactly one insert or delete;
// the composite primary key of the table resolves races between concurrent
// toggles of the same pair.
func togglePair(ctx context.Context, db *gorm.DB, key pair, row interface{}) (bool, error) {
	var active bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(key.where, key.args...).Delete(key.model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			active = false
			return nil
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			active = true
			return nil
		}

		// A concurrent toggle inserted the pair after our delete found nothing.
		// That insert is ordered before us, so this call removes it.
		res = tx.Where(key.where, key.args...).Delete(key.model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			active = false
			return nil
		}
		var err error
		active, err = pairExists(tx, key)
		return err
	})
	return active, err
}

func pairExists(db *gorm.DB, key pair) (bool, error) {
	var n int64
	if err := db.Model(key.model).Where(key.where, key.args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
