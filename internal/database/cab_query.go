package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type CabQuery struct {
	Query[model.CabAllocation]
	id        string
	cabNumber int
}

func NewCabQuery(db *gorm.DB) *CabQuery {
	q := &CabQuery{}
	// seq preserves first-seen upload order
	q.setDefaults(db, "seq")

	return q
}

func (q *CabQuery) Limit(n int) *CabQuery {
	q.limit = n
	return q
}

func (q *CabQuery) ID(id string) *CabQuery {
	q.id = id
	return q
}

func (q *CabQuery) CabNumber(n int) *CabQuery {
	q.cabNumber = n
	return q
}

func (q *CabQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("cab_id = ?", q.id)
	}

	if q.cabNumber != 0 {
		tx = tx.Where("cab_number = ?", q.cabNumber)
	}

	return tx
}

func (q *CabQuery) Get() []*model.CabAllocation {
	return q.get(q.where().Model(&model.CabAllocation{}))
}

func (q *CabQuery) One() *model.CabAllocation {
	return q.one(q.where().Model(&model.CabAllocation{}))
}

func (q *CabQuery) Count() int64 {
	return q.count(q.where().Model(&model.CabAllocation{}))
}

func (q *CabQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.CabAllocation{}), updates)
}

func (q *CabQuery) Delete() error {
	return q.where().Delete(&model.CabAllocation{}).Error
}
