package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type GalleryQuery struct {
	Query[model.GalleryPhoto]
	id           string
	employeeID   string
	eventVersion string
}

func NewGalleryQuery(db *gorm.DB) *GalleryQuery {
	q := &GalleryQuery{}
	q.setDefaults(db, "upload_timestamp")

	return q
}

func (q *GalleryQuery) Limit(n int) *GalleryQuery {
	q.limit = n
	return q
}

func (q *GalleryQuery) ID(id string) *GalleryQuery {
	q.id = id
	return q
}

func (q *GalleryQuery) EmployeeID(id string) *GalleryQuery {
	q.employeeID = id
	return q
}

func (q *GalleryQuery) EventVersion(v string) *GalleryQuery {
	q.eventVersion = v
	return q
}

func (q *GalleryQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("photo_id = ?", q.id)
	}

	if q.employeeID != "" {
		tx = tx.Where("employee_id = ?", q.employeeID)
	}

	if q.eventVersion != "" {
		tx = tx.Where("event_version = ?", q.eventVersion)
	}

	return tx
}

func (q *GalleryQuery) Get() []*model.GalleryPhoto {
	return q.get(q.where().Model(&model.GalleryPhoto{}))
}

func (q *GalleryQuery) One() *model.GalleryPhoto {
	return q.one(q.where().Model(&model.GalleryPhoto{}))
}

func (q *GalleryQuery) Count() int64 {
	return q.count(q.where().Model(&model.GalleryPhoto{}))
}

func (q *GalleryQuery) Delete() error {
	return q.where().Delete(&model.GalleryPhoto{}).Error
}
