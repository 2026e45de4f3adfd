package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type ResponseQuery struct {
	Query[model.Response]
	id            string
	employeeID    string
	accommodation *bool
}

func NewResponseQuery(db *gorm.DB) *ResponseQuery {
	q := &ResponseQuery{}
	q.setDefaults(db, "submission_timestamp")

	return q
}

func (q *ResponseQuery) Limit(n int) *ResponseQuery {
	q.limit = n
	return q
}

func (q *ResponseQuery) ID(id string) *ResponseQuery {
	q.id = id
	return q
}

func (q *ResponseQuery) EmployeeID(id string) *ResponseQuery {
	q.employeeID = id
	return q
}

func (q *ResponseQuery) Accommodation(b bool) *ResponseQuery {
	q.accommodation = &b
	return q
}

func (q *ResponseQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("response_id = ?", q.id)
	}

	if q.employeeID != "" {
		tx = tx.Where("employee_id = ?", q.employeeID)
	}

	if q.accommodation != nil {
		tx = tx.Where("requires_accommodation = ?", *q.accommodation)
	}

	return tx
}

func (q *ResponseQuery) Get() []*model.Response {
	return q.get(q.where().Model(&model.Response{}))
}

func (q *ResponseQuery) One() *model.Response {
	return q.one(q.where().Model(&model.Response{}))
}

func (q *ResponseQuery) Count() int64 {
	return q.count(q.where().Model(&model.Response{}))
}

func (q *ResponseQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Response{}), updates)
}

func (q *ResponseQuery) Delete() error {
	return q.where().Delete(&model.Response{}).Error
}
