package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type UserQuery struct {
	Query[model.User]
	id   string
	role string
}

func NewUserQuery(db *gorm.DB) *UserQuery {
	q := &UserQuery{}
	q.setDefaults(db, "employee_id")

	return q
}

func (q *UserQuery) ID(id string) *UserQuery {
	q.id = id
	return q
}

func (q *UserQuery) Role(role string) *UserQuery {
	q.role = role
	return q
}

func (q *UserQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("employee_id = ?", q.id)
	}

	if q.role != "" {
		tx = tx.Where("role = ?", q.role)
	}

	return tx
}

func (q *UserQuery) Get() []*model.User {
	return q.get(q.where().Model(&model.User{}))
}

func (q *UserQuery) One() *model.User {
	return q.one(q.where().Model(&model.User{}))
}

func (q *UserQuery) Count() int64 {
	return q.count(q.where().Model(&model.User{}))
}

func (q *UserQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.User{}), updates)
}

func (q *UserQuery) Delete() error {
	return q.where().Delete(&model.User{}).Error
}
