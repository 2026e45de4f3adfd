package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type InviteeQuery struct {
	Query[model.Invitee]
	id        string
	responded *bool
}

func NewInviteeQuery(db *gorm.DB) *InviteeQuery {
	q := &InviteeQuery{}
	q.setDefaults(db, "employee_id")

	return q
}

func (q *InviteeQuery) Limit(n int) *InviteeQuery {
	q.limit = n
	return q
}

func (q *InviteeQuery) ID(id string) *InviteeQuery {
	q.id = id
	return q
}

func (q *InviteeQuery) Responded(b bool) *InviteeQuery {
	q.responded = &b
	return q
}

func (q *InviteeQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("employee_id = ?", q.id)
	}

	if q.responded != nil {
		tx = tx.Where("has_responded = ?", *q.responded)
	}

	return tx
}

func (q *InviteeQuery) Get() []*model.Invitee {
	return q.get(q.where().Model(&model.Invitee{}))
}

func (q *InviteeQuery) One() *model.Invitee {
	return q.one(q.where().Model(&model.Invitee{}))
}

func (q *InviteeQuery) Count() int64 {
	return q.count(q.where().Model(&model.Invitee{}))
}

func (q *InviteeQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Invitee{}), updates)
}

func (q *InviteeQuery) Delete() error {
	return q.where().Delete(&model.Invitee{}).Error
}
