package database

import (
	"gorm.io/gorm"

	"github.com/lancelot03/pmconnect/internal/model"
)

type AgendaQuery struct {
	Query[model.Agenda]
	id string
}

func NewAgendaQuery(db *gorm.DB) *AgendaQuery {
	q := &AgendaQuery{}
	q.setDefaults(db, "upload_timestamp DESC")

	return q
}

func (q *AgendaQuery) ID(id string) *AgendaQuery {
	q.id = id
	return q
}

func (q *AgendaQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("agenda_id = ?", q.id)
	}

	return tx
}

func (q *AgendaQuery) Get() []*model.Agenda {
	return q.get(q.where().Model(&model.Agenda{}))
}

func (q *AgendaQuery) One() *model.Agenda {
	return q.one(q.where().Model(&model.Agenda{}))
}

func (q *AgendaQuery) Count() int64 {
	return q.count(q.where().Model(&model.Agenda{}))
}

func (q *AgendaQuery) Delete() error {
	return q.where().Delete(&model.Agenda{}).Error
}
