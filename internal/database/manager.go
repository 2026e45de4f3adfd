package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lancelot03/pmconnect/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.AutoMigrate(
		&model.Invitee{},
		&model.Response{},
		&model.CabAllocation{},
		&model.GalleryPhoto{},
		&model.Agenda{},
		&model.User{},
		&model.DashboardTotals{},
	)
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) ForceSave(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Clauses(clause.OnConflict{UpdateAll: true}).Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) InviteeQuery() *InviteeQuery {
	return NewInviteeQuery(mm.db)
}

func (mm *DatabaseManager) ResponseQuery() *ResponseQuery {
	return NewResponseQuery(mm.db)
}

func (mm *DatabaseManager) CabQuery() *CabQuery {
	return NewCabQuery(mm.db)
}

func (mm *DatabaseManager) GalleryQuery() *GalleryQuery {
	return NewGalleryQuery(mm.db)
}

func (mm *DatabaseManager) AgendaQuery() *AgendaQuery {
	return NewAgendaQuery(mm.db)
}

func (mm *DatabaseManager) UserQuery() *UserQuery {
	return NewUserQuery(mm.db)
}

func (mm *DatabaseManager) wipe(m any) error {
	return mm.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
}

// ReplaceInvitees wipes the collection and inserts the new batch row by row.
// Returns the number of rows actually inserted: a mid-batch failure leaves
// the import partially applied and is reported, not rolled back.
func (mm *DatabaseManager) ReplaceInvitees(invitees []*model.Invitee) (int, error) {
	if err := mm.wipe(&model.Invitee{}); err != nil {
		return 0, err
	}

	var inserted int

	for _, inv := range invitees {
		if err := mm.Create(inv); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

// MergeInvitees upserts the batch into the existing collection.
func (mm *DatabaseManager) MergeInvitees(invitees []*model.Invitee) (int, error) {
	var inserted int

	for _, inv := range invitees {
		if err := mm.ForceSave(inv); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

func (mm *DatabaseManager) ReplaceCabAllocations(allocations []*model.CabAllocation) (int, error) {
	if err := mm.wipe(&model.CabAllocation{}); err != nil {
		return 0, err
	}

	var inserted int

	for _, a := range allocations {
		if err := mm.Create(a); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

// SetAgenda replaces the current agenda with the given one.
func (mm *DatabaseManager) SetAgenda(a *model.Agenda) error {
	if err := mm.wipe(&model.Agenda{}); err != nil {
		return err
	}

	return mm.Create(a)
}

// CabForEmployee returns the first-seen allocation containing the employee.
// Membership lives in a JSON column, so the scan happens on the Go side.
func (mm *DatabaseManager) CabForEmployee(employeeID string) *model.CabAllocation {
	for _, cab := range mm.CabQuery().Get() {
		if cab.HasMember(employeeID) {
			return cab
		}
	}

	return nil
}

// FoodPreferenceCounts groups live responses by food preference.
func (mm *DatabaseManager) FoodPreferenceCounts() map[string]int {
	res := make(map[string]int)

	rows, err := mm.db.Model(&model.Response{}).
		Select("food_preference, count(*) as cnt").
		Group("food_preference").Rows()
	if err != nil {
		mm.logger.Error("error counting food preferences", slog.Any("error", err))
		return res
	}

	defer rows.Close()

	for rows.Next() {
		var pref string
		var cnt int

		if err := rows.Scan(&pref, &cnt); err != nil {
			mm.logger.Error("error scanning row", slog.Any("error", err))
			continue
		}

		res[pref] = cnt
	}

	return res
}

func (mm *DatabaseManager) GetTotals() *model.DashboardTotals {
	t := &model.DashboardTotals{}

	if err := mm.db.Take(t, "id = ?", model.TotalsID).Error; err != nil {
		return nil
	}

	return t
}

func (mm *DatabaseManager) SaveTotals(t *model.DashboardTotals) error {
	t.ID = model.TotalsID
	t.UpdatedAt = time.Now()

	return mm.ForceSave(t)
}
