package repository

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/model"
)

// AdminSeedRepository loads admin accounts from a yaml file and keeps
// them synced into the database. The file is watched for changes so
// admins can be added or disabled without a restart.
type AdminSeedRepository struct {
	seedFile string
	logger   *slog.Logger
	dbm      *database.DatabaseManager
	admins   map[string]*model.User

	watcher *fsnotify.Watcher

	mx sync.RWMutex
}

type seedEntry struct {
	EmployeeID   string `yaml:"employee_id"`
	EmployeeName string `yaml:"employee_name"`
	Password     string `yaml:"password"`
	Disabled     bool   `yaml:"disabled,omitempty"`
}

func NewAdminSeedRepo(dbm *database.DatabaseManager, seedFile string) *AdminSeedRepository {
	r := &AdminSeedRepository{
		logger:   slog.Default().With("logger", "AdminSeed"),
		seedFile: seedFile,
		dbm:      dbm,
		admins:   make(map[string]*model.User),
		mx:       sync.RWMutex{},
	}

	if err := r.loadSeedFile(); err != nil {
		r.logger.Error("error loading admin seed file", slog.Any("error", err))
	}

	if len(r.admins) == 0 {
		r.logger.Info("no valid admins found - creating default")

		admin := &model.User{
			EmployeeID:   "admin",
			EmployeeName: "Administrator",
			Role:         model.RoleAdmin,
		}

		_ = admin.SetPassword("admin")
		r.admins["admin"] = admin
	}

	r.sync()

	return r
}

func (r *AdminSeedRepository) loadSeedFile() error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, err := os.Lstat(r.seedFile); os.IsNotExist(err) {
		// create empty file
		f, err := os.Create(r.seedFile)
		if err != nil {
			return err
		}

		return f.Close()
	}

	dat, err := os.ReadFile(r.seedFile)
	if err != nil {
		return err
	}

	entries := make([]*seedEntry, 0)

	if err := yaml.Unmarshal(dat, &entries); err != nil {
		return err
	}

	r.admins = make(map[string]*model.User)

	for _, e := range entries {
		if e.EmployeeID == "" {
			continue
		}

		admin := &model.User{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Role:         model.RoleAdmin,
			Disabled:     e.Disabled,
		}

		if e.Password != "" {
			if err := admin.SetPassword(e.Password); err != nil {
				r.logger.Error("bad password for admin", slog.String("employee", e.EmployeeID))

				continue
			}
		}

		r.admins[e.EmployeeID] = admin
	}

	return nil
}

// sync upserts seeded admins into the users table. An existing account
// keeps its current password unless the seed file carries one.
func (r *AdminSeedRepository) sync() {
	r.mx.RLock()
	defer r.mx.RUnlock()

	for _, admin := range r.admins {
		existing := r.dbm.UserQuery().ID(admin.EmployeeID).One()

		if existing != nil {
			fields := map[string]any{
				"role":          model.RoleAdmin,
				"employee_name": admin.EmployeeName,
				"disabled":      admin.Disabled,
			}

			if admin.Password != "" {
				fields["password"] = admin.Password
			}

			if err := r.dbm.UserQuery().ID(admin.EmployeeID).Update(fields); err != nil {
				r.logger.Error("error updating admin", slog.Any("error", err))
			}

			continue
		}

		if err := r.dbm.Create(admin); err != nil {
			r.logger.Error("error creating admin", slog.Any("error", err))
		}
	}
}

func (r *AdminSeedRepository) Start() error {
	var err error
	r.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	if err := r.watcher.Add(r.seedFile); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}

				r.logger.Debug(fmt.Sprintf("event: %v", event))

				if event.Has(fsnotify.Write) && event.Name == r.seedFile {
					r.logger.Info("admin seed file is modified, reloading")

					if err := r.loadSeedFile(); err != nil {
						r.logger.Error("error", slog.Any("error", err))

						continue
					}

					r.sync()
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}

				r.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *AdminSeedRepository) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

func (r *AdminSeedRepository) IsSeeded(employeeID string) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()

	_, ok := r.admins[employeeID]

	return ok
}
