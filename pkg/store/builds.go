package store

import (
	database_sql "database/sql"
	"time"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
	"github.com/gimlet-io/rocketchat-notifier/pkg/store/sql"
	"github.com/google/uuid"
	"github.com/russross/meddler"
)

const defaultBuildLimit = 20

// CreateBuild stores a new build event in the database
func (db *Store) CreateBuild(build *model.Build) (*model.Build, error) {
	build.ID = uuid.New().String()
	build.Created = time.Now().Unix()
	if build.Status == "" {
		build.Status = model.StatusSkipped
	}
	return build, meddler.Insert(db, "builds", build)
}

// Build returns a build event by its id
func (db *Store) Build(id string) (*model.Build, error) {
	stmt := sql.Stmt(db.driver, sql.SelectBuildByID)
	build := new(model.Build)
	err := meddler.QueryRow(db, build, stmt, id)
	return build, err
}

// Builds returns the most recent builds of a project, highest build number first
func (db *Store) Builds(project string, limit int) ([]*model.Build, error) {
	if limit <= 0 {
		limit = defaultBuildLimit
	}
	stmt := sql.Stmt(db.driver, sql.SelectBuildsByProject)
	var data []*model.Build
	err := meddler.QueryAll(db, &data, stmt, project, limit)
	return data, err
}

// PreviousOutcome returns the outcome of the latest stored build of the project
// that precedes the given build number. Nil means the project has no earlier build.
func (db *Store) PreviousOutcome(project string, number int) (*model.Outcome, error) {
	stmt := sql.Stmt(db.driver, sql.SelectPreviousBuild)
	build := new(model.Build)
	err := meddler.QueryRow(db, build, stmt, project, number)
	if err == database_sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	outcome := model.ParseOutcome(build.Result)
	return &outcome, nil
}

// UpdateBuildStatus records how the notification of a build went
func (db *Store) UpdateBuildStatus(id string, notified bool, transition string, status string, desc string) error {
	stmt := sql.Stmt(db.driver, sql.UpdateBuildStatus)
	_, err := db.Exec(stmt, notified, transition, status, desc, id)
	return err
}
