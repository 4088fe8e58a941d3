package server

import (
	database_sql "database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
	"github.com/gimlet-io/rocketchat-notifier/pkg/notifications"
	"github.com/gimlet-io/rocketchat-notifier/pkg/store"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// BuildEvent is what the CI host posts when a build finishes.
// The optional fields override the daemon-wide notification settings.
type BuildEvent struct {
	model.Record
	Channel                *string `json:"channel,omitempty"`
	NotifyBackToNormalOnly *bool   `json:"notifyBackToNormalOnly,omitempty"`
	ShowTestSummary        *bool   `json:"showTestSummary,omitempty"`
}

func (e *BuildEvent) settings(defaults notifications.Settings) notifications.Settings {
	s := defaults
	if e.Channel != nil {
		s.Channel = *e.Channel
	}
	if e.NotifyBackToNormalOnly != nil {
		s.NotifyBackToNormalOnly = *e.NotifyBackToNormalOnly
	}
	if e.ShowTestSummary != nil {
		s.ShowTestSummary = *e.ShowTestSummary
	}
	return s
}

// resultField tells a missing result apart from an explicit unknown one like ABORTED
type resultField struct {
	Result *string `json:"result"`
}

func buildEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var event BuildEvent
	err = json.Unmarshal(body, &event)
	if err != nil {
		log.Debugf("cannot decode build event: %s", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	var present resultField
	if json.Unmarshal(body, &present) != nil || present.Result == nil {
		http.Error(w, "result is required", http.StatusBadRequest)
		return
	}
	record := event.Record
	if err := record.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	store := ctx.Value("store").(*store.Store)
	publisher := ctx.Value("publisher").(*notifications.Publisher)
	defaults := ctx.Value("settings").(notifications.Settings)
	metrics, _ := ctx.Value("metrics").(*Metrics)

	if record.PreviousOutcome == nil {
		record.PreviousOutcome, err = store.PreviousOutcome(record.ProjectName, record.BuildNumber)
		if err != nil {
			log.Errorf("cannot look up previous build: %s", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	build := &model.Build{
		Project: record.ProjectName,
		Number:  record.BuildNumber,
		URL:     record.BuildURL,
		Result:  record.Outcome.String(),
	}
	if record.PreviousOutcome != nil {
		build.PreviousResult = record.PreviousOutcome.String()
	}
	build, err = store.CreateBuild(build)
	if err != nil {
		log.Errorf("cannot save build: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	result := publisher.Publish(ctx, record, event.settings(defaults))

	build.Notified = result.Status == model.StatusDelivered
	build.Transition = result.Decision.Transition.String()
	build.Status = result.Status
	if result.Err != nil {
		build.StatusDesc = result.Err.Error()
	}
	err = store.UpdateBuildStatus(build.ID, build.Notified, build.Transition, build.Status, build.StatusDesc)
	if err != nil {
		log.Errorf("cannot update build status: %s", err)
	}

	if metrics != nil {
		metrics.BuildEvents.Inc()
		metrics.Notifications.WithLabelValues(build.Transition, build.Status).Inc()
	}

	buildString, err := json.Marshal(build)
	if err != nil {
		log.Errorf("cannot serialize build: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buildString)
}

func getBuilds(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	if project == "" {
		http.Error(w, "project parameter is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		var err error
		limit, err = strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "limit must be a number", http.StatusBadRequest)
			return
		}
	}

	store := r.Context().Value("store").(*store.Store)
	builds, err := store.Builds(project, limit)
	if err != nil {
		log.Errorf("cannot get builds: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if builds == nil {
		builds = []*model.Build{}
	}

	buildsString, err := json.Marshal(builds)
	if err != nil {
		log.Errorf("cannot serialize builds: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buildsString)
}

func getBuild(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	store := r.Context().Value("store").(*store.Store)
	build, err := store.Build(id)
	if err == database_sql.ErrNoRows {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("cannot get build: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buildString, err := json.Marshal(build)
	if err != nil {
		log.Errorf("cannot serialize build: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buildString)
}
