package store

import (
	"testing"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestStoreInit(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()
}

func TestBuildCRUD(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	build, err := s.CreateBuild(&model.Build{
		Project: "demo",
		Number:  1,
		URL:     "http://ci/demo/1",
		Result:  model.Success.String(),
	})
	assert.Nil(t, err)
	assert.NotEmpty(t, build.ID)
	assert.Equal(t, model.StatusSkipped, build.Status)

	err = s.UpdateBuildStatus(build.ID, true, "backToNormal", model.StatusDelivered, "")
	assert.Nil(t, err)

	stored, err := s.Build(build.ID)
	assert.Nil(t, err)
	assert.Equal(t, "demo", stored.Project)
	assert.True(t, stored.Notified)
	assert.Equal(t, "backToNormal", stored.Transition)
	assert.Equal(t, model.StatusDelivered, stored.Status)
}

func TestPreviousOutcome(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	previous, err := s.PreviousOutcome("demo", 1)
	assert.Nil(t, err)
	assert.Nil(t, previous, "first build has no previous outcome")

	_, err = s.CreateBuild(&model.Build{Project: "demo", Number: 1, Result: model.Success.String()})
	assert.Nil(t, err)
	_, err = s.CreateBuild(&model.Build{Project: "demo", Number: 2, Result: model.Failure.String()})
	assert.Nil(t, err)
	_, err = s.CreateBuild(&model.Build{Project: "other", Number: 5, Result: model.Unstable.String()})
	assert.Nil(t, err)

	previous, err = s.PreviousOutcome("demo", 3)
	assert.Nil(t, err)
	assert.Equal(t, model.Failure, *previous)

	previous, err = s.PreviousOutcome("demo", 2)
	assert.Nil(t, err)
	assert.Equal(t, model.Success, *previous)

	builds, err := s.Builds("demo", 0)
	assert.Nil(t, err)
	assert.Len(t, builds, 2)
	assert.Equal(t, 2, builds[0].Number)

	builds, err = s.Builds("demo", 1)
	assert.Nil(t, err)
	assert.Len(t, builds, 1)
}
