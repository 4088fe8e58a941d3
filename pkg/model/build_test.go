package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutcome(t *testing.T) {
	assert.Equal(t, Success, ParseOutcome("SUCCESS"))
	assert.Equal(t, Success, ParseOutcome("success"))
	assert.Equal(t, Failure, ParseOutcome("FAILURE"))
	assert.Equal(t, Failure, ParseOutcome("failed"))
	assert.Equal(t, Unstable, ParseOutcome(" Unstable "))
	assert.Equal(t, Unknown, ParseOutcome("ABORTED"))
	assert.Equal(t, Unknown, ParseOutcome("NOT_BUILT"))
	assert.Equal(t, Unknown, ParseOutcome(""))
}

func TestOutcomeJSON(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"result":"unstable","previousResult":"SUCCESS","project":"demo","number":3,"url":"http://ci/demo/3"}`), &r)
	assert.Nil(t, err)
	assert.Equal(t, Unstable, r.Outcome)
	assert.NotNil(t, r.PreviousOutcome)
	assert.Equal(t, Success, *r.PreviousOutcome)
	assert.Nil(t, r.TestCounts)

	b, err := json.Marshal(Failure)
	assert.Nil(t, err)
	assert.Equal(t, `"FAILURE"`, string(b))
}

func TestTestCounts(t *testing.T) {
	counts := TestCounts{Total: 10, Failed: 2, Skipped: 1}
	assert.Equal(t, 7, counts.Passed())
	assert.Nil(t, counts.Validate())

	assert.NotNil(t, TestCounts{Total: 2, Failed: 2, Skipped: 1}.Validate())
	assert.NotNil(t, TestCounts{Total: 2, Failed: -1}.Validate())
}

func TestRecordValidate(t *testing.T) {
	r := Record{Outcome: Success, ProjectName: "demo", BuildNumber: 1, BuildURL: "http://ci/demo/1"}
	assert.Nil(t, r.Validate())

	r.BuildNumber = 0
	assert.NotNil(t, r.Validate())

	r.BuildNumber = 1
	r.ProjectName = ""
	assert.NotNil(t, r.Validate())

	r.ProjectName = "demo"
	r.TestCounts = &TestCounts{Total: 1, Failed: 2}
	assert.NotNil(t, r.Validate())
}
