// Copyright 2019 Laszlo Fogas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

const SelectBuildByID = "select-build-by-id"
const SelectBuildsByProject = "select-builds-by-project"
const SelectPreviousBuild = "select-previous-build"
const UpdateBuildStatus = "update-build-status"

var queries = map[string]map[string]string{
	"sqlite": {
		SelectBuildByID: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE id = ?;
`,
		SelectBuildsByProject: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE project = ?
ORDER BY number DESC, created DESC
LIMIT ?;
`,
		SelectPreviousBuild: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE project = ?
AND number < ?
ORDER BY number DESC, created DESC
LIMIT 1;
`,
		UpdateBuildStatus: `
UPDATE builds SET notified = ?, transition = ?, status = ?, status_desc = ? WHERE id = ?;
`,
	},
	"postgres": {
		SelectBuildByID: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE id = $1;
`,
		SelectBuildsByProject: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE project = $1
ORDER BY number DESC, created DESC
LIMIT $2;
`,
		SelectPreviousBuild: `
SELECT id, project, number, url, result, previous_result, created, notified, transition, status, status_desc
FROM builds
WHERE project = $1
AND number < $2
ORDER BY number DESC, created DESC
LIMIT 1;
`,
		UpdateBuildStatus: `
UPDATE builds SET notified = $1, transition = $2, status = $3, status_desc = $4 WHERE id = $5;
`,
	},
}

// Stmt returns the named query for the given database driver
func Stmt(driver string, name string) string {
	return queries[driver][name]
}
