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

package ddl

const createTableBuilds = "create-table-builds"
const createIndexBuildsProjectNumber = "create-index-builds-project-number"

type migration struct {
	name string
	stmt string
}

var migrations = map[string][]migration{
	"sqlite": {
		{
			name: createTableBuilds,
			stmt: `
CREATE TABLE IF NOT EXISTS builds (
id              TEXT,
project         TEXT,
number          INTEGER,
url             TEXT,
result          TEXT,
previous_result TEXT DEFAULT '',
created         INTEGER,
notified        BOOLEAN DEFAULT FALSE,
transition      TEXT DEFAULT '',
status          TEXT DEFAULT 'skipped',
status_desc     TEXT DEFAULT '',
PRIMARY KEY(id)
);
`,
		},
		{
			name: createIndexBuildsProjectNumber,
			stmt: `
CREATE INDEX IF NOT EXISTS builds_project_number ON builds (project, number);
`,
		},
	},
	"postgres": {
		{
			name: createTableBuilds,
			stmt: `
CREATE TABLE IF NOT EXISTS builds (
id              TEXT,
project         TEXT,
number          INTEGER,
url             TEXT,
result          TEXT,
previous_result TEXT DEFAULT '',
created         INTEGER,
notified        BOOLEAN DEFAULT FALSE,
transition      TEXT DEFAULT '',
status          TEXT DEFAULT 'skipped',
status_desc     TEXT DEFAULT '',
PRIMARY KEY(id)
);
`,
		},
		{
			name: createIndexBuildsProjectNumber,
			stmt: `
CREATE INDEX IF NOT EXISTS builds_project_number ON builds (project, number);
`,
		},
	},
}
