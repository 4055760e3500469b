// Copyright 2025 savora Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDevelopmentLogger(t *testing.T) {
	temp := t.TempDir()
	// set existed path
	SetDevelopmentLogger(temp + "/savora.log")
	_, err := os.Stat(temp + "/savora.log")
	assert.NoError(t, err)
	// set non-existed path
	SetDevelopmentLogger(temp + "/savora/savora.log")
	_, err = os.Stat(temp + "/savora/savora.log")
	assert.NoError(t, err)
	assert.NotNil(t, Logger())
}

func TestSetProductionLogger(t *testing.T) {
	temp := t.TempDir()
	SetProductionLogger(temp + "/savora/savora.log")
	Logger().Info("probe")
	CloseLogger()
	_, err := os.Stat(temp + "/savora/savora.log")
	assert.NoError(t, err)
}
