// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		require.NoError(t, Setup("", ""))
	})

	require.NoError(t, Setup("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())

	WithComponent("csv").WithField("rows", 2).Debug("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "csv", entry["component"])
	assert.Equal(t, float64(2), entry["rows"])
	assert.Equal(t, "loaded", entry["msg"])
}

func TestSetup_Defaults(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	require.NoError(t, Setup("", "text"))
	assert.Equal(t, logrus.WarnLevel, Get().GetLevel())

	WithComponent("x").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestSetup_InvalidLevel(t *testing.T) {
	assert.Error(t, Setup("loud", "text"))
}
