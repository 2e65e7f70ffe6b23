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

package generic

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeJSONLines
	FileTypeExcel
	FileTypeDeltaSharingProfile
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeJSON:
		return "JSON"
	case FileTypeJSONLines:
		return "JSON Lines"
	case FileTypeExcel:
		return "Excel"
	case FileTypeDeltaSharingProfile:
		return "Delta Sharing profile"
	default:
		return "unknown"
	}
}

// ParseFileType converts a format name such as "csv" or "xlsx".
func ParseFileType(name string) FileType {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv", "tsv", "txt":
		return FileTypeCSV
	case "parquet", "pq":
		return FileTypeParquet
	case "json":
		return FileTypeJSON
	case "jsonl", "ndjson":
		return FileTypeJSONLines
	case "excel", "xlsx", "xlsm", "xltx", "xltm":
		return FileTypeExcel
	}
	return FileTypeUnknown
}

var (
	parquetMagic = []byte("PAR1")
	zipMagic     = []byte("PK\x03\x04")
)

// DetectFileType determines the type of file based on extension and content.
// Content decides when the extension is missing or ambiguous.
func DetectFileType(filePath string, content []byte) FileType {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet", ".pq":
		return FileTypeParquet
	case ".jsonl", ".ndjson":
		return FileTypeJSONLines
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FileTypeExcel
	case ".json", ".share":
		if isDeltaSharingProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeJSON
	}

	return sniff(content)
}

// sniff guesses the type from the first bytes.
func sniff(content []byte) FileType {
	switch {
	case bytes.HasPrefix(content, parquetMagic):
		return FileTypeParquet
	case bytes.HasPrefix(content, zipMagic):
		return FileTypeExcel
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if isDeltaSharingProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		if gojson.Valid(trimmed) {
			return FileTypeJSON
		}
		if trimmed[0] == '{' {
			return FileTypeJSONLines
		}
	}
	return FileTypeCSV
}

// isDeltaSharingProfile checks if the content looks like a Delta Sharing profile
func isDeltaSharingProfile(content []byte) bool {
	// A Delta Sharing profile has shareCredentialsVersion, endpoint and bearerToken
	var profile map[string]interface{}
	if err := gojson.Unmarshal(content, &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]

	return hasVersion && hasEndpoint && hasBearerToken
}

// firstLine returns the first line of content without its line ending.
func firstLine(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSuffix(scanner.Text(), "\r")
}
