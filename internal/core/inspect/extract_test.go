package inspect

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

const minimalRecord = `[{"Name":"/web","Config":{"Image":"nginx:latest","Env":["A=1"]},"HostConfig":{"RestartPolicy":{"Name":"always"}},"NetworkSettings":{"Networks":{"bridge":{}},"Ports":{"80/tcp":{}}},"Mounts":[{"Source":"/data","Destination":"/var/www"}]}]`

func extractString(t *testing.T, input string) (*ServiceSpec, error) {
	t.Helper()
	record, err := Load([]byte(input))
	require.NoError(t, err)
	return Extract(record)
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoad_ArraySelectsFirstElement(t *testing.T) {
	record, err := Load([]byte(`[{"Name":"/first"},{"Name":"/second"}]`))
	require.NoError(t, err)

	assert.Equal(t, "/first", child(record, "Name").String())
}

func TestLoad_BareObject(t *testing.T) {
	record, err := Load([]byte(`{"Name":"/solo"}`))
	require.NoError(t, err)

	assert.Equal(t, "/solo", child(record, "Name").String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace only", "  \n\t", ErrEmptyInput},
		{"truncated", `[{"Name":`, ErrInvalidJSON},
		{"not json", `services: {}`, ErrInvalidJSON},
		{"trailing content", `{"Name":"/a"} {"Name":"/b"}`, ErrInvalidJSON},
		{"empty array", `[]`, ErrNoRecord},
		{"array of strings", `["web"]`, ErrWrongType},
		{"string root", `"web"`, ErrUnexpectedRoot},
		{"null root", `null`, ErrUnexpectedRoot},
		{"nesting too deep", strings.Repeat("[", 3000000) + strings.Repeat("]", 3000000), ErrInvalidJSON},
		{"nesting too deep inside record", `[{"Name":` + strings.Repeat(`{"a":`, MaxDepth) + `1` + strings.Repeat("}", MaxDepth) + `}]`, ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

// =============================================================================
// Extract Tests
// =============================================================================

func TestExtract_MinimalRecord(t *testing.T) {
	spec, err := extractString(t, minimalRecord)
	require.NoError(t, err)

	assert.Equal(t, &ServiceSpec{
		Name:          "web",
		Image:         "nginx:latest",
		RestartPolicy: "always",
		Networks:      []string{"bridge"},
		Ports:         []string{"80/tcp"},
		Volumes:       []string{"/data:/var/www"},
		Environment:   []string{"A=1"},
	}, spec)
}

func TestExtract_FullInspectOutput(t *testing.T) {
	data, err := os.ReadFile("testdata/web.json")
	require.NoError(t, err)

	record, err := Load(data)
	require.NoError(t, err)

	spec, err := Extract(record)
	require.NoError(t, err)

	assert.Equal(t, "web", spec.Name)
	assert.Equal(t, "nginx:1.25", spec.Image)
	assert.Equal(t, "unless-stopped", spec.RestartPolicy)
	// Document order, not sorted order.
	assert.Equal(t, []string{"frontend", "backend"}, spec.Networks)
	assert.Equal(t, []string{"443/tcp", "80/tcp"}, spec.Ports)
	assert.Equal(t, []string{
		"/srv/web/html:/usr/share/nginx/html",
		"/var/lib/docker/volumes/web_logs/_data:/var/log/nginx",
	}, spec.Volumes)
	assert.Equal(t, []string{
		"NGINX_HOST=example.org",
		"PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
		"NGINX_VERSION=1.25.4",
	}, spec.Environment)
}

func TestExtract_NameNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"leading slash stripped", "/web", "web"},
		{"no leading slash", "web", "web"},
		{"only one slash stripped", "//web", "/web"},
		{"inner slash kept", "/team/web", "team/web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Replace(minimalRecord, `"Name":"/web"`, `"Name":"`+tt.raw+`"`, 1)
			spec, err := extractString(t, input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Name)
		})
	}
}

func TestExtract_DuplicateKeysKeepFirst(t *testing.T) {
	input := strings.Replace(minimalRecord, `"Networks":{"bridge":{}}`, `"Networks":{"bridge":{},"backend":{},"bridge":{}}`, 1)
	input = strings.Replace(input, `"Name":"/web"`, `"Name":"/web","Name":"/other"`, 1)

	spec, err := extractString(t, input)
	require.NoError(t, err)
	assert.Equal(t, "web", spec.Name)
	assert.Equal(t, []string{"bridge", "backend"}, spec.Networks)
}

func TestExtract_UnescapesStrings(t *testing.T) {
	input := strings.Replace(minimalRecord, `"Env":["A=1"]`, `"Env":["GREETING=say \"hi\"","PATH=C:\\bin","BRACKETS=[{"]`, 1)

	spec, err := extractString(t, input)
	require.NoError(t, err)
	assert.Equal(t, []string{`GREETING=say "hi"`, `PATH=C:\bin`, "BRACKETS=[{"}, spec.Environment)
}

func TestLoad_NestingWithinLimit(t *testing.T) {
	// Array, record and Config already account for three levels.
	deep := strings.Repeat("[", MaxDepth-3) + strings.Repeat("]", MaxDepth-3)
	input := strings.Replace(minimalRecord, `"Env":["A=1"]`, `"Env":["A=1"],"Deep":`+deep, 1)

	spec, err := extractString(t, input)
	require.NoError(t, err)
	assert.Equal(t, "web", spec.Name)
}

func TestExtract_EmptyCollections(t *testing.T) {
	input := `{"Name":"/idle","Config":{"Image":"busybox","Env":[]},"HostConfig":{"RestartPolicy":{"Name":"no"}},"NetworkSettings":{"Networks":{},"Ports":{}},"Mounts":[]}`

	spec, err := extractString(t, input)
	require.NoError(t, err)

	assert.Empty(t, spec.Networks)
	assert.Empty(t, spec.Ports)
	assert.Empty(t, spec.Volumes)
	assert.Empty(t, spec.Environment)
}

func TestExtract_PreservesOrder(t *testing.T) {
	input := `{"Name":"/app","Config":{"Image":"app","Env":["Z=26","A=1","M=13"]},"HostConfig":{"RestartPolicy":{"Name":"always"}},` +
		`"NetworkSettings":{"Networks":{"zeta":{},"alpha":{},"mid":{}},"Ports":{"9000/udp":{},"22/tcp":{},"5000/tcp":{}}},` +
		`"Mounts":[{"Source":"/z","Destination":"/1"},{"Source":"/a","Destination":"/2"}]}`

	spec, err := extractString(t, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, spec.Networks)
	assert.Equal(t, []string{"9000/udp", "22/tcp", "5000/tcp"}, spec.Ports)
	assert.Equal(t, []string{"/z:/1", "/a:/2"}, spec.Volumes)
	assert.Equal(t, []string{"Z=26", "A=1", "M=13"}, spec.Environment)
}

func TestExtract_ShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		old      string
		new      string
		wantErr  error
		wantPath string
	}{
		{"missing image", `"Image":"nginx:latest",`, ``, ErrMissingField, "Config.Image"},
		{"image not string", `"Image":"nginx:latest"`, `"Image":42`, ErrWrongType, "Config.Image"},
		{"missing name", `"Name":"/web",`, ``, ErrMissingField, "Name"},
		{"empty name", `"Name":"/web"`, `"Name":"/"`, ErrMissingField, "Name"},
		{"restart policy missing", `"RestartPolicy":{"Name":"always"}`, `"RestartPolicy":{}`, ErrMissingField, "HostConfig.RestartPolicy.Name"},
		{"host config not object", `"HostConfig":{"RestartPolicy":{"Name":"always"}}`, `"HostConfig":"always"`, ErrWrongType, "HostConfig"},
		{"networks is null", `"Networks":{"bridge":{}}`, `"Networks":null`, ErrWrongType, "NetworkSettings.Networks"},
		{"ports is array", `"Ports":{"80/tcp":{}}`, `"Ports":["80/tcp"]`, ErrWrongType, "NetworkSettings.Ports"},
		{"mounts missing", `,"Mounts":[{"Source":"/data","Destination":"/var/www"}]`, ``, ErrMissingField, "Mounts"},
		{"mount source not string", `"Source":"/data"`, `"Source":7`, ErrWrongType, "Mounts[0].Source"},
		{"mount destination missing", `,"Destination":"/var/www"`, ``, ErrMissingField, "Mounts[0].Destination"},
		{"mount not object", `[{"Source":"/data","Destination":"/var/www"}]`, `["/data:/var/www"]`, ErrWrongType, "Mounts[0]"},
		{"env entry not string", `"Env":["A=1"]`, `"Env":["A=1",{"B":"2"}]`, ErrWrongType, "Config.Env[1]"},
		{"env is null", `"Env":["A=1"]`, `"Env":null`, ErrWrongType, "Config.Env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Replace(minimalRecord, tt.old, tt.new, 1)
			require.NotEqual(t, minimalRecord, input, "fixture replacement did not apply")

			spec, err := extractString(t, input)
			require.Error(t, err)
			assert.Nil(t, spec)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantPath, fieldErr.Path)
		})
	}
}

// =============================================================================
// Lint Tests
// =============================================================================

func TestLintPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports []string
		want  int
	}{
		{"valid tcp and udp", []string{"80/tcp", "53/udp", "132/sctp"}, 0},
		{"implicit tcp", []string{"8080"}, 0},
		{"port range", []string{"7000-7005/tcp"}, 0},
		{"not a number", []string{"http/tcp"}, 1},
		{"unknown protocol", []string{"80/quic"}, 1},
		{"empty port", []string{"/tcp"}, 1},
		{"mixed", []string{"80/tcp", "abc", "443/tcp"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, LintPorts(tt.ports), tt.want)
		})
	}
}
